package services

import (
	"path/filepath"
	"testing"

	"github.com/czhengjuarez/FireDrill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Facilitator{}, &models.Project{}, &models.CustomRole{}, &models.Session{}))
	return db
}

func phishingSession(t *testing.T, s *SessionService) *models.Session {
	t.Helper()

	session, err := s.Create(CreateSessionInput{
		FacilitatorName: "Dana",
		ScenarioData:    models.ScenarioData{ID: "phishing", Name: "Phishing Attack", Severity: "High"},
		AvailableRoles:  []string{"it", "security"},
	})
	require.NoError(t, err)
	return session
}

func TestCreateSessionRoundTrip(t *testing.T) {
	s := NewSessionService(testDB(t))

	created, err := s.Create(CreateSessionInput{
		FacilitatorName: "Dana",
		ScenarioData:    models.ScenarioData{ID: "phishing", Name: "Phishing Attack"},
		AvailableRoles:  []string{"it", "security"},
	})
	require.NoError(t, err)
	require.Len(t, created.Code, 6)

	fetched, err := s.GetByCode(created.Code)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseSetup, fetched.Phase)
	assert.Empty(t, fetched.Participants)
	assert.Equal(t, models.StringList{"it", "security"}, fetched.AvailableRoles)
	assert.Equal(t, "phishing", fetched.ScenarioData.ID)

	// session_created entry is seeded when the caller supplies no log
	require.Len(t, fetched.SessionLog, 1)
	assert.Equal(t, "session_created", fetched.SessionLog[0].Event)
}

func TestCreateSessionValidation(t *testing.T) {
	s := NewSessionService(testDB(t))

	tests := []struct {
		name  string
		input CreateSessionInput
	}{
		{"missing facilitator", CreateSessionInput{ScenarioData: models.ScenarioData{ID: "phishing"}, AvailableRoles: []string{"it"}}},
		{"missing scenario", CreateSessionInput{FacilitatorName: "Dana", AvailableRoles: []string{"it"}}},
		{"no roles", CreateSessionInput{FacilitatorName: "Dana", ScenarioData: models.ScenarioData{ID: "phishing"}}},
		{"invalid initial phase", CreateSessionInput{FacilitatorName: "Dana", ScenarioData: models.ScenarioData{ID: "phishing"}, AvailableRoles: []string{"it"}, Phase: models.PhaseActive}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestCreateSessionReadyPhase(t *testing.T) {
	s := NewSessionService(testDB(t))

	session, err := s.Create(CreateSessionInput{
		FacilitatorName: "Dana",
		ScenarioData:    models.ScenarioData{ID: "phishing"},
		AvailableRoles:  []string{"it"},
		Phase:           models.PhaseReady,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PhaseReady, session.Phase)

	// ready behaves like setup for the briefing transition
	started, err := s.Start(session.Code)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseBriefing, started.Phase)
}

// Completed sessions release their codes for reuse; when a code is handed
// out again, lookups must resolve to the live session, not the finished one.
func TestGetByCodeResolvesReusedCode(t *testing.T) {
	db := testDB(t)
	s := NewSessionService(db)

	old := phishingSession(t, s)
	_, err := s.End(old.Code)
	require.NoError(t, err)

	fresh := phishingSession(t, s)
	require.NoError(t, db.Model(&models.Session{}).Where("id = ?", fresh.ID).Update("code", old.Code).Error)

	got, err := s.GetByCode(old.Code)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, got.ID)
	assert.Equal(t, models.PhaseSetup, got.Phase)

	// the live session accepts actions under the reassigned code
	_, _, err = s.Join(old.Code, JoinInput{UserID: "user-a", Name: "Alex", Role: "it"})
	require.NoError(t, err)
	_, err = s.Start(old.Code)
	require.NoError(t, err)
}

func TestCreateSurfacesStoreFailure(t *testing.T) {
	db := testDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	s := NewSessionService(db)
	_, err = s.Create(CreateSessionInput{
		FacilitatorName: "Dana",
		ScenarioData:    models.ScenarioData{ID: "phishing"},
		AvailableRoles:  []string{"it"},
	})
	assert.Error(t, err)
}

func TestGetByCodeNotFound(t *testing.T) {
	s := NewSessionService(testDB(t))

	_, err := s.GetByCode("000000")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPhishingWalkthrough(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	session, err := s.Start(session.Code)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseBriefing, session.Phase)

	session, err = s.StartInjects(session.Code)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseActive, session.Phase)
	assert.Equal(t, "phishing_1", session.CurrentInjectID)

	// phishing has six injects; five advances land on the last one
	for i := 0; i < 5; i++ {
		session, err = s.NextInject(session.Code)
		require.NoError(t, err)
		assert.Equal(t, models.PhaseActive, session.Phase)
	}
	assert.Equal(t, "phishing_6", session.CurrentInjectID)

	// the sixth advance moves to debrief without running off the sequence
	session, err = s.NextInject(session.Code)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseDebrief, session.Phase)
	assert.Equal(t, "phishing_6", session.CurrentInjectID)
}

func TestTransitionValidation(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	// cannot begin injects before the briefing
	_, err := s.StartInjects(session.Code)
	assert.Error(t, err)

	// cannot advance injects outside the active phase
	_, err = s.NextInject(session.Code)
	assert.Error(t, err)

	_, err = s.Start(session.Code)
	require.NoError(t, err)

	// starting twice is rejected
	_, err = s.Start(session.Code)
	assert.Error(t, err)
}

func TestPreviousInjectNoOpAtFirst(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	_, err := s.Start(session.Code)
	require.NoError(t, err)
	_, err = s.StartInjects(session.Code)
	require.NoError(t, err)

	session, err = s.PreviousInject(session.Code)
	require.NoError(t, err)
	assert.Equal(t, "phishing_1", session.CurrentInjectID)
	assert.Equal(t, models.PhaseActive, session.Phase)

	// and it stays idempotent
	session, err = s.PreviousInject(session.Code)
	require.NoError(t, err)
	assert.Equal(t, "phishing_1", session.CurrentInjectID)
}

func TestInjectNavigation(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	_, err := s.Start(session.Code)
	require.NoError(t, err)
	_, err = s.StartInjects(session.Code)
	require.NoError(t, err)

	session, err = s.NextInject(session.Code)
	require.NoError(t, err)
	assert.Equal(t, "phishing_2", session.CurrentInjectID)

	session, err = s.PreviousInject(session.Code)
	require.NoError(t, err)
	assert.Equal(t, "phishing_1", session.CurrentInjectID)
	assert.Equal(t, models.PhaseActive, session.Phase)
}

func TestCustomScenarioInjects(t *testing.T) {
	s := NewSessionService(testDB(t))

	session, err := s.Create(CreateSessionInput{
		FacilitatorName: "Dana",
		ScenarioData: models.ScenarioData{
			ID:       "tabletop_custom",
			Name:     "Custom Drill",
			IsCustom: true,
			Injects: []models.Inject{
				{ID: "c1", Title: "First", Content: "..."},
				{ID: "c2", Title: "Second", Content: "..."},
			},
		},
		AvailableRoles: []string{"it"},
	})
	require.NoError(t, err)

	_, err = s.Start(session.Code)
	require.NoError(t, err)
	session, err = s.StartInjects(session.Code)
	require.NoError(t, err)
	assert.Equal(t, "c1", session.CurrentInjectID)

	session, err = s.NextInject(session.Code)
	require.NoError(t, err)
	assert.Equal(t, "c2", session.CurrentInjectID)

	session, err = s.NextInject(session.Code)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseDebrief, session.Phase)
}

func TestEndSessionIsTerminal(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	session, err := s.End(session.Code)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseCompleted, session.Phase)

	_, err = s.End(session.Code)
	assert.Error(t, err)

	_, err = s.Start(session.Code)
	assert.Error(t, err)
}

func TestJoinClaimsRole(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	updated, participant, err := s.Join(session.Code, JoinInput{UserID: "user-a", Name: "Alex", Role: "it"})
	require.NoError(t, err)
	require.Len(t, updated.Participants, 1)
	assert.Equal(t, "it", participant.Role)
	assert.Equal(t, models.ParticipantStatusActive, participant.Status)

	// second claimant for the same role is rejected at write time
	_, _, err = s.Join(session.Code, JoinInput{UserID: "user-b", Name: "Blake", Role: "it"})
	assert.ErrorIs(t, err, ErrRoleTaken)

	// rejoin with the same userId and role is idempotent
	updated, _, err = s.Join(session.Code, JoinInput{UserID: "user-a", Name: "Alex", Role: "it"})
	require.NoError(t, err)
	assert.Len(t, updated.Participants, 1)

	// unlisted role is rejected even if unclaimed
	_, _, err = s.Join(session.Code, JoinInput{UserID: "user-c", Name: "Casey", Role: "legal"})
	assert.Error(t, err)
}

func TestJoinGeneratesUserID(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	_, participant, err := s.Join(session.Code, JoinInput{Name: "Alex", Role: "it"})
	require.NoError(t, err)
	assert.NotEmpty(t, participant.UserID)
}

func TestJoinRejectedAfterDebrief(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	_, err := s.End(session.Code)
	require.NoError(t, err)

	_, _, err = s.Join(session.Code, JoinInput{UserID: "user-a", Name: "Alex", Role: "it"})
	assert.Error(t, err)
}

func TestSubmitResponseOverwrites(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	_, _, err := s.Join(session.Code, JoinInput{UserID: "user-a", Name: "Alex", Role: "it"})
	require.NoError(t, err)
	_, err = s.Start(session.Code)
	require.NoError(t, err)
	_, err = s.StartInjects(session.Code)
	require.NoError(t, err)

	_, err = s.SubmitResponse(session.Code, SubmitResponseInput{UserID: "user-a", Response: "first draft", NISTCategory: "detect"})
	require.NoError(t, err)

	session, err = s.SubmitResponse(session.Code, SubmitResponseInput{UserID: "user-a", Response: "final answer", NISTCategory: "respond"})
	require.NoError(t, err)

	entries := session.Responses["phishing_1"]
	require.Len(t, entries, 1)
	assert.Equal(t, "final answer", entries["user-a"].Response)
	assert.Equal(t, "respond", entries["user-a"].NISTCategory)
	assert.Equal(t, "it", entries["user-a"].Role)
	assert.Equal(t, "Alex", entries["user-a"].ParticipantName)
}

func TestSubmitResponseValidation(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	// not active yet
	_, err := s.SubmitResponse(session.Code, SubmitResponseInput{UserID: "user-a", Response: "too early"})
	assert.Error(t, err)

	_, _, err = s.Join(session.Code, JoinInput{UserID: "user-a", Name: "Alex", Role: "it"})
	require.NoError(t, err)
	_, err = s.Start(session.Code)
	require.NoError(t, err)
	_, err = s.StartInjects(session.Code)
	require.NoError(t, err)

	// unknown participant
	_, err = s.SubmitResponse(session.Code, SubmitResponseInput{UserID: "ghost", Response: "hello"})
	assert.Error(t, err)

	// unknown NIST category
	_, err = s.SubmitResponse(session.Code, SubmitResponseInput{UserID: "user-a", Response: "hello", NISTCategory: "mitigate"})
	assert.Error(t, err)
}

// Two clients writing full documents derived from stale reads both succeed:
// the store runs no uniqueness or version check on replace. The second
// writer's base already contained the first participant, so the stored
// document ends up with two participants holding the same role. This is the
// wire behavior the polling clients were built against.
func TestReplacePreservesJoinRace(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	first, err := s.GetByCode(session.Code)
	require.NoError(t, err)
	first.Participants = append(first.Participants, models.Participant{UserID: "user-a", Name: "Alex", Role: "it"})
	_, err = s.Replace(session.Code, first)
	require.NoError(t, err)

	// second client polled after the first write but picked its role before
	second, err := s.GetByCode(session.Code)
	require.NoError(t, err)
	second.Participants = append(second.Participants, models.Participant{UserID: "user-b", Name: "Blake", Role: "it"})
	_, err = s.Replace(session.Code, second)
	require.NoError(t, err)

	stored, err := s.GetByCode(session.Code)
	require.NoError(t, err)
	require.Len(t, stored.Participants, 2)
	assert.Equal(t, stored.Participants[0].Role, stored.Participants[1].Role)
}

// A replace from a read that never saw a concurrent write silently discards
// it: last write wins, no conflict detection.
func TestReplaceLastWriteWins(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	stale, err := s.GetByCode(session.Code)
	require.NoError(t, err)

	_, _, err = s.Join(session.Code, JoinInput{UserID: "user-a", Name: "Alex", Role: "it"})
	require.NoError(t, err)

	stale.FacilitatorNotes = "kickoff at 9"
	_, err = s.Replace(session.Code, stale)
	require.NoError(t, err)

	stored, err := s.GetByCode(session.Code)
	require.NoError(t, err)
	assert.Equal(t, "kickoff at 9", stored.FacilitatorNotes)
	assert.Empty(t, stored.Participants, "concurrent join is lost on stale replace")
}

func TestReplaceKeepsIdentityFields(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	doc, err := s.GetByCode(session.Code)
	require.NoError(t, err)
	doc.Code = "999999"
	doc.FacilitatorName = "Mallory"
	doc.AvailableRoles = models.StringList{"leader"}

	updated, err := s.Replace(session.Code, doc)
	require.NoError(t, err)
	assert.Equal(t, session.Code, updated.Code)
	assert.Equal(t, "Dana", updated.FacilitatorName)
	assert.Equal(t, models.StringList{"it", "security"}, updated.AvailableRoles)
}

func TestReplaceRejectsUnknownPhase(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	doc, err := s.GetByCode(session.Code)
	require.NoError(t, err)
	doc.Phase = "paused"

	_, err = s.Replace(session.Code, doc)
	assert.Error(t, err)
}

func TestUpdateNotes(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	updated, err := s.UpdateNotes(session.Code, "team responded well to inject 2")
	require.NoError(t, err)
	assert.Equal(t, "team responded well to inject 2", updated.FacilitatorNotes)
}

func TestResponsesForInject(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	_, _, err := s.Join(session.Code, JoinInput{UserID: "user-a", Name: "Alex", Role: "it"})
	require.NoError(t, err)
	_, _, err = s.Join(session.Code, JoinInput{UserID: "user-b", Name: "Blake", Role: "security"})
	require.NoError(t, err)
	_, err = s.Start(session.Code)
	require.NoError(t, err)
	_, err = s.StartInjects(session.Code)
	require.NoError(t, err)
	_, err = s.SubmitResponse(session.Code, SubmitResponseInput{UserID: "user-a", Response: "quarantine inbox"})
	require.NoError(t, err)

	result, err := s.ResponsesForInject(session.Code, "phishing_1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Submitted)
	assert.Equal(t, 2, result.Total)

	// an inject with no responses reports zero, not an error
	result, err = s.ResponsesForInject(session.Code, "phishing_2")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Submitted)
}

func TestSummaryTallies(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	_, _, err := s.Join(session.Code, JoinInput{UserID: "user-a", Name: "Alex", Role: "it"})
	require.NoError(t, err)
	_, _, err = s.Join(session.Code, JoinInput{UserID: "user-b", Name: "Blake", Role: "security"})
	require.NoError(t, err)
	_, err = s.Start(session.Code)
	require.NoError(t, err)
	_, err = s.StartInjects(session.Code)
	require.NoError(t, err)

	_, err = s.SubmitResponse(session.Code, SubmitResponseInput{UserID: "user-a", Response: "check mail gateway", NISTCategory: "detect"})
	require.NoError(t, err)
	_, err = s.SubmitResponse(session.Code, SubmitResponseInput{UserID: "user-b", Response: "brief leadership", NISTCategory: "respond"})
	require.NoError(t, err)

	summary, err := s.Summary(session.Code)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ParticipantCount)
	assert.Equal(t, 6, summary.TotalInjects)
	assert.Equal(t, 2, summary.ResponseCounts["phishing_1"])
	assert.Equal(t, 1, summary.NISTTally["detect"])
	assert.Equal(t, 1, summary.NISTTally["respond"])
}

func TestSessionLogGrowsWithActions(t *testing.T) {
	s := NewSessionService(testDB(t))
	session := phishingSession(t, s)

	_, _, err := s.Join(session.Code, JoinInput{UserID: "user-a", Name: "Alex", Role: "it"})
	require.NoError(t, err)
	_, err = s.Start(session.Code)
	require.NoError(t, err)
	_, err = s.StartInjects(session.Code)
	require.NoError(t, err)
	session, err = s.NextInject(session.Code)
	require.NoError(t, err)

	events := make([]string, len(session.SessionLog))
	for i, entry := range session.SessionLog {
		events[i] = entry.Event
	}
	assert.Equal(t, []string{"session_created", "participant_joined", "session_started", "injects_started", "inject_advanced"}, events)
}

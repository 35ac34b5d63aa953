package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/czhengjuarez/FireDrill/internal/game"
	"github.com/czhengjuarez/FireDrill/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrRoleTaken       = errors.New("role already claimed by another participant")
)

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

type CreateSessionInput struct {
	FacilitatorName string
	ScenarioData    models.ScenarioData
	AvailableRoles  []string
	Phase           string
	SessionLog      []models.LogEntry
}

// Create stores the initial session document and assigns its join code.
// Only setup and ready are accepted as initial phases; ready marks sessions
// pre-configured from a saved project.
func (s *SessionService) Create(input CreateSessionInput) (*models.Session, error) {
	if input.FacilitatorName == "" {
		return nil, errors.New("facilitator name is required")
	}
	if input.ScenarioData.ID == "" {
		return nil, errors.New("scenario is required")
	}
	if len(input.AvailableRoles) == 0 {
		return nil, errors.New("at least one role is required")
	}

	phase := input.Phase
	if phase == "" {
		phase = models.PhaseSetup
	}
	if phase != models.PhaseSetup && phase != models.PhaseReady {
		return nil, fmt.Errorf("invalid initial phase %q", phase)
	}

	sessionLog := models.LogEntries(input.SessionLog)
	if len(sessionLog) == 0 {
		sessionLog = models.LogEntries{{
			Timestamp: time.Now(),
			Event:     "session_created",
			Data: map[string]any{
				"facilitator": input.FacilitatorName,
				"scenario":    input.ScenarioData.Name,
			},
		}}
	}

	code, err := s.generateUniqueCode()
	if err != nil {
		return nil, err
	}

	session := models.Session{
		Code:            code,
		FacilitatorName: input.FacilitatorName,
		ScenarioData:    input.ScenarioData,
		AvailableRoles:  models.StringList(input.AvailableRoles),
		Participants:    models.ParticipantList{},
		Phase:           phase,
		Responses:       models.ResponseMap{},
		SessionLog:      sessionLog,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// GetByCode is the point lookup every polling client runs. Codes of
// completed sessions can be reassigned, so the newest row wins; clients
// still polling a finished session see its terminal snapshot until then.
func (s *SessionService) GetByCode(code string) (*models.Session, error) {
	var session models.Session
	if err := s.db.Where("code = ?", code).Order("id DESC").First(&session).Error; err != nil {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Replace overwrites the stored document with the caller's copy. There is
// no version check: two clients writing from the same stale read both
// succeed and the later one wins. That is the wire contract the browser
// clients were built against, so it stays; the action methods below are the
// validated alternative.
func (s *SessionService) Replace(code string, doc *models.Session) (*models.Session, error) {
	stored, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if !models.ValidPhase(doc.Phase) {
		return nil, fmt.Errorf("invalid phase %q", doc.Phase)
	}

	// Identity and creation-time fields never move on replace.
	doc.ID = stored.ID
	doc.Code = stored.Code
	doc.FacilitatorName = stored.FacilitatorName
	doc.ScenarioData = stored.ScenarioData
	doc.AvailableRoles = stored.AvailableRoles
	doc.CreatedAt = stored.CreatedAt

	if err := s.db.Save(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// Start moves a waiting session into briefing.
func (s *SessionService) Start(code string) (*models.Session, error) {
	return s.transition(code, models.PhaseBriefing, "session_started", nil)
}

// StartInjects begins the active phase at the scenario's first inject.
func (s *SessionService) StartInjects(code string) (*models.Session, error) {
	session, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(session.Phase, models.PhaseActive) {
		return nil, fmt.Errorf("cannot start injects from phase %q", session.Phase)
	}

	injects := s.injectsFor(session)
	if len(injects) == 0 {
		return nil, errors.New("scenario has no injects")
	}

	session.Phase = models.PhaseActive
	session.CurrentInjectID = injects[0].ID
	appendLog(session, "injects_started", map[string]any{"first_inject": injects[0].Title})

	if err := s.db.Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// NextInject advances to the next inject in the fixed sequence; at the last
// inject it moves the session to debrief instead.
func (s *SessionService) NextInject(code string) (*models.Session, error) {
	session, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if session.Phase != models.PhaseActive {
		return nil, errors.New("injects can only be advanced while active")
	}

	injects := s.injectsFor(session)
	idx := injectIndex(injects, session.CurrentInjectID)
	if idx < 0 {
		return nil, errors.New("current inject is not part of the scenario")
	}

	if idx >= len(injects)-1 {
		session.Phase = models.PhaseDebrief
		appendLog(session, "debrief_started", nil)
	} else {
		appendLog(session, "inject_advanced", map[string]any{
			"from_inject": injects[idx].Title,
			"to_inject":   injects[idx+1].Title,
		})
		session.CurrentInjectID = injects[idx+1].ID
	}

	if err := s.db.Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// PreviousInject steps back one inject. At the first inject it is a no-op:
// nothing is written and the phase never changes.
func (s *SessionService) PreviousInject(code string) (*models.Session, error) {
	session, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if session.Phase != models.PhaseActive {
		return nil, errors.New("injects can only be navigated while active")
	}

	injects := s.injectsFor(session)
	idx := injectIndex(injects, session.CurrentInjectID)
	if idx <= 0 {
		return session, nil
	}

	appendLog(session, "inject_back", map[string]any{
		"from_inject": injects[idx].Title,
		"to_inject":   injects[idx-1].Title,
	})
	session.CurrentInjectID = injects[idx-1].ID

	if err := s.db.Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// End forces the session into its terminal phase from anywhere.
func (s *SessionService) End(code string) (*models.Session, error) {
	session, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if session.Phase == models.PhaseCompleted {
		return nil, errors.New("session already completed")
	}

	session.Phase = models.PhaseCompleted
	appendLog(session, "session_ended", nil)

	if err := s.db.Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateNotes replaces the facilitator notes. The dashboard flushes notes
// on blur, not per keystroke, so this sees whole-field writes.
func (s *SessionService) UpdateNotes(code, notes string) (*models.Session, error) {
	session, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	session.FacilitatorNotes = notes
	if err := s.db.Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

type JoinInput struct {
	UserID string
	Name   string
	Role   string
}

// Join claims a role for a participant. The claim check and the write run
// against the same loaded row, so a role can only be handed out once per
// stored document; clients that bypass this and PUT the whole document keep
// the original first-read-wins race.
func (s *SessionService) Join(code string, input JoinInput) (*models.Session, *models.Participant, error) {
	session, err := s.GetByCode(code)
	if err != nil {
		return nil, nil, err
	}
	if session.Phase == models.PhaseDebrief || session.Phase == models.PhaseCompleted {
		return nil, nil, errors.New("session is not accepting new participants")
	}
	if input.Name == "" {
		return nil, nil, errors.New("participant name is required")
	}
	if !contains(session.AvailableRoles, input.Role) {
		return nil, nil, errors.New("role is not available in this session")
	}

	userID := input.UserID
	if userID == "" {
		userID = uuid.NewString()
	}

	for i := range session.Participants {
		p := &session.Participants[i]
		if p.UserID == userID {
			if p.Role == input.Role {
				return session, p, nil // rejoin, idempotent
			}
			return nil, nil, errors.New("participant has already claimed a role")
		}
		if p.Role == input.Role {
			return nil, nil, ErrRoleTaken
		}
	}

	participant := models.Participant{
		UserID:   userID,
		Name:     input.Name,
		Role:     input.Role,
		Status:   models.ParticipantStatusActive,
		JoinedAt: time.Now(),
	}
	session.Participants = append(session.Participants, participant)
	appendLog(session, "participant_joined", map[string]any{
		"name": input.Name,
		"role": input.Role,
	})

	if err := s.db.Save(session).Error; err != nil {
		return nil, nil, err
	}
	return session, &session.Participants[len(session.Participants)-1], nil
}

type SubmitResponseInput struct {
	UserID       string
	Response     string
	NISTCategory string
}

// SubmitResponse records a participant's answer to the inject currently
// under discussion. One entry per (inject, participant); resubmission
// overwrites.
func (s *SessionService) SubmitResponse(code string, input SubmitResponseInput) (*models.Session, error) {
	session, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if session.Phase != models.PhaseActive {
		return nil, errors.New("session is not accepting responses")
	}
	if session.CurrentInjectID == "" {
		return nil, errors.New("no active inject")
	}
	if input.Response == "" {
		return nil, errors.New("response text is required")
	}
	if input.NISTCategory != "" && !game.ValidNISTCategory(input.NISTCategory) {
		return nil, fmt.Errorf("unknown NIST category %q", input.NISTCategory)
	}

	var participant *models.Participant
	for i := range session.Participants {
		if session.Participants[i].UserID == input.UserID {
			participant = &session.Participants[i]
			break
		}
	}
	if participant == nil {
		return nil, errors.New("participant not found in session")
	}

	if session.Responses == nil {
		session.Responses = models.ResponseMap{}
	}
	if session.Responses[session.CurrentInjectID] == nil {
		session.Responses[session.CurrentInjectID] = map[string]models.ResponseEntry{}
	}
	session.Responses[session.CurrentInjectID][input.UserID] = models.ResponseEntry{
		Response:        input.Response,
		Timestamp:       time.Now(),
		Role:            participant.Role,
		ParticipantName: participant.Name,
		NISTCategory:    input.NISTCategory,
	}

	if err := s.db.Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

type InjectResponses struct {
	InjectID  string                          `json:"inject_id"`
	Responses map[string]models.ResponseEntry `json:"responses"`
	Submitted int                             `json:"submitted"`
	Total     int                             `json:"total"`
}

// ResponsesForInject is the facilitator's per-inject visibility: who has
// answered versus the participant count.
func (s *SessionService) ResponsesForInject(code, injectID string) (*InjectResponses, error) {
	session, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}

	entries := session.Responses[injectID]
	if entries == nil {
		entries = map[string]models.ResponseEntry{}
	}
	return &InjectResponses{
		InjectID:  injectID,
		Responses: entries,
		Submitted: len(entries),
		Total:     len(session.Participants),
	}, nil
}

type SessionSummary struct {
	Code             string         `json:"session_code"`
	Phase            string         `json:"phase"`
	ParticipantCount int            `json:"participant_count"`
	TotalInjects     int            `json:"total_injects"`
	ResponseCounts   map[string]int `json:"response_counts"`
	NISTTally        map[string]int `json:"nist_tally"`
}

// Summary aggregates response counts per inject and per NIST function for
// the debrief view.
func (s *SessionService) Summary(code string) (*SessionSummary, error) {
	session, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}

	summary := &SessionSummary{
		Code:             session.Code,
		Phase:            session.Phase,
		ParticipantCount: len(session.Participants),
		TotalInjects:     len(s.injectsFor(session)),
		ResponseCounts:   map[string]int{},
		NISTTally:        map[string]int{},
	}
	for injectID, entries := range session.Responses {
		summary.ResponseCounts[injectID] = len(entries)
		for _, entry := range entries {
			if entry.NISTCategory != "" {
				summary.NISTTally[entry.NISTCategory]++
			}
		}
	}
	return summary, nil
}

// TotalInjects reports the length of the session's inject sequence.
func (s *SessionService) TotalInjects(session *models.Session) int {
	return len(s.injectsFor(session))
}

// InjectIndex reports the zero-based position of the current inject, or -1
// outside the active phase.
func (s *SessionService) InjectIndex(session *models.Session) int {
	if session.CurrentInjectID == "" {
		return -1
	}
	return injectIndex(s.injectsFor(session), session.CurrentInjectID)
}

func (s *SessionService) transition(code, to, event string, data map[string]any) (*models.Session, error) {
	session, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(session.Phase, to) {
		return nil, fmt.Errorf("cannot move from phase %q to %q", session.Phase, to)
	}

	session.Phase = to
	appendLog(session, event, data)

	if err := s.db.Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// injectsFor prefers injects embedded in the session's scenario (custom
// scenarios carry their own deck) and falls back to the built-in catalog.
func (s *SessionService) injectsFor(session *models.Session) []models.Inject {
	if len(session.ScenarioData.Injects) > 0 {
		return session.ScenarioData.Injects
	}
	return game.InjectsFor(session.ScenarioData.ID)
}

func (s *SessionService) generateUniqueCode() (string, error) {
	for {
		code := fmt.Sprintf("%06d", rand.Intn(1000000))
		var count int64
		err := s.db.Model(&models.Session{}).
			Where("code = ? AND phase != ?", code, models.PhaseCompleted).
			Count(&count).Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
}

func appendLog(session *models.Session, event string, data map[string]any) {
	session.SessionLog = append(session.SessionLog, models.LogEntry{
		Timestamp: time.Now(),
		Event:     event,
		Data:      data,
	})
}

func injectIndex(injects []models.Inject, id string) int {
	for i, inject := range injects {
		if inject.ID == id {
			return i
		}
	}
	return -1
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

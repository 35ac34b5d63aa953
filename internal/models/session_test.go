package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPhase(t *testing.T) {
	for _, phase := range []string{PhaseSetup, PhaseReady, PhaseBriefing, PhaseActive, PhaseDebrief, PhaseCompleted} {
		assert.True(t, ValidPhase(phase), phase)
	}

	assert.False(t, ValidPhase("waiting"))
	assert.False(t, ValidPhase(""))
	assert.False(t, ValidPhase("Active"))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"setup to briefing", PhaseSetup, PhaseBriefing, true},
		{"ready to briefing", PhaseReady, PhaseBriefing, true},
		{"briefing to active", PhaseBriefing, PhaseActive, true},
		{"active to debrief", PhaseActive, PhaseDebrief, true},
		{"debrief to completed", PhaseDebrief, PhaseCompleted, true},
		{"any phase can be ended", PhaseBriefing, PhaseCompleted, true},
		{"no skipping briefing", PhaseSetup, PhaseActive, false},
		{"no going backwards", PhaseActive, PhaseBriefing, false},
		{"debrief cannot reopen injects", PhaseDebrief, PhaseActive, false},
		{"completed is terminal", PhaseCompleted, PhaseBriefing, false},
		{"completed cannot restart", PhaseCompleted, PhaseSetup, false},
		{"unknown source", "waiting", PhaseBriefing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	for _, to := range []string{PhaseSetup, PhaseReady, PhaseBriefing, PhaseActive, PhaseDebrief, PhaseCompleted} {
		assert.False(t, CanTransition(PhaseCompleted, to), "completed -> %s should be rejected", to)
	}
}

func TestResponseMapColumnRoundTrip(t *testing.T) {
	original := ResponseMap{
		"phishing_1": {
			"user-a": {Response: "isolate the host", Role: "it", ParticipantName: "Alex", NISTCategory: "respond"},
		},
	}

	value, err := original.Value()
	require.NoError(t, err)

	var decoded ResponseMap
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, "isolate the host", decoded["phishing_1"]["user-a"].Response)
	assert.Equal(t, "respond", decoded["phishing_1"]["user-a"].NISTCategory)
}

func TestScenarioDataScanRejectsUnknownType(t *testing.T) {
	var s ScenarioData
	assert.Error(t, s.Scan(42))
}

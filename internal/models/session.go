package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Session is the shared document for one live training exercise. Every
// facilitator and participant action rewrites it in full; the JSON-valued
// fields are stored as serialized columns so a replace stays a single row
// write, matching the document semantics of the original store.
type Session struct {
	ID               uint            `gorm:"primaryKey" json:"-"`
	Code             string          `gorm:"size:6;index" json:"session_code"`
	FacilitatorName  string          `gorm:"size:100;not null" json:"facilitator_name"`
	ScenarioData     ScenarioData    `gorm:"type:text" json:"scenario_data"`
	AvailableRoles   StringList      `gorm:"type:text" json:"available_roles"`
	Participants     ParticipantList `gorm:"type:text" json:"participants"`
	Phase            string          `gorm:"size:20;not null;default:'setup'" json:"phase"`
	CurrentInjectID  string          `gorm:"size:64" json:"current_inject_id"`
	Responses        ResponseMap     `gorm:"type:text" json:"responses"`
	FacilitatorNotes string          `gorm:"type:text" json:"facilitator_notes"`
	SessionLog       LogEntries      `gorm:"type:text" json:"session_log"`
	CreatedAt        time.Time       `json:"created_at"`
}

const (
	PhaseSetup     = "setup"
	PhaseReady     = "ready" // setup variant for sessions pre-configured from a project
	PhaseBriefing  = "briefing"
	PhaseActive    = "active"
	PhaseDebrief   = "debrief"
	PhaseCompleted = "completed"
)

// phaseTransitions is the closed set of forward moves. Inject navigation
// never appears here because it does not change the phase.
var phaseTransitions = map[string][]string{
	PhaseSetup:     {PhaseBriefing, PhaseCompleted},
	PhaseReady:     {PhaseBriefing, PhaseCompleted},
	PhaseBriefing:  {PhaseActive, PhaseCompleted},
	PhaseActive:    {PhaseDebrief, PhaseCompleted},
	PhaseDebrief:   {PhaseCompleted},
	PhaseCompleted: {},
}

func ValidPhase(phase string) bool {
	_, ok := phaseTransitions[phase]
	return ok
}

func CanTransition(from, to string) bool {
	for _, next := range phaseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Participant is one joined client. UserID is client-generated and opaque;
// Role must come from the session's AvailableRoles.
type Participant struct {
	UserID   string    `json:"userId"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joinedAt"`
}

const ParticipantStatusActive = "active"

// ResponseEntry is one participant's answer to one inject. Resubmitting
// overwrites the previous entry; nothing is retained.
type ResponseEntry struct {
	Response        string    `json:"response"`
	Timestamp       time.Time `json:"timestamp"`
	Role            string    `json:"role"`
	ParticipantName string    `json:"participantName"`
	NISTCategory    string    `json:"nistCategory,omitempty"`
}

// LogEntry is one audit record in the append-only session log.
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Event     string         `json:"event"`
	Data      map[string]any `json:"data,omitempty"`
}

// ScenarioData is the scenario embedded by value at session creation.
// Injects is populated for custom scenarios; built-in scenarios resolve
// their inject sequence from the catalog by ID.
type ScenarioData struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Severity      string   `json:"severity"`
	EstimatedTime string   `json:"estimatedTime,omitempty"`
	Objectives    []string `json:"objectives,omitempty"`
	Injects       []Inject `json:"injects,omitempty"`
	IsCustom      bool     `json:"isCustom,omitempty"`
}

// Inject is one simulated incident update in a scenario's fixed sequence.
type Inject struct {
	ID         string `json:"id"`
	TargetRole string `json:"targetRole"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Urgency    string `json:"urgency"`
	Timestamp  string `json:"timestamp"`
}

// ResponseMap maps inject ID to participant userId to their entry.
type ResponseMap map[string]map[string]ResponseEntry

type (
	StringList      []string
	ParticipantList []Participant
	LogEntries      []LogEntry
)

func (s ScenarioData) Value() (driver.Value, error)    { return jsonValue(s) }
func (s *ScenarioData) Scan(src interface{}) error     { return jsonScan(src, s) }
func (l StringList) Value() (driver.Value, error)      { return jsonValue(l) }
func (l *StringList) Scan(src interface{}) error       { return jsonScan(src, l) }
func (p ParticipantList) Value() (driver.Value, error) { return jsonValue(p) }
func (p *ParticipantList) Scan(src interface{}) error  { return jsonScan(src, p) }
func (m ResponseMap) Value() (driver.Value, error)     { return jsonValue(m) }
func (m *ResponseMap) Scan(src interface{}) error      { return jsonScan(src, m) }
func (l LogEntries) Value() (driver.Value, error)      { return jsonValue(l) }
func (l *LogEntries) Scan(src interface{}) error       { return jsonScan(src, l) }

func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonScan(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

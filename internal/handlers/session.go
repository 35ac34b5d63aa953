package handlers

import (
	"errors"
	"net/http"

	"github.com/czhengjuarez/FireDrill/internal/config"
	"github.com/czhengjuarez/FireDrill/internal/models"
	"github.com/czhengjuarez/FireDrill/internal/services"
	"github.com/czhengjuarez/FireDrill/internal/ws"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
	hub            *ws.Hub
	cfg            *config.Config
}

func NewSessionHandler(sessionService *services.SessionService, hub *ws.Hub, cfg *config.Config) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, hub: hub, cfg: cfg}
}

type CreateSessionRequest struct {
	FacilitatorName string              `json:"facilitator_name" binding:"required" example:"Dana"`
	ScenarioData    models.ScenarioData `json:"scenario_data" binding:"required"`
	AvailableRoles  []string            `json:"available_roles" binding:"required"`
	Phase           string              `json:"phase,omitempty" example:"setup"`
	SessionLog      []models.LogEntry   `json:"session_log,omitempty"`
}

type UpdateNotesRequest struct {
	FacilitatorNotes string `json:"facilitator_notes"`
}

// SyncInfo tells clients how often to poll the session document.
type SyncInfo struct {
	FacilitatorPollSeconds int `json:"facilitator_poll_seconds" example:"3"`
	ParticipantPollSeconds int `json:"participant_poll_seconds" example:"2"`
}

// SessionState is the session document plus derived read-side fields.
type SessionState struct {
	models.Session
	TotalInjects int      `json:"total_injects"`
	InjectIndex  int      `json:"inject_index"`
	Sync         SyncInfo `json:"sync"`
}

func (h *SessionHandler) state(session *models.Session) SessionState {
	return SessionState{
		Session:      *session,
		TotalInjects: h.sessionService.TotalInjects(session),
		InjectIndex:  h.sessionService.InjectIndex(session),
		Sync: SyncInfo{
			FacilitatorPollSeconds: h.cfg.FacilitatorPollSeconds,
			ParticipantPollSeconds: h.cfg.ParticipantPollSeconds,
		},
	}
}

// CreateSession godoc
// @Summary      Create a training session
// @Description  Store the initial session document and assign a join code
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body CreateSessionRequest true "Session data"
// @Success      201 {object} SessionState
// @Failure      400 {object} ErrorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.Create(services.CreateSessionInput{
		FacilitatorName: req.FacilitatorName,
		ScenarioData:    req.ScenarioData,
		AvailableRoles:  req.AvailableRoles,
		Phase:           req.Phase,
		SessionLog:      req.SessionLog,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, h.state(session))
}

// GetSession godoc
// @Summary      Get session by code
// @Description  Point lookup polled by every connected client
// @Tags         sessions
// @Produce      json
// @Param        code path string true "Session code"
// @Success      200 {object} SessionState
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/{code} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.sessionService.GetByCode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.state(session))
}

// ReplaceSession godoc
// @Summary      Replace the session document
// @Description  Unconditional full-document overwrite; last write wins
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        code path string true "Session code"
// @Param        request body Session true "Full session document"
// @Success      200 {object} SessionState
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/{code} [put]
func (h *SessionHandler) ReplaceSession(c *gin.Context) {
	var doc models.Session
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.Replace(c.Param("code"), &doc)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(session.Code, ws.Message{Type: "session_updated", Data: h.state(session)})
	c.JSON(http.StatusOK, h.state(session))
}

// StartSession godoc
// @Summary      Start the briefing
// @Description  Move the session from setup/ready into briefing
// @Tags         facilitator
// @Produce      json
// @Param        code path string true "Session code"
// @Success      200 {object} SessionState
// @Failure      400 {object} ErrorResponse
// @Router       /api/sessions/{code}/start [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	h.runAction(c, "phase_changed", h.sessionService.Start)
}

// StartInjects godoc
// @Summary      Begin injects
// @Description  Move from briefing to active at the scenario's first inject
// @Tags         facilitator
// @Produce      json
// @Param        code path string true "Session code"
// @Success      200 {object} SessionState
// @Failure      400 {object} ErrorResponse
// @Router       /api/sessions/{code}/injects/start [post]
func (h *SessionHandler) StartInjects(c *gin.Context) {
	h.runAction(c, "phase_changed", h.sessionService.StartInjects)
}

// NextInject godoc
// @Summary      Advance to the next inject
// @Description  At the last inject the session moves to debrief instead
// @Tags         facilitator
// @Produce      json
// @Param        code path string true "Session code"
// @Success      200 {object} SessionState
// @Failure      400 {object} ErrorResponse
// @Router       /api/sessions/{code}/next [post]
func (h *SessionHandler) NextInject(c *gin.Context) {
	h.runAction(c, "inject_changed", h.sessionService.NextInject)
}

// PreviousInject godoc
// @Summary      Step back one inject
// @Description  No-op at the first inject; never changes the phase
// @Tags         facilitator
// @Produce      json
// @Param        code path string true "Session code"
// @Success      200 {object} SessionState
// @Failure      400 {object} ErrorResponse
// @Router       /api/sessions/{code}/previous [post]
func (h *SessionHandler) PreviousInject(c *gin.Context) {
	h.runAction(c, "inject_changed", h.sessionService.PreviousInject)
}

// EndSession godoc
// @Summary      End the session
// @Description  Force the terminal completed phase; the dashboard confirms first
// @Tags         facilitator
// @Produce      json
// @Param        code path string true "Session code"
// @Success      200 {object} SessionState
// @Failure      400 {object} ErrorResponse
// @Router       /api/sessions/{code}/end [post]
func (h *SessionHandler) EndSession(c *gin.Context) {
	h.runAction(c, "session_ended", h.sessionService.End)
}

// UpdateNotes godoc
// @Summary      Replace facilitator notes
// @Tags         facilitator
// @Accept       json
// @Produce      json
// @Param        code path string true "Session code"
// @Param        request body UpdateNotesRequest true "Notes"
// @Success      200 {object} SessionState
// @Failure      400 {object} ErrorResponse
// @Router       /api/sessions/{code}/notes [put]
func (h *SessionHandler) UpdateNotes(c *gin.Context) {
	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.runAction(c, "session_updated", func(code string) (*models.Session, error) {
		return h.sessionService.UpdateNotes(code, req.FacilitatorNotes)
	})
}

// GetInjectResponses godoc
// @Summary      Responses for one inject
// @Description  Submitted-versus-total counts for the dashboard
// @Tags         facilitator
// @Produce      json
// @Param        code path string true "Session code"
// @Param        injectId path string true "Inject ID"
// @Success      200 {object} services.InjectResponses
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/{code}/responses/{injectId} [get]
func (h *SessionHandler) GetInjectResponses(c *gin.Context) {
	result, err := h.sessionService.ResponsesForInject(c.Param("code"), c.Param("injectId"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSummary godoc
// @Summary      Session summary
// @Description  Per-inject response counts and NIST function tallies
// @Tags         facilitator
// @Produce      json
// @Param        code path string true "Session code"
// @Success      200 {object} services.SessionSummary
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/{code}/summary [get]
func (h *SessionHandler) GetSummary(c *gin.Context) {
	summary, err := h.sessionService.Summary(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *SessionHandler) runAction(c *gin.Context, event string, action func(code string) (*models.Session, error)) {
	session, err := action(c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(session.Code, ws.Message{Type: event, Data: h.state(session)})
	c.JSON(http.StatusOK, h.state(session))
}

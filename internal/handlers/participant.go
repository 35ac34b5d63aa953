package handlers

import (
	"errors"
	"net/http"

	"github.com/czhengjuarez/FireDrill/internal/services"
	"github.com/czhengjuarez/FireDrill/internal/ws"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	sessionService *services.SessionService
	hub            *ws.Hub
}

func NewParticipantHandler(sessionService *services.SessionService, hub *ws.Hub) *ParticipantHandler {
	return &ParticipantHandler{sessionService: sessionService, hub: hub}
}

type JoinSessionRequest struct {
	UserID string `json:"user_id" example:"b5c7..."`
	Name   string `json:"name" binding:"required,min=1,max=100" example:"Alex"`
	Role   string `json:"role" binding:"required" example:"it"`
}

type SubmitResponseRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	Response     string `json:"response" binding:"required"`
	NISTCategory string `json:"nist_category,omitempty" example:"detect"`
}

// JoinSession godoc
// @Summary      Join a session
// @Description  Claim an unclaimed role; the claim is checked at write time
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        code path string true "Session code"
// @Param        request body JoinSessionRequest true "Join data"
// @Success      200 {object} SessionState
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/sessions/{code}/join [post]
func (h *ParticipantHandler) JoinSession(c *gin.Context) {
	var req JoinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, participant, err := h.sessionService.Join(c.Param("code"), services.JoinInput{
		UserID: req.UserID,
		Name:   req.Name,
		Role:   req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrRoleTaken):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return
	}

	h.hub.Broadcast(session.Code, ws.Message{Type: "participant_joined", Data: participant})
	c.JSON(http.StatusOK, gin.H{"session": session, "participant": participant})
}

// SubmitResponse godoc
// @Summary      Submit a response
// @Description  Record the participant's answer to the current inject
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        code path string true "Session code"
// @Param        request body SubmitResponseRequest true "Response data"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/sessions/{code}/responses [post]
func (h *ParticipantHandler) SubmitResponse(c *gin.Context) {
	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.SubmitResponse(c.Param("code"), services.SubmitResponseInput{
		UserID:       req.UserID,
		Response:     req.Response,
		NISTCategory: req.NISTCategory,
	})
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(session.Code, ws.Message{
		Type: "response_received",
		Data: gin.H{"inject_id": session.CurrentInjectID, "user_id": req.UserID},
	})

	c.JSON(http.StatusOK, MessageResponse{Message: "response recorded"})
}

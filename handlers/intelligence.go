package handlers

import (
	"errors"
	"net/http"

	"trailmate/models"
	ai "trailmate/services/intelligence"
	"trailmate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes conversation sessions over HTTP.
type ChatHandler struct {
	Sessions     *ai.SessionManager
	Orchestrator *ai.Orchestrator
}

func NewChatHandler(sessions *ai.SessionManager, orchestrator *ai.Orchestrator) *ChatHandler {
	return &ChatHandler{Sessions: sessions, Orchestrator: orchestrator}
}

func sessionResponse(sess *ai.Session) models.ChatSessionResponse {
	msgs := sess.Messages()
	if msgs == nil {
		msgs = []models.ConversationMessage{}
	}
	return models.ChatSessionResponse{
		SessionID: sess.ID,
		CreatedAt: sess.CreatedAt,
		Messages:  msgs,
	}
}

// StartSession handles POST /api/chat/sessions.
func (h *ChatHandler) StartSession(c *gin.Context) {
	id, ok := identityFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	sess, err := h.Sessions.Start(c.Request.Context(), id)
	if err != nil {
		getLogger(c).Error("Failed to start chat session", zap.String("user_id", id.UserID), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Could not load your data right now", "Please try again shortly.")
		return
	}
	c.JSON(http.StatusCreated, sessionResponse(sess))
}

// GetSession handles GET /api/chat/sessions/:sessionID.
func (h *ChatHandler) GetSession(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(sess))
}

// SendMessage handles POST /api/chat/sessions/:sessionID/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	res, err := h.Orchestrator.Turn(c.Request.Context(), sess, req.Text)
	switch {
	case errors.Is(err, ai.ErrEmptyMessage):
		utils.JSONError(c, http.StatusBadRequest, "Message text is required", "")
		return
	case errors.Is(err, ai.ErrSessionBusy):
		utils.JSONError(c, http.StatusConflict, "Still working on your previous message", "")
		return
	case err != nil:
		getLogger(c).Error("Chat turn failed", zap.String("session_id", sess.ID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	resp := models.ChatTurnResponse{
		UserMessage:      res.UserMessage,
		AssistantMessage: res.AssistantMessage,
	}
	if out := res.Outcome; out != nil {
		resp.Booking = &models.BookingOutcomeView{
			Outcome:    string(out.Kind),
			ActivityID: out.ActivityID,
			Booking:    out.Booking,
		}
		if out.Kind == ai.OutcomeSuccess {
			resp.Booking.Position = out.Count
		}
	}
	c.JSON(http.StatusOK, resp)
}

// EndSession handles DELETE /api/chat/sessions/:sessionID.
func (h *ChatHandler) EndSession(c *gin.Context) {
	id, ok := identityFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	err := h.Sessions.End(c.Request.Context(), c.Param("sessionID"), id)
	switch {
	case errors.Is(err, ai.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Session not found", "")
		return
	case errors.Is(err, ai.ErrSessionBusy):
		utils.JSONError(c, http.StatusConflict, "Still working on your previous message", "")
		return
	case err != nil:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChatHandler) lookup(c *gin.Context) (*ai.Session, bool) {
	id, ok := identityFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return nil, false
	}
	sess, err := h.Sessions.Get(c.Request.Context(), c.Param("sessionID"), id)
	if errors.Is(err, ai.ErrSessionNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Session not found", "")
		return nil, false
	}
	if err != nil {
		getLogger(c).Error("Failed to load chat session", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Could not load your conversation right now", "")
		return nil, false
	}
	return sess, true
}

package handler

import (
	"errors"
	"net/http"

	"paidvine/backend/internal/appeal"

	"github.com/gin-gonic/gin"
)

// AnalyzeDisqualification scores a disqualified attempt for the caller.
func (h *Handler) AnalyzeDisqualification(c *gin.Context) {
	result, err := h.Appeals.Analyze(c.Param("attemptId"), currentUserID(c))
	if err != nil {
		h.appealError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GenerateAppealMessage renders the appeal letter for an attempt.
func (h *Handler) GenerateAppealMessage(c *gin.Context) {
	message, err := h.Appeals.ComposeMessage(c.Param("attemptId"), currentUserID(c))
	if err != nil {
		h.appealError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

type submitAppealRequest struct {
	SurveyAttemptID string `json:"surveyAttemptId" binding:"required"`
	AppealMessage   string `json:"appealMessage" binding:"required"`
	AIReasoning     string `json:"aiReasoning"`
	AIConfidence    int    `json:"aiConfidence"`
}

// SubmitAppeal files the appeal ticket.
func (h *Handler) SubmitAppeal(c *gin.Context) {
	var req submitAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticketID, err := h.Appeals.Submit(req.SurveyAttemptID, req.AppealMessage, req.AIReasoning, req.AIConfidence, currentUserID(c))
	if err != nil {
		h.appealError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticketId": ticketID})
}

// GetUserAppeals lists the caller's tickets, newest first.
func (h *Handler) GetUserAppeals(c *gin.Context) {
	tickets, err := h.Appeals.ListForUser(currentUserID(c))
	if err != nil {
		h.appealError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetAppealByID returns one of the caller's tickets.
func (h *Handler) GetAppealByID(c *gin.Context) {
	ticket, err := h.Appeals.GetByID(c.Param("id"), currentUserID(c))
	if err != nil {
		h.appealError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *Handler) appealError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appeal.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, appeal.ErrDuplicateAppeal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

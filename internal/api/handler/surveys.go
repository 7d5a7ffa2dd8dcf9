package handler

import (
	"errors"
	"net/http"

	"paidvine/backend/internal/models"
	"paidvine/backend/internal/survey"

	"github.com/gin-gonic/gin"
)

// GetAvailableSurveys lists the active catalog.
func (h *Handler) GetAvailableSurveys(c *gin.Context) {
	surveys, err := h.Surveys.ListAvailable()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, surveys)
}

// GetSurveyByID returns one catalog entry.
func (h *Handler) GetSurveyByID(c *gin.Context) {
	survey, err := h.Surveys.GetByID(c.Param("id"))
	if err != nil {
		h.surveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}

// GetSurveyHistory lists the caller's attempts, newest first.
func (h *Handler) GetSurveyHistory(c *gin.Context) {
	attempts, err := h.Surveys.History(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// GetSurveyStats aggregates the caller's history.
func (h *Handler) GetSurveyStats(c *gin.Context) {
	stats, err := h.Surveys.GetStats(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

type attemptRequest struct {
	Answers          []models.Answer `json:"answers"`
	TimeSpentSeconds int             `json:"timeSpentSeconds"`
}

// SubmitSurvey records a completed attempt and awards points.
func (h *Handler) SubmitSurvey(c *gin.Context) {
	var req attemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attemptID, err := h.Surveys.SubmitAttempt(c.Param("id"), currentUserID(c), req.Answers, req.TimeSpentSeconds)
	if err != nil {
		h.surveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attemptId": attemptID})
}

// RecordDisqualification records a terminated attempt.
func (h *Handler) RecordDisqualification(c *gin.Context) {
	var req attemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attemptID, err := h.Surveys.RecordDisqualification(c.Param("id"), currentUserID(c), req.Answers, req.TimeSpentSeconds)
	if err != nil {
		h.surveyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attemptId": attemptID})
}

func (h *Handler) surveyError(c *gin.Context, err error) {
	if errors.Is(err, survey.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}

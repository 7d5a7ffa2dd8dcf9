package handler

import (
	"errors"
	"net/http"

	"paidvine/backend/internal/rewards"

	"github.com/gin-gonic/gin"
)

// GetRedemptions lists the caller's redemption requests, newest first.
func (h *Handler) GetRedemptions(c *gin.Context) {
	redemptions, err := h.Rewards.ListRedemptions(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, redemptions)
}

type redemptionRequest struct {
	Amount         float64 `json:"amount" binding:"required"`
	PointsUsed     int     `json:"pointsUsed" binding:"required,gt=0"`
	Method         string  `json:"method" binding:"required"`
	AccountDetails string  `json:"accountDetails" binding:"required"`
}

// CreateRedemption files a cash-out request.
func (h *Handler) CreateRedemption(c *gin.Context) {
	var req redemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	redemptionID, err := h.Rewards.RequestRedemption(currentUserID(c), req.Amount, req.PointsUsed, req.Method, req.AccountDetails)
	if err != nil {
		if errors.Is(err, rewards.ErrInsufficientPoints) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redemptionId": redemptionID})
}

// GetLeaderboard returns the ranked top scorers.
func (h *Handler) GetLeaderboard(c *gin.Context) {
	result, err := h.Rewards.Leaderboard(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetDashboardStats returns the stat-card aggregates.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.Rewards.GetDashboardStats(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetRecentActivity returns the merged activity feed.
func (h *Handler) GetRecentActivity(c *gin.Context) {
	events, err := h.Rewards.RecentActivity(currentUserID(c), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, events)
}

package controlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/services"
)

type Analytics interface {
	WeeklyTrend(ctx context.Context, userID string) (*services.WeeklyTrend, error)
	MoodDistribution(ctx context.Context, userID string, days int) (*services.MoodDistribution, error)
}

type AnalyticsController struct {
	analytics Analytics
	log       *zap.SugaredLogger
}

func NewAnalyticsController(analytics Analytics, log *zap.SugaredLogger) *AnalyticsController {
	return &AnalyticsController{analytics: analytics, log: log}
}

func (h *AnalyticsController) WeeklyTrend(c *gin.Context) {
	userID := c.GetString(libs.UserIDKey)
	trend, err := h.analytics.WeeklyTrend(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorw("weekly trend failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build weekly trend"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": trend})
}

func (h *AnalyticsController) MoodDistribution(c *gin.Context) {
	userID := c.GetString(libs.UserIDKey)
	days := queryInt(c, "days", services.DefaultPeriodDays)

	dist, err := h.analytics.MoodDistribution(c.Request.Context(), userID, days)
	if err != nil {
		h.log.Errorw("mood distribution failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build mood distribution"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dist})
}

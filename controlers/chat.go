package controlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/services"
)

type Chats interface {
	SendMessage(ctx context.Context, userID, text string) (*services.ChatResponse, error)
	History(ctx context.Context, userID string, limit int) ([]services.HistoryEntry, error)
}

type ChatController struct {
	chats Chats
	log   *zap.SugaredLogger
}

func NewChatController(chats Chats, log *zap.SugaredLogger) *ChatController {
	return &ChatController{chats: chats, log: log}
}

// SendMessage needs json {"message": ""}
func (h *ChatController) SendMessage(c *gin.Context) {
	type Body struct {
		Message string `json:"message"`
	}
	var body Body
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(libs.UserIDKey)
	resp, err := h.chats.SendMessage(c.Request.Context(), userID, body.Message)
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.log.Errorw("chat send failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

func (h *ChatController) GetHistory(c *gin.Context) {
	limit := queryInt(c, "limit", services.DefaultHistoryLimit)
	userID := c.GetString(libs.UserIDKey)

	entries, err := h.chats.History(c.Request.Context(), userID, limit)
	if err != nil {
		h.log.Errorw("chat history failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch chat history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"history": entries, "count": len(entries)},
	})
}

// queryInt reads an integer query parameter. Missing or malformed values
// give def; range checks are left to the services.
func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"astromatch/internal/domain"
	"astromatch/internal/service"
)

// MatchHandler expone el motor de matching por HTTP.
type MatchHandler struct {
	logger  *zap.Logger
	matcher *service.MatchService
}

func NewMatchHandler(logger *zap.Logger, matcher *service.MatchService) *MatchHandler {
	return &MatchHandler{logger: logger, matcher: matcher}
}

// FindMatches maneja POST /match.
func (h *MatchHandler) FindMatches(c *gin.Context) {
	var req struct {
		Chart json.RawMessage `json:"chart" binding:"required"`
		Limit int             `json:"limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid match request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	list, err := h.matcher.FindMatches(c.Request.Context(), req.Chart, req.Limit)
	if err != nil {
		var malformed *domain.MalformedChartError
		if errors.As(err, &malformed) {
			h.logger.Warn("malformed chart payload", zap.String("reason", malformed.Reason))
			c.JSON(http.StatusBadRequest, gin.H{"error": malformed.Error()})
			return
		}
		h.logger.Error("match query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not run match query"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches":        list.Matches,
		"total_compared": list.TotalCompared,
		"matches_found":  list.MatchesFound,
	})
}

// Health maneja GET /healthz.
func (h *MatchHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

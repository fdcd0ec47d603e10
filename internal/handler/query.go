package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/models"
)

// QueryService runs one question through the advisory pipeline.
type QueryService interface {
	Handle(ctx context.Context, sessionID, question string) (*models.QueryResponse, error)
}

type QueryHandler struct {
	Advisor QueryService
	Logger  *zap.Logger
}

func (h *QueryHandler) Register(r *gin.Engine) {
	r.POST("/ai/query", h.query)
}

func (h *QueryHandler) query(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "session_id와 question은 필수 항목입니다.")
		return
	}

	resp, err := h.Advisor.Handle(c.Request.Context(), req.SessionID, req.Question)
	if err != nil {
		h.Logger.Error("query handling failed",
			zap.String("session_id", req.SessionID), zap.Error(err))
		fail(c, http.StatusInternalServerError, "AI 처리 중 오류가 발생했습니다.")
		return
	}

	c.JSON(http.StatusOK, resp)
}

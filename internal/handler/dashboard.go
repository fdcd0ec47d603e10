package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/roboadvisor/investai/internal/dashboard"
	"github.com/roboadvisor/investai/internal/models"
)

// MarketDashboard serves the aggregated market views.
type MarketDashboard interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	StockDetails(ctx context.Context, tickers []string) ([]models.StockListItem, error)
	StockDetail(ctx context.Context, ticker string) (*models.StockDetail, error)
	StockChart(ctx context.Context, ticker string) ([]int64, error)
}

type DashboardHandler struct {
	Market MarketDashboard
	Logger *zap.Logger
}

func (h *DashboardHandler) Register(r *gin.Engine) {
	group := r.Group("/ai/api")
	group.GET("/dashboard", h.dashboard)
	group.POST("/stock-details", h.stockDetails)
	group.GET("/stock/:ticker", h.stockDetail)
	group.GET("/stock/:ticker/chart", h.stockChart)
}

func (h *DashboardHandler) dashboard(c *gin.Context) {
	data, err := h.Market.Dashboard(c.Request.Context())
	if err != nil {
		h.Logger.Error("dashboard fetch failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "대시보드 데이터를 가져오는 중 오류가 발생했습니다.")
		return
	}
	c.JSON(http.StatusOK, data)
}

type stockDetailsRequest struct {
	Tickers []string `json:"tickers"`
}

func (h *DashboardHandler) stockDetails(c *gin.Context) {
	var req stockDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "tickers 목록이 필요합니다.")
		return
	}

	items, err := h.Market.StockDetails(c.Request.Context(), req.Tickers)
	if err != nil {
		h.Logger.Error("stock details failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "개별 종목 정보를 가져오는 중 오류가 발생했습니다.")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *DashboardHandler) stockDetail(c *gin.Context) {
	ticker := c.Param("ticker")

	detail, err := h.Market.StockDetail(c.Request.Context(), ticker)
	if err != nil {
		if errors.Is(err, dashboard.ErrNotFound) {
			fail(c, http.StatusNotFound, "해당 종목의 데이터를 찾을 수 없습니다.")
			return
		}
		h.Logger.Error("stock detail failed", zap.String("ticker", ticker), zap.Error(err))
		fail(c, http.StatusInternalServerError, "종목 정보를 가져오는 중 오류가 발생했습니다.")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *DashboardHandler) stockChart(c *gin.Context) {
	ticker := c.Param("ticker")

	closes, err := h.Market.StockChart(c.Request.Context(), ticker)
	if err != nil {
		h.Logger.Error("stock chart failed", zap.String("ticker", ticker), zap.Error(err))
		fail(c, http.StatusInternalServerError, "종목 차트를 가져오는 중 오류가 발생했습니다.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"chart": closes})
}

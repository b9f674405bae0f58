package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
	"github.com/sahab-erp/sahab-backend/internal/dto"
	"github.com/sahab-erp/sahab-backend/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.RateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.recordRate)
		rates.GET("", h.listRates)
		rates.GET("/staleness", h.getStaleness)
		rates.GET("/:from/:to", h.getCurrentRate)
	}
}

// recordRate godoc
// @Summary Record an exchange rate observation
// @Description Appends a new observation to the append-only rate history
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.RecordRateRequest true "Rate observation"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to record rate"
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) recordRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	recordedByUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		recordedByUserID = middleware.DefaultActingUser
	}

	rate, err := h.rateService.RecordRate(c.Request.Context(), req, recordedByUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidRate) || errors.Is(err, apperrors.ErrInvalidCurrency) {
			logger.Warn("Rejected rate observation", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate recorded",
		slog.String("from", rate.FromCurrencyCode),
		slog.String("to", rate.ToCurrencyCode))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getCurrentRate godoc
// @Summary Get the effective rate for a currency pair
// @Description Resolves the conversion rate as of now: direct observation, or the inverse of the reverse observation
// @Tags exchange-rates
// @Produce  json
// @Param   from path string true "From currency code"
// @Param   to path string true "To currency code"
// @Success 200 {object} dto.CurrentRateResponse
// @Failure 404 {object} map[string]string "No observation for the pair"
// @Failure 500 {object} map[string]string "Failed to resolve rate"
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getCurrentRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from := c.Param("from")
	to := c.Param("to")
	if len(from) != 3 || len(to) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 letters"})
		return
	}

	rate, err := h.rateService.CurrentRate(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateNotFound) {
			logger.Warn("No rate observation for pair", slog.String("from", from), slog.String("to", to))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to resolve current rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve current rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CurrentRateResponse{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             rate,
		AsOf:             time.Now().UTC(),
	})
}

// getStaleness godoc
// @Summary Report rate staleness
// @Description Reports the age of the most recent observation across all pairs
// @Tags exchange-rates
// @Produce  json
// @Success 200 {object} dto.RateStalenessResponse
// @Failure 500 {object} map[string]string "Failed to check staleness"
// @Router /exchange-rates/staleness [get]
func (h *exchangeRateHandler) getStaleness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	staleness, err := h.rateService.RateStaleness(c.Request.Context())
	if err != nil {
		logger.Error("Failed to check rate staleness", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check rate staleness"})
		return
	}

	c.JSON(http.StatusOK, dto.RateStalenessResponse{
		IsStale:         staleness.IsStale,
		DaysSinceUpdate: staleness.DaysSinceUpdate,
		LastUpdate:      staleness.LastUpdate,
	})
}

// listRates godoc
// @Summary List rate observations
// @Description Retrieves the observation history, newest first, optionally filtered by pair
// @Tags exchange-rates
// @Produce  json
// @Param   from query string false "Filter by from currency code"
// @Param   to query string false "Filter by to currency code"
// @Param   limit query int false "Maximum number of observations" default(100)
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} map[string]string "Failed to list rates"
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var from, to *string
	if v := c.Query("from"); v != "" {
		from = &v
	}
	if v := c.Query("to"); v != "" {
		to = &v
	}
	limit := 100
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	rates, err := h.rateService.ListRates(c.Request.Context(), from, to, limit)
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

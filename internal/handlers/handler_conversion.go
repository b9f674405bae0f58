package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
	"github.com/sahab-erp/sahab-backend/internal/dto"
	"github.com/sahab-erp/sahab-backend/internal/middleware"
)

// conversionHandler handles HTTP requests for currency conversion.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

// newConversionHandler creates a new conversionHandler.
func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{
		conversionService: cs,
	}
}

// registerConversionRoutes registers routes related to currency conversion.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversionService)

	convert := rg.Group("/convert")
	{
		convert.POST("/to-base", h.convertToBase)
		convert.POST("/from-base", h.convertFromBase)
	}
}

func (h *conversionHandler) respondConversion(c *gin.Context, result *dto.ConversionResponse, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRateNotFound):
			logger.Warn("Conversion rejected: no rate for pair", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidCurrency):
			logger.Warn("Conversion rejected: unknown currency", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Conversion failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Conversion failed"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// convertToBase godoc
// @Summary Convert an amount to the base currency
// @Description Converts an amount in any registered currency to the base currency at the current rate
// @Tags conversion
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Amount and currency"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No rate observation for the pair"
// @Router /convert/to-base [post]
func (h *conversionHandler) convertToBase(c *gin.Context) {
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.conversionService.ToBase(c.Request.Context(), req.Amount, req.CurrencyCode)
	if err != nil {
		h.respondConversion(c, nil, err)
		return
	}
	resp := dto.ToConversionResponse(result)
	h.respondConversion(c, &resp, nil)
}

// convertFromBase godoc
// @Summary Convert a base-currency amount to another currency
// @Description Converts a base-currency amount to the target currency at the current rate, rounded to the target currency's precision
// @Tags conversion
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Amount (in base currency) and target currency"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No rate observation for the pair"
// @Router /convert/from-base [post]
func (h *conversionHandler) convertFromBase(c *gin.Context) {
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.conversionService.FromBase(c.Request.Context(), req.Amount, req.CurrencyCode)
	if err != nil {
		h.respondConversion(c, nil, err)
		return
	}
	resp := dto.ToConversionResponse(result)
	h.respondConversion(c, &resp, nil)
}

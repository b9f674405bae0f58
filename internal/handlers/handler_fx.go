package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
	"github.com/sahab-erp/sahab-backend/internal/dto"
	"github.com/sahab-erp/sahab-backend/internal/middleware"
)

// fxHandler handles HTTP requests for foreign-exchange exposure reports.
type fxHandler struct {
	fxService portssvc.FxSvcFacade
}

// newFxHandler creates a new fxHandler.
func newFxHandler(fs portssvc.FxSvcFacade) *fxHandler {
	return &fxHandler{
		fxService: fs,
	}
}

// registerFxRoutes registers routes related to FX exposure.
func registerFxRoutes(rg *gin.RouterGroup, fxService portssvc.FxSvcFacade) {
	h := newFxHandler(fxService)

	fx := rg.Group("/fx")
	{
		fx.GET("/exposure", h.getExposure)
	}
}

// getExposure godoc
// @Summary Compute FX exposure
// @Description Reprices foreign-currency transactions in the window at the current rate and reports realized/unrealized gains and losses
// @Tags fx
// @Produce  json
// @Param   organizationID query string true "Organization ID"
// @Param   from query string true "Window start (RFC 3339 date)"
// @Param   to query string true "Window end (RFC 3339 date)"
// @Param   currency query string false "Filter by transaction currency"
// @Param   status query string false "Filter by REALIZED or UNREALIZED"
// @Success 200 {object} dto.FxExposureReportResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to compute exposure"
// @Router /fx/exposure [get]
func (h *fxHandler) getExposure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	organizationID := c.Query("organizationID")
	if organizationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "organizationID query parameter is required"})
		return
	}

	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be an RFC 3339 date"})
		return
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be an RFC 3339 date"})
		return
	}

	status := c.Query("status")
	if status != "" && status != string(domain.FxRealized) && status != string(domain.FxUnrealized) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be REALIZED or UNREALIZED"})
		return
	}

	query := dto.FxExposureQuery{
		OrganizationID: organizationID,
		From:           from,
		To:             to,
		Currency:       c.Query("currency"),
		Status:         domain.FxStatus(status),
	}

	report, err := h.fxService.ComputeExposure(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Rejected exposure query", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute FX exposure", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute FX exposure"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFxExposureReportResponse(report))
}

// parseDateParam accepts both a bare date and a full RFC 3339 timestamp.
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
	"github.com/sahab-erp/sahab-backend/internal/core/services"
	"github.com/sahab-erp/sahab-backend/internal/dto"
	"github.com/sahab-erp/sahab-backend/internal/middleware"
)

// transactionHandler handles HTTP requests that record business transactions
// and trigger journal posting.
type transactionHandler struct {
	journalService          portssvc.JournalSvcFacade
	defaultSaleCurrency     string
	defaultPurchaseCurrency string
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(js portssvc.JournalSvcFacade, defaultSaleCurrency, defaultPurchaseCurrency string) *transactionHandler {
	return &transactionHandler{
		journalService:          js,
		defaultSaleCurrency:     defaultSaleCurrency,
		defaultPurchaseCurrency: defaultPurchaseCurrency,
	}
}

// registerTransactionRoutes registers the transaction posting routes.
func registerTransactionRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, defaultSaleCurrency, defaultPurchaseCurrency string) {
	h := newTransactionHandler(journalService, defaultSaleCurrency, defaultPurchaseCurrency)

	rg.POST("/sales", h.postSale)
	rg.POST("/purchases", h.postPurchase)
	rg.POST("/sale-returns", h.postSaleReturn)
	rg.POST("/purchase-returns", h.postPurchaseReturn)
	rg.POST("/vouchers", h.postVoucher)
}

// respondPosting writes the result of a posting operation. Soft failure is
// still a 201: the business transaction was recorded, only the journal entry
// is pending.
func respondPosting(c *gin.Context, result *dto.PostingResult, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOriginalNotFound):
			logger.Warn("Original transaction not found", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrExcessiveReturnQuantity),
			errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, apperrors.ErrInvalidCurrency),
			errors.Is(err, services.ErrNothingToReturn),
			errors.Is(err, services.ErrUnknownVoucherType):
			logger.Warn("Transaction rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateNotFound):
			logger.Warn("Transaction rejected: no exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post transaction"})
		}
		return
	}
	c.JSON(http.StatusCreated, result)
}

// postSale godoc
// @Summary Record a sale
// @Description Records a finalized sale, valuates it, and posts the revenue and COGS journal entries atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} dto.PostingResult "posted=false with pendingReason when account mapping is missing"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No exchange rate for the sale currency"
// @Router /sales [post]
func (h *transactionHandler) postSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.CurrencyCode == "" {
		req.CurrencyCode = h.defaultSaleCurrency
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		creatorUserID = middleware.DefaultActingUser
	}

	result, err := h.journalService.PostSale(c.Request.Context(), req, creatorUserID)
	respondPosting(c, result, err)
}

// postPurchase godoc
// @Summary Record a purchase
// @Description Records a finalized purchase, valuates it, and posts the inventory journal entry atomically
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   purchase body dto.CreatePurchaseRequest true "Purchase details"
// @Success 201 {object} dto.PostingResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No exchange rate for the purchase currency"
// @Router /purchases [post]
func (h *transactionHandler) postPurchase(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.CurrencyCode == "" {
		req.CurrencyCode = h.defaultPurchaseCurrency
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		creatorUserID = middleware.DefaultActingUser
	}

	result, err := h.journalService.PostPurchase(c.Request.Context(), req, creatorUserID)
	respondPosting(c, result, err)
}

// postSaleReturn godoc
// @Summary Record a sale return
// @Description Records a return against a sale at the original frozen exchange rate and posts the mirrored journal entries
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   return body dto.CreateSaleReturnRequest true "Return details"
// @Success 201 {object} dto.PostingResult
// @Failure 400 {object} map[string]string "Invalid input or excessive return quantity"
// @Failure 404 {object} map[string]string "Original sale not found"
// @Router /sale-returns [post]
func (h *transactionHandler) postSaleReturn(c *gin.Context) {
	var req dto.CreateSaleReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		creatorUserID = middleware.DefaultActingUser
	}

	result, err := h.journalService.PostSaleReturn(c.Request.Context(), req, creatorUserID)
	respondPosting(c, result, err)
}

// postPurchaseReturn godoc
// @Summary Record a purchase return
// @Description Records a return against a purchase at the original frozen exchange rate and posts the mirrored journal entry
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   return body dto.CreatePurchaseReturnRequest true "Return details"
// @Success 201 {object} dto.PostingResult
// @Failure 400 {object} map[string]string "Invalid input or excessive return quantity"
// @Failure 404 {object} map[string]string "Original purchase not found"
// @Router /purchase-returns [post]
func (h *transactionHandler) postPurchaseReturn(c *gin.Context) {
	var req dto.CreatePurchaseReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		creatorUserID = middleware.DefaultActingUser
	}

	result, err := h.journalService.PostPurchaseReturn(c.Request.Context(), req, creatorUserID)
	respondPosting(c, result, err)
}

// postVoucher godoc
// @Summary Record a receipt or payment voucher
// @Description Records a standalone money movement valued at the rate current at voucher time
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   voucher body dto.CreateVoucherRequest true "Voucher details"
// @Success 201 {object} dto.PostingResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No exchange rate for the voucher currency"
// @Router /vouchers [post]
func (h *transactionHandler) postVoucher(c *gin.Context) {
	var req dto.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		creatorUserID = middleware.DefaultActingUser
	}

	result, err := h.journalService.PostVoucher(c.Request.Context(), req, creatorUserID)
	respondPosting(c, result, err)
}

package services

import (
	"context"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/sahab-erp/sahab-backend/internal/dto"
)

// FxSvcFacade computes realized and unrealized foreign-exchange exposure for
// finalized foreign-currency transactions. Read-only and idempotent: with no
// new rate observations, repeated runs yield identical results.
type FxSvcFacade interface {
	ComputeExposure(ctx context.Context, query dto.FxExposureQuery) (*domain.FxExposureReport, error)
}

package repositories

import (
	"context"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
)

// AccountDirectory maps semantic account roles to concrete ledger-account
// identifiers. It is an external collaborator: the engine only consumes the
// lookup and does not define chart-of-accounts management.
type AccountDirectory interface {
	// ResolveAccount returns the ledger account mapped to the role for an
	// organization. An unresolved role yields a *apperrors.
	// MissingAccountMappingError (soft failure at the posting layer).
	ResolveAccount(ctx context.Context, role domain.AccountRole, organizationID string) (string, error)
}

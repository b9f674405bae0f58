package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portsrepo "github.com/sahab-erp/sahab-backend/internal/core/ports/repositories"
)

// PgxAccountDirectory resolves semantic account roles to concrete ledger
// accounts from the account_mappings table.
type PgxAccountDirectory struct {
	BaseRepository
}

// newPgxAccountDirectory creates a new account directory.
func newPgxAccountDirectory(pool *pgxpool.Pool) portsrepo.AccountDirectory {
	return &PgxAccountDirectory{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountDirectory = (*PgxAccountDirectory)(nil)

// ResolveAccount returns the ledger account mapped to the role for an
// organization. An unconfigured role yields MissingAccountMappingError, the
// posting layer's soft-failure signal.
func (r *PgxAccountDirectory) ResolveAccount(ctx context.Context, role domain.AccountRole, organizationID string) (string, error) {
	query := `
		SELECT account_id
		FROM account_mappings
		WHERE role = $1 AND organization_id = $2;
	`
	var accountID string
	err := r.Pool.QueryRow(ctx, query, string(role), organizationID).Scan(&accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", &apperrors.MissingAccountMappingError{Role: string(role), OrganizationID: organizationID}
		}
		return "", fmt.Errorf("failed to resolve account for role %s: %w", role, err)
	}
	return accountID, nil
}

package identity

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	databasex "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/database"
)

// Directory looks an account up by one contact field. Implementations return
// found=false for a clean miss and reserve err for transport failures.
type Directory interface {
	ByPhone(ctx context.Context, phone string) (int64, bool, error)
	ByEmail(ctx context.Context, email string) (int64, bool, error)
}

// SQLDirectory resolves contact fields against the customer table.
// Duplicate matches resolve first-match-wins, ordered by account id.
type SQLDirectory struct {
	db bun.IDB
}

func NewSQLDirectory(db bun.IDB) *SQLDirectory {
	return &SQLDirectory{db: db}
}

func (d *SQLDirectory) ByPhone(ctx context.Context, phone string) (int64, bool, error) {
	return d.lookup(ctx, "phone = ?", phone)
}

func (d *SQLDirectory) ByEmail(ctx context.Context, email string) (int64, bool, error) {
	return d.lookup(ctx, "email = ?", email)
}

func (d *SQLDirectory) lookup(ctx context.Context, where string, arg string) (int64, bool, error) {
	var customer databasex.Customer
	err := d.db.NewSelect().
		Model(&customer).
		Column("customer_id").
		Where(where, arg).
		OrderExpr("customer_id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return customer.CustomerID, true, nil
}

package repositories

import (
	"context"
	"fmt"

	"sevensmile-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MergeRepository is the data-access arm of the merge engine. Table and
// column names passed to it come exclusively from the compile-time
// category mapping, never from request input, so interpolating them
// into SQL is safe.
type MergeRepository struct {
	DB *pgxpool.Pool
}

func NewMergeRepository(db *pgxpool.Pool) *MergeRepository {
	return &MergeRepository{DB: db}
}

// CountWhereValueIn counts rows whose denormalized text column holds one
// of the duplicate values. Read-only.
func (r *MergeRepository) CountWhereValueIn(ctx context.Context, table, column string, values []string) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ANY($1)`, table, column)
	err := r.DB.QueryRow(ctx, query, values).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s.%s: %w", table, column, err)
	}
	return count, nil
}

// CountWhereIDIn counts rows whose foreign-key column points at one of
// the duplicate ids. Read-only.
func (r *MergeRepository) CountWhereIDIn(ctx context.Context, table, column string, ids []int) (int, error) {
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ANY($1)`, table, column)
	err := r.DB.QueryRow(ctx, query, ids).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s.%s: %w", table, column, err)
	}
	return count, nil
}

// WithTx runs fn inside a single transaction. The whole merge write
// sequence commits or rolls back together.
func (r *MergeRepository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin merge transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateMaster writes the merged scalar fields onto the surviving
// record.
func (r *MergeRepository) UpdateMaster(ctx context.Context, tx pgx.Tx, rec *models.InformationRecord) error {
	_, err := tx.Exec(ctx,
		`UPDATE information SET description=$1, phone=$2, updated_at=NOW() WHERE id=$3`,
		rec.Description, rec.Phone, rec.ID)
	if err != nil {
		return fmt.Errorf("update master information row %d: %w", rec.ID, err)
	}
	return nil
}

// RewriteValueColumn repoints every denormalized text reference from a
// duplicate value to the master value. The "= ANY(duplicates)" predicate
// makes the statement a no-op when re-run, so a retried merge cannot
// double-rewrite.
func (r *MergeRepository) RewriteValueColumn(ctx context.Context, tx pgx.Tx, table, column, masterValue string, duplicateValues []string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = ANY($2)`, table, column, column)
	if _, err := tx.Exec(ctx, query, masterValue, duplicateValues); err != nil {
		return fmt.Errorf("rewrite %s.%s: %w", table, column, err)
	}
	return nil
}

// RewriteFKColumn repoints foreign-key references from duplicate ids to
// the master id. Idempotent for the same reason as RewriteValueColumn.
func (r *MergeRepository) RewriteFKColumn(ctx context.Context, tx pgx.Tx, table, column string, masterID int, duplicateIDs []int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = ANY($2)`, table, column, column)
	if _, err := tx.Exec(ctx, query, masterID, duplicateIDs); err != nil {
		return fmt.Errorf("rewrite %s.%s: %w", table, column, err)
	}
	return nil
}

// DeleteDuplicates removes the absorbed information rows.
func (r *MergeRepository) DeleteDuplicates(ctx context.Context, tx pgx.Tx, ids []int) error {
	if _, err := tx.Exec(ctx, `DELETE FROM information WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete duplicate information rows: %w", err)
	}
	return nil
}

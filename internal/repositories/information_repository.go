package repositories

import (
	"context"

	"sevensmile-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type InformationRepository struct {
	DB *pgxpool.Pool
}

func NewInformationRepository(db *pgxpool.Pool) *InformationRepository {
	return &InformationRepository{DB: db}
}

const informationColumns = `id, category, value, COALESCE(description, '') as description,
        COALESCE(phone, '') as phone, active, created_at, updated_at`

func scanInformation(row interface{ Scan(...any) error }) (*models.InformationRecord, error) {
	var rec models.InformationRecord
	err := row.Scan(&rec.ID, &rec.Category, &rec.Value, &rec.Description,
		&rec.Phone, &rec.Active, &rec.CreatedAt, &rec.UpdatedAt)
	return &rec, err
}

func (r *InformationRepository) Create(ctx context.Context, rec *models.InformationRecord) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO information(category, value, description, phone)
         VALUES($1, $2, $3, $4)
         RETURNING id, active, created_at, updated_at`,
		rec.Category, rec.Value, rec.Description, rec.Phone,
	).Scan(&rec.ID, &rec.Active, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *InformationRepository) Get(ctx context.Context, id int) (*models.InformationRecord, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+informationColumns+` FROM information WHERE id=$1`, id)
	return scanInformation(row)
}

// GetByIDs loads a set of records in one fetch, ordered by id ascending.
// The ascending order is what makes back-fill during a merge
// deterministic (lowest id wins).
func (r *InformationRepository) GetByIDs(ctx context.Context, ids []int) ([]*models.InformationRecord, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+informationColumns+` FROM information WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.InformationRecord
	for rows.Next() {
		rec, err := scanInformation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *InformationRepository) ListByCategory(ctx context.Context, category models.Category, activeOnly bool) ([]*models.InformationRecord, error) {
	query := `SELECT ` + informationColumns + ` FROM information WHERE category=$1`
	if activeOnly {
		query += ` AND active`
	}
	query += ` ORDER BY value`

	rows, err := r.DB.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.InformationRecord
	for rows.Next() {
		rec, err := scanInformation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Search finds records in a category whose value matches the term
// case-insensitively. Used by the "add new from filter input" flow to
// offer existing records before creating a duplicate.
func (r *InformationRepository) Search(ctx context.Context, category models.Category, term string) ([]*models.InformationRecord, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+informationColumns+` FROM information
         WHERE category=$1 AND value ILIKE '%' || $2 || '%'
         ORDER BY value`, category, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.InformationRecord
	for rows.Next() {
		rec, err := scanInformation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *InformationRepository) Update(ctx context.Context, rec *models.InformationRecord) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE information SET value=$1, description=$2, phone=$3, active=$4, updated_at=NOW()
         WHERE id=$5`,
		rec.Value, rec.Description, rec.Phone, rec.Active, rec.ID)
	return err
}

func (r *InformationRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM information WHERE id=$1`, id)
	return err
}

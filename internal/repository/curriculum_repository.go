package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/curriculum-api/internal/models"
)

const curriculumColumns = `id, class_name, subject, topic, description, created_at, updated_at`

// CurriculumRepository handles persistence for curriculum rows.
type CurriculumRepository struct {
	db *sqlx.DB
}

// NewCurriculumRepository creates a new repository instance.
func NewCurriculumRepository(db *sqlx.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// List returns every curriculum row ordered by class name then subject.
func (r *CurriculumRepository) List(ctx context.Context) ([]models.Curriculum, error) {
	query := `SELECT ` + curriculumColumns + ` FROM curriculum ORDER BY class_name ASC, subject ASC, id ASC`
	items := make([]models.Curriculum, 0)
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list curriculum: %w", err)
	}
	return items, nil
}

// FindByID returns a curriculum row by id. sql.ErrNoRows is returned unwrapped.
func (r *CurriculumRepository) FindByID(ctx context.Context, id int64) (*models.Curriculum, error) {
	query := `SELECT ` + curriculumColumns + ` FROM curriculum WHERE id = $1`
	var item models.Curriculum
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find curriculum: %w", err)
	}
	return &item, nil
}

// Create inserts a row and fills in the generated id and timestamps.
func (r *CurriculumRepository) Create(ctx context.Context, item *models.Curriculum) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	const query = `INSERT INTO curriculum (class_name, subject, topic, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, item.ClassName, item.Subject, item.Topic, item.Description, item.CreatedAt, item.UpdatedAt).Scan(&item.ID); err != nil {
		return fmt.Errorf("create curriculum: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of a row.
func (r *CurriculumRepository) Update(ctx context.Context, item *models.Curriculum) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE curriculum SET class_name = :class_name, subject = :subject, topic = :topic, description = :description, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update curriculum: %w", err)
	}
	return expectAffected(res, "update curriculum")
}

// Delete removes a curriculum row.
func (r *CurriculumRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM curriculum WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete curriculum: %w", err)
	}
	return expectAffected(res, "delete curriculum")
}

// expectAffected maps a zero-row write to sql.ErrNoRows so a row removed
// between the existence check and the write still reports not found.
func expectAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

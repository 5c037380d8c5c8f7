package photos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/world/internal/client/models"
	"github.com/dmitrijs2005/world/internal/common"
	"github.com/dmitrijs2005/world/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, p *models.Photo) error {
	query := `INSERT INTO photos (id, path, width, height, created_at, deleted)
			values (?, ?, ?, ?, ?, 0)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Path, p.Width, p.Height, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	query := `select id, path, width, height, created_at, deleted from photos where id=? and deleted=0`
	row := r.db.QueryRowContext(ctx, query, id)

	p := &models.Photo{}
	err := row.Scan(&p.ID, &p.Path, &p.Width, &p.Height, &p.CreatedAt, &p.Deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("photo %s: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) MarkDeleted(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `update photos set deleted=1 where id=? and deleted=0`, id)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("photo %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Photo, error) {
	query := `select id, path, width, height, created_at, deleted from photos where deleted=0 order by created_at desc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error selecting photos: %w", err)
	}
	defer rows.Close()

	var result []*models.Photo
	for rows.Next() {
		p := &models.Photo{}
		if err := rows.Scan(&p.ID, &p.Path, &p.Width, &p.Height, &p.CreatedAt, &p.Deleted); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

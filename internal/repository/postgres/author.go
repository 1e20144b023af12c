package postgres

import (
	"context"
	"database/sql"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/repository"
)

type authorRepository struct {
	db *sql.DB
}

func NewAuthorRepository(db *sql.DB) repository.AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *domain.Author) error {
	query := `INSERT INTO authors (name, bio) VALUES ($1, $2) RETURNING id`
	return r.db.QueryRowContext(ctx, query, a.Name, a.Bio).Scan(&a.ID)
}

func (r *authorRepository) GetByID(ctx context.Context, id int32) (*domain.Author, error) {
	a := &domain.Author{}
	query := `SELECT id, name, COALESCE(bio, '') FROM authors WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Bio); err != nil {
		return nil, mapNoRows(err)
	}
	return a, nil
}

func (r *authorRepository) Update(ctx context.Context, a *domain.Author) error {
	res, err := r.db.ExecContext(ctx, `UPDATE authors SET name=$1, bio=$2 WHERE id=$3`, a.Name, a.Bio, a.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *authorRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *authorRepository) List(ctx context.Context) ([]domain.Author, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, COALESCE(bio, '') FROM authors ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []domain.Author
	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

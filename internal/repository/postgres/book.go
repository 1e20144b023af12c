package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/logger"
	"library-loan-backend/internal/repository"
)

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `INSERT INTO books (title, isbn, author_id, category_id, total_copies, available_copies, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, b.Title, b.ISBN, b.AuthorID, b.CategoryID, b.TotalCopies, b.AvailableCopies, time.Now()).Scan(&b.ID)
}

func (r *bookRepository) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	b := &domain.Book{}
	query := `SELECT id, title, isbn, author_id, category_id, total_copies, available_copies, created_at
	          FROM books WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Title, &b.ISBN, &b.AuthorID, &b.CategoryID, &b.TotalCopies, &b.AvailableCopies, &b.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return b, nil
}

// Update writes the catalog fields of a book. available_copies is deliberately
// not part of this statement; only Reserve and Release touch it.
func (r *bookRepository) Update(ctx context.Context, b *domain.Book) error {
	query := `UPDATE books SET title=$1, isbn=$2, author_id=$3, category_id=$4, total_copies=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, b.Title, b.ISBN, b.AuthorID, b.CategoryID, b.TotalCopies, b.ID)
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

func (r *bookRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
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

func (r *bookRepository) List(ctx context.Context, search string, categoryID int32, page, pageSize int32) ([]domain.Book, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT b.id, b.title, b.isbn, b.author_id, b.category_id, b.total_copies, b.available_copies, b.created_at
	          FROM books b WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if search != "" {
		query += fmt.Sprintf(" AND (b.title ILIKE $%d OR b.isbn = $%d)", argIdx, argIdx+1)
		args = append(args, "%"+search+"%", search)
		argIdx += 2
	}
	if categoryID > 0 {
		query += fmt.Sprintf(" AND b.category_id = $%d", argIdx)
		args = append(args, categoryID)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY b.title ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.ISBN, &b.AuthorID, &b.CategoryID, &b.TotalCopies, &b.AvailableCopies, &b.CreatedAt); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, count, rows.Err()
}

// Reserve decrements available_copies by one, but only while it is positive.
// The conditional UPDATE makes the check-and-decrement a single atomic
// statement, so concurrent reservations of the last copy cannot both win.
func (r *bookRepository) Reserve(ctx context.Context, bookID int32) error {
	return reserveCopy(ctx, r.db, bookID)
}

// Release increments available_copies by one, refusing to exceed
// total_copies. Hitting the bound means something released a copy that was
// never reserved; that is logged as a fault rather than silently clamped.
func (r *bookRepository) Release(ctx context.Context, bookID int32) error {
	return releaseCopy(ctx, r.db, bookID)
}

// execer lets the counter statements run on either the pool or an open
// transaction, so loan transitions can commit a reservation together with
// the status change.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func reserveCopy(ctx context.Context, ex execer, bookID int32) error {
	res, err := ex.ExecContext(ctx,
		`UPDATE books SET available_copies = available_copies - 1 WHERE id = $1 AND available_copies > 0`,
		bookID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Either the book does not exist or it has no free copy left.
		var exists bool
		if err := ex.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrNoCopiesAvailable
	}
	return nil
}

func releaseCopy(ctx context.Context, ex execer, bookID int32) error {
	res, err := ex.ExecContext(ctx,
		`UPDATE books SET available_copies = available_copies + 1 WHERE id = $1 AND available_copies < total_copies`,
		bookID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		logger.Error("Release would exceed total_copies, refusing", "book_id", bookID)
		return fmt.Errorf("release of book %d would exceed total copies", bookID)
	}
	return nil
}

package postgres

import (
	"database/sql"
	"errors"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/repository"

	_ "github.com/lib/pq"
)

// dateLayout is how date-granularity columns travel through queries.
const dateLayout = "2006-01-02"

// mapNoRows converts the driver's missing-row error into the domain's
// NotFound so services never have to import database/sql.
func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.AuthorRepository
	repository.CategoryRepository
	repository.BookRepository
	repository.LoanRepository
	repository.PenaltyRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		UserRepository:     NewUserRepository(db),
		AuthorRepository:   NewAuthorRepository(db),
		CategoryRepository: NewCategoryRepository(db),
		BookRepository:     NewBookRepository(db),
		LoanRepository:     NewLoanRepository(db),
		PenaltyRepository:  NewPenaltyRepository(db),
	}
}

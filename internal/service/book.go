package service

import (
	"context"
	"fmt"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/repository"
)

type bookService struct {
	bookRepo     repository.BookRepository
	authorRepo   repository.AuthorRepository
	categoryRepo repository.CategoryRepository
}

func NewBookService(
	bookRepo repository.BookRepository,
	authorRepo repository.AuthorRepository,
	categoryRepo repository.CategoryRepository,
) BookService {
	return &bookService{
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *bookService) AddBook(ctx context.Context, book *domain.Book) error {
	if book.Title == "" || book.ISBN == "" {
		return fmt.Errorf("%w: title and isbn are required", ErrValidation)
	}
	if book.TotalCopies < 1 {
		return fmt.Errorf("%w: total_copies must be at least 1", ErrValidation)
	}
	if _, err := s.authorRepo.GetByID(ctx, book.AuthorID); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(ctx, book.CategoryID); err != nil {
		return err
	}
	// A new book starts fully on the shelf.
	book.AvailableCopies = book.TotalCopies
	return s.bookRepo.Create(ctx, book)
}

func (s *bookService) GetBook(ctx context.Context, id int32) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if author, err := s.authorRepo.GetByID(ctx, book.AuthorID); err == nil {
		book.Author = author
	}
	if category, err := s.categoryRepo.GetByID(ctx, book.CategoryID); err == nil {
		book.Category = category
	}
	return book, nil
}

// UpdateBook changes the catalog fields of a book. Raising total_copies does
// not touch available_copies; lowering it below the number of copies
// currently out is refused so the inventory invariant cannot be broken.
func (s *bookService) UpdateBook(ctx context.Context, book *domain.Book) error {
	current, err := s.bookRepo.GetByID(ctx, book.ID)
	if err != nil {
		return err
	}
	lentOut := current.TotalCopies - current.AvailableCopies
	if book.TotalCopies < lentOut {
		return fmt.Errorf("%w: cannot reduce total copies to %d, %d copies are currently lent out", ErrValidation, book.TotalCopies, lentOut)
	}
	return s.bookRepo.Update(ctx, book)
}

func (s *bookService) DeleteBook(ctx context.Context, id int32) error {
	return s.bookRepo.Delete(ctx, id)
}

func (s *bookService) ListBooks(ctx context.Context, search string, categoryID, page, pageSize int32) ([]domain.Book, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.bookRepo.List(ctx, search, categoryID, page, pageSize)
}

func (s *bookService) CreateAuthor(ctx context.Context, author *domain.Author) error {
	if author.Name == "" {
		return fmt.Errorf("%w: author name is required", ErrValidation)
	}
	return s.authorRepo.Create(ctx, author)
}

func (s *bookService) UpdateAuthor(ctx context.Context, author *domain.Author) error {
	return s.authorRepo.Update(ctx, author)
}

func (s *bookService) DeleteAuthor(ctx context.Context, id int32) error {
	return s.authorRepo.Delete(ctx, id)
}

func (s *bookService) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	return s.authorRepo.List(ctx)
}

func (s *bookService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	return s.categoryRepo.Create(ctx, category)
}

func (s *bookService) UpdateCategory(ctx context.Context, category *domain.Category) error {
	return s.categoryRepo.Update(ctx, category)
}

func (s *bookService) DeleteCategory(ctx context.Context, id int32) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *bookService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

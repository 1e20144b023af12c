package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/service"
)

type BookHandler struct {
	bookSvc service.BookService
}

func NewBookHandler(bookSvc service.BookService) *BookHandler {
	return &BookHandler{bookSvc: bookSvc}
}

// List handles GET /api/books with optional ?q=, ?category_id=, paging.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt32(q.Get("page"), 1)
	pageSize := queryInt32(q.Get("page_size"), 20)
	categoryID := queryInt32(q.Get("category_id"), 0)

	books, total, err := h.bookSvc.ListBooks(r.Context(), q.Get("q"), categoryID, page, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"books": books,
		"total": total,
	})
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	book, err := h.bookSvc.GetBook(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var book domain.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.bookSvc.AddBook(r.Context(), &book); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, book)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var book domain.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	book.ID = id
	if err := h.bookSvc.UpdateBook(r.Context(), &book); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.bookSvc.DeleteBook(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *BookHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.bookSvc.ListAuthors(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authors)
}

func (h *BookHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var author domain.Author
	if err := json.NewDecoder(r.Body).Decode(&author); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.bookSvc.CreateAuthor(r.Context(), &author); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, author)
}

func (h *BookHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var author domain.Author
	if err := json.NewDecoder(r.Body).Decode(&author); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	author.ID = id
	if err := h.bookSvc.UpdateAuthor(r.Context(), &author); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, author)
}

func (h *BookHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.bookSvc.DeleteAuthor(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *BookHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.bookSvc.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *BookHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.bookSvc.CreateCategory(r.Context(), &category); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *BookHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	category.ID = id
	if err := h.bookSvc.UpdateCategory(r.Context(), &category); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *BookHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.bookSvc.DeleteCategory(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func queryInt32(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}

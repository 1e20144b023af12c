package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"library-loan-backend/internal/service"
)

type LoanHandler struct {
	loanSvc             service.LoanService
	penaltySvc          service.PenaltyService
	defaultDurationDays int
}

func NewLoanHandler(loanSvc service.LoanService, penaltySvc service.PenaltyService, defaultDurationDays int) *LoanHandler {
	return &LoanHandler{
		loanSvc:             loanSvc,
		penaltySvc:          penaltySvc,
		defaultDurationDays: defaultDurationDays,
	}
}

type createLoanRequest struct {
	BookID int32 `json:"book_id"`
	Days   int   `json:"days,omitempty"`
}

// Create handles POST /api/loans. Admin callers borrow directly; everyone
// else opens a request that waits for approval.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BookID == 0 {
		writeError(w, http.StatusBadRequest, "book_id is required")
		return
	}
	days := req.Days
	if days <= 0 {
		days = h.defaultDurationDays
	}

	loan, err := h.loanSvc.CreateRequest(r.Context(), actorID(r), actorRole(r), req.BookID, days)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

func (h *LoanHandler) Approve(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	loan, err := h.loanSvc.Approve(r.Context(), loanID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) Reject(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	loan, err := h.loanSvc.Reject(r.Context(), loanID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	loan, err := h.loanSvc.Return(r.Context(), loanID, actorID(r), actorRole(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// MyLoans handles GET /api/loans/my, penalties attached where present.
func (h *LoanHandler) MyLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanSvc.ListForUser(r.Context(), actorID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

// PendingRequests handles GET /api/loans/requests (admin), oldest first.
func (h *LoanHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanSvc.ListPendingRequests(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

// MyPenalties handles GET /api/loans/penalties.
func (h *LoanHandler) MyPenalties(w http.ResponseWriter, r *http.Request) {
	penalties, err := h.penaltySvc.ListForUser(r.Context(), actorID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, penalties)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return int32(id), true
}

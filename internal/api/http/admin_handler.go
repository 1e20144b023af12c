package http

import (
	"encoding/json"
	"net/http"
	"time"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/service"
	"library-loan-backend/internal/utils"
)

type AdminHandler struct {
	adminSvc   service.AdminService
	penaltySvc service.PenaltyService
}

func NewAdminHandler(adminSvc service.AdminService, penaltySvc service.PenaltyService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, penaltySvc: penaltySvc}
}

type createUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser handles POST /api/admin/users. Unlike self-registration this
// accepts any role, so it sits behind the admin gate.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.adminSvc.CreateUser(r.Context(), req.FullName, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, total, err := h.adminSvc.ListUsers(r.Context(), queryInt32(q.Get("page"), 1), queryInt32(q.Get("page_size"), 20))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"total": total,
	})
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func (h *AdminHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.adminSvc.SetUserActive(r.Context(), userID, req.IsActive); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "updated"})
}

type penaltyView struct {
	domain.Penalty
	IsActive      bool  `json:"is_active"`
	DaysRemaining int32 `json:"days_remaining"`
}

// ListPenalties handles GET /api/admin/penalties with activity derived from
// penalty_end_date at read time.
func (h *AdminHandler) ListPenalties(w http.ResponseWriter, r *http.Request) {
	penalties, err := h.penaltySvc.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	today := utils.DateOf(time.Now())
	views := make([]penaltyView, 0, len(penalties))
	for _, p := range penalties {
		v := penaltyView{Penalty: p}
		if p.ActiveOn(today) {
			v.IsActive = true
			v.DaysRemaining = int32(p.PenaltyEndDate.Sub(today).Hours() / 24)
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, views)
}

// WaivePenalty handles POST /api/admin/penalties/{id}/remove.
func (h *AdminHandler) WaivePenalty(w http.ResponseWriter, r *http.Request) {
	penaltyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	penalty, err := h.penaltySvc.Waive(r.Context(), penaltyID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, penalty)
}

// MarkPenaltyPaid handles POST /api/admin/penalties/{id}/pay.
func (h *AdminHandler) MarkPenaltyPaid(w http.ResponseWriter, r *http.Request) {
	penaltyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.penaltySvc.MarkPaid(r.Context(), penaltyID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "paid"})
}

package users

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"userdir/internal/platform/middleware"
	dErrors "userdir/pkg/domain-errors"
	"userdir/pkg/platform/httputil"
)

// Handler exposes the user CRUD routes.
type Handler struct {
	service   *Service
	logger    *slog.Logger
	validator middleware.JWTValidator

	// requireAuth gates mutations behind a valid token. Reads always accept
	// anonymous callers; a presented token only attributes the action.
	requireAuth bool
}

func NewHandler(service *Service, validator middleware.JWTValidator, requireAuth bool, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger, validator: validator, requireAuth: requireAuth}
}

// Register registers the user routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(h.validator, h.logger))
		r.Get("/users", h.handleListIDs)
		r.Get("/users-detailed", h.handleListDetailed)
		r.Get("/users/{id}", h.handleGet)
	})

	r.Group(func(r chi.Router) {
		if h.requireAuth {
			r.Use(middleware.RequireAuth(h.validator, h.logger))
		} else {
			r.Use(middleware.OptionalAuth(h.validator, h.logger))
		}
		r.Post("/users", h.handleCreate)
		r.Put("/users/{id}", h.handleUpdate)
		r.Delete("/users/{id}", h.handleDelete)
	})
}

type createUserRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

type updateUserRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type userPageResponse struct {
	Users   []userResponse `json:"users"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	user, err := h.service.Create(r.Context(), CreateParams{
		ID:          req.ID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Name == nil && req.PhoneNumber == nil && req.Address == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "at least one field must be provided"))
		return
	}

	user, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), UpdateParams{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.NoContent(w)
}

func (h *Handler) handleListIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.ListIDs(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ids)
}

func (h *Handler) handleListDetailed(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Page: 1, PerPage: 10, Search: r.URL.Query().Get("search")}

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "page must be a positive integer"))
			return
		}
		filter.Page = n
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "per_page must be between 1 and 100"))
			return
		}
		filter.PerPage = n
	}

	page, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := userPageResponse{
		Users:   make([]userResponse, 0, len(page.Users)),
		Total:   page.Total,
		Page:    page.Page,
		PerPage: page.PerPage,
	}
	for _, u := range page.Users {
		resp.Users = append(resp.Users, toUserResponse(u))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

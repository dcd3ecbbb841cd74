package handlers

import (
	"net/http"
	"time"

	"mikkoo/internal/app"
	"mikkoo/internal/common"
	"mikkoo/internal/domain/user"
	"mikkoo/internal/http/middleware"
	"mikkoo/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	limiter      middleware.Limiter
}

func NewApplicationHandler(applications *app.ApplicationService, limiter middleware.Limiter) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, limiter: limiter}
}

type submitRequest struct {
	PostingID string `json:"posting_id"`
	Message   string `json:"message"`
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	postingID, err := common.ParseUUID(req.PostingID)
	if err != nil {
		response.Error(w, validationError("posting_id", "invalid uuid"))
		return
	}
	if h.limiter != nil {
		key := "submit:" + postingID.String() + ":" + providerID.String()
		if !h.limiter.Allow(key, 3, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "submit rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Submit(r.Context(), postingID, providerID, req.Message)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

type acceptResponse struct {
	Accepted any `json:"accepted"`
	Rejected any `json:"rejected"`
}

func (h *ApplicationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	winner, rejected, err := h.applications.Accept(r.Context(), applicationID, ownerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, acceptResponse{Accepted: winner, Rejected: rejected})
}

func (h *ApplicationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.Reject(r.Context(), applicationID, ownerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.Withdraw(r.Context(), applicationID, providerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

// List serves the role-appropriate listing: providers see their own
// applications, requesters see applications on one of their postings.
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	activeRole, ok := middleware.ActiveRoleFromContext(r.Context())
	if !ok || activeRole == "" {
		response.Error(w, common.NewError(common.CodeForbidden, "role not selected", nil))
		return
	}
	switch activeRole {
	case user.RoleProvider:
		items, err := h.applications.ListByProvider(r.Context(), userID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
	case user.RoleRequester:
		postingID, err := common.ParseUUID(r.URL.Query().Get("posting_id"))
		if err != nil {
			response.Error(w, validationError("posting_id", "posting_id query parameter is required"))
			return
		}
		items, err := h.applications.ListByPosting(r.Context(), postingID, userID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
	default:
		response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
	}
}

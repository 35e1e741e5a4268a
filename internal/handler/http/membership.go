package http

import (
	"encoding/json"
	"net/http"

	"github.com/crewdesk/membership-backend-go/internal/domain/membership"
	"github.com/crewdesk/membership-backend-go/internal/handler/http/middleware"
	"github.com/crewdesk/membership-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MembershipHandler interface {
	ListMembers(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	PendingCount(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ChangeRole(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
}

type membershipHandlerImpl struct {
	membershipService membership.MembershipService
}

func NewMembershipHandler(membershipService membership.MembershipService) MembershipHandler {
	return &membershipHandlerImpl{
		membershipService: membershipService,
	}
}

// ListMembers implements MembershipHandler - active members of the actor's company
func (h *membershipHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.membershipService.ListMembers(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListPending implements MembershipHandler
func (h *membershipHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.membershipService.ListPending(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// PendingCount implements MembershipHandler - badge count for the approvals view
func (h *membershipHandlerImpl) PendingCount(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.membershipService.PendingCount(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements MembershipHandler
func (h *membershipHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	membershipID := chi.URLParam(r, "id")
	if membershipID == "" {
		response.BadRequest(w, "Membership ID is required", nil)
		return
	}

	result, err := h.membershipService.Approve(r.Context(), actor, membershipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Membership approved successfully", result)
}

// Reject implements MembershipHandler
func (h *membershipHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	membershipID := chi.URLParam(r, "id")
	if membershipID == "" {
		response.BadRequest(w, "Membership ID is required", nil)
		return
	}

	if err := h.membershipService.Reject(r.Context(), actor, membershipID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Membership rejected", nil)
}

// ChangeRole implements MembershipHandler
func (h *membershipHandlerImpl) ChangeRole(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req membership.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.MembershipID = chi.URLParam(r, "id")

	result, err := h.membershipService.ChangeRole(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member role updated successfully", result)
}

// Remove implements MembershipHandler - owner-only expulsion
func (h *membershipHandlerImpl) Remove(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	membershipID := chi.URLParam(r, "id")
	if membershipID == "" {
		response.BadRequest(w, "Membership ID is required", nil)
		return
	}

	if err := h.membershipService.Remove(r.Context(), actor, membershipID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member removed successfully", membership.RemoveResponse{Removed: true})
}

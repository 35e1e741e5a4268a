package http

import (
	"encoding/json"
	"net/http"

	"github.com/crewdesk/membership-backend-go/internal/domain/invite"
	"github.com/crewdesk/membership-backend-go/internal/domain/membership"
	"github.com/crewdesk/membership-backend-go/internal/handler/http/middleware"
	"github.com/crewdesk/membership-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type InviteHandler interface {
	CreateInvite(w http.ResponseWriter, r *http.Request)
	RedeemInvite(w http.ResponseWriter, r *http.Request)
	RevokeInvite(w http.ResponseWriter, r *http.Request)
}

type inviteHandlerImpl struct {
	membershipService membership.MembershipService
}

func NewInviteHandler(membershipService membership.MembershipService) InviteHandler {
	return &inviteHandlerImpl{
		membershipService: membershipService,
	}
}

// CreateInvite implements InviteHandler
func (h *inviteHandlerImpl) CreateInvite(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req invite.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.membershipService.CreateInvite(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invite created successfully", result)
}

// RedeemInvite implements InviteHandler - the redeeming user needs an identity
// but not yet a company membership, so only the user_id claim is read.
func (h *inviteHandlerImpl) RedeemInvite(w http.ResponseWriter, r *http.Request) {
	_, claims, _ := jwtauth.FromContext(r.Context())

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	token := chi.URLParam(r, "token")
	if token == "" {
		response.BadRequest(w, "Token is required", nil)
		return
	}

	result, err := h.membershipService.RedeemInvite(r.Context(), userID, token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invite redeemed, membership pending approval", result)
}

// RevokeInvite implements InviteHandler
func (h *inviteHandlerImpl) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	inviteID := chi.URLParam(r, "id")
	if inviteID == "" {
		response.BadRequest(w, "Invite ID is required", nil)
		return
	}

	if err := h.membershipService.RevokeInvite(r.Context(), actor, inviteID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invite revoked", nil)
}

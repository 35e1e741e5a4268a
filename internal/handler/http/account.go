package http

import (
	"encoding/json"
	"net/http"

	"github.com/crewdesk/membership-backend-go/internal/domain/credential"
	"github.com/crewdesk/membership-backend-go/internal/handler/http/response"
	credentialservice "github.com/crewdesk/membership-backend-go/internal/service/credential"
	"github.com/go-chi/jwtauth/v5"
)

type AccountHandler interface {
	VerifyPassword(w http.ResponseWriter, r *http.Request)
	ResetVerification(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type accountHandlerImpl struct {
	gates *credentialservice.Manager
}

func NewAccountHandler(gates *credentialservice.Manager) AccountHandler {
	return &accountHandlerImpl{
		gates: gates,
	}
}

func (h *accountHandlerImpl) userID(r *http.Request) (string, bool) {
	_, claims, _ := jwtauth.FromContext(r.Context())
	userID, ok := claims["user_id"].(string)
	return userID, ok && userID != ""
}

// VerifyPassword implements AccountHandler - checks the current password and
// arms the change gate on success
func (h *accountHandlerImpl) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	var req credential.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.gates.GateFor(userID).Verify(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ResetVerification implements AccountHandler - the client signals the
// current-password input was edited, dropping any standing verification
func (h *accountHandlerImpl) ResetVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	h.gates.GateFor(userID).InputChanged()
	response.SuccessWithMessage(w, "Verification reset", nil)
}

// ChangePassword implements AccountHandler
func (h *accountHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		response.Unauthorized(w, "User ID not found in token")
		return
	}

	var req credential.ChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.gates.GateFor(userID).ChangeCredential(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// The edit session ends with the change; drop the gate so it does not
	// accumulate for the process lifetime.
	h.gates.CloseSession(userID)

	response.SuccessWithMessage(w, "Password changed successfully", result)
}

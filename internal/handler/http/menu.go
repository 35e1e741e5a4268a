package http

import (
	"net/http"

	"github.com/crewdesk/membership-backend-go/internal/domain/user"
	"github.com/crewdesk/membership-backend-go/internal/handler/http/middleware"
	"github.com/crewdesk/membership-backend-go/internal/handler/http/response"
)

// defaultMenu is the full navigation tree in display order. Each entry names
// the minimum role that sees it.
var defaultMenu = []user.MenuItem{
	{ID: "dashboard", MinRole: user.RoleEmployee},
	{ID: "profile", MinRole: user.RoleEmployee},
	{ID: "employees", MinRole: user.RoleAdmin},
	{ID: "members", MinRole: user.RoleAdmin},
	{ID: "approvals", MinRole: user.RoleAdmin},
	{ID: "invites", MinRole: user.RoleAdmin},
	{ID: "company-settings", MinRole: user.RoleOwner},
	{ID: "billing", MinRole: user.RoleOwner},
}

type MenuHandler interface {
	GetMenu(w http.ResponseWriter, r *http.Request)
}

type menuHandlerImpl struct{}

func NewMenuHandler() MenuHandler {
	return &menuHandlerImpl{}
}

// GetMenu implements MenuHandler - navigation entries visible to the actor's role
func (h *menuHandlerImpl) GetMenu(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.FilterMenu(actor.Role, defaultMenu))
}

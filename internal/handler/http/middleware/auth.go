package middleware

import (
	"net/http"

	"github.com/crewdesk/membership-backend-go/internal/domain/user"
	"github.com/crewdesk/membership-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// ActorFromContext rebuilds the acting user from the verified token claims.
// An unknown role string is kept as-is; capability checks treat it as the
// lowest level.
func ActorFromContext(r *http.Request) (user.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Actor{}, user.ErrIdentityClaimRequired
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, user.ErrIdentityClaimRequired
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return user.Actor{}, user.ErrCompanyClaimRequired
	}

	role, _ := claims["role"].(string)
	permission, _ := claims["permission"].(string)

	return user.Actor{
		UserID:     userID,
		CompanyID:  companyID,
		Role:       user.Role(role),
		Permission: user.Permission(permission),
	}, nil
}

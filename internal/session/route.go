package session

import (
	"context"
	"errors"

	"github.com/Veraticus/monetr-client/internal/common"
)

// Route is the view the user is sent to.
type Route int

// Routes.
const (
	RouteLogin Route = iota
	RouteVerifyEmail
	RouteSetup
	RouteMain
)

// String returns the path of the route.
func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "/login"
	case RouteVerifyEmail:
		return "/verify/email/resend"
	case RouteSetup:
		return "/setup"
	case RouteMain:
		return "/transactions"
	default:
		return "/"
	}
}

// Route returns the view for the current authentication state. Authenticated users without any
// link go through setup first.
func (s *Session) Route(hasAnyLinks bool) Route {
	switch {
	case !s.IsAuthenticated():
		return RouteLogin
	case !hasAnyLinks:
		return RouteSetup
	default:
		return RouteMain
	}
}

// HandleError maps an API failure to navigation. An expired session logs out and routes to
// login; an unverified email routes to the resend verification view. ok is false for errors
// that do not change the route.
func (s *Session) HandleError(ctx context.Context, err error) (route Route, ok bool) {
	switch {
	case err == nil:
		return 0, false
	case errors.Is(err, common.ErrUnauthorized):
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			s.logger.Warn("failed to clear session after authentication failure", "error", logoutErr)
		}
		return RouteLogin, true
	case errors.Is(err, common.ErrEmailNotVerified):
		return RouteVerifyEmail, true
	default:
		return 0, false
	}
}

package service

import "clinic-admin/internal/domain/entity"

// Redirect targets used by the admin gate.
const (
	RedirectSignIn    = "/"
	RedirectDashboard = "/dashboard"
)

// AccessDecision is the outcome of an admin check: either the caller is
// allowed through, or must be sent to RedirectTo.
type AccessDecision struct {
	Allowed    bool
	RedirectTo string
}

func Allow() AccessDecision {
	return AccessDecision{Allowed: true}
}

func RedirectTo(path string) AccessDecision {
	return AccessDecision{RedirectTo: path}
}

// AuthorizeAdmin decides whether identity may reach the admin area.
// A nil identity is sent to sign in. Anyone else whose primary email is not
// exactly adminEmail goes to the dashboard, as does everyone when adminEmail
// is empty.
func AuthorizeAdmin(identity *entity.Identity, adminEmail string) AccessDecision {
	if identity == nil {
		return RedirectTo(RedirectSignIn)
	}

	primaryEmail, ok := identity.PrimaryEmail()
	if adminEmail == "" || !ok || primaryEmail != adminEmail {
		return RedirectTo(RedirectDashboard)
	}

	return Allow()
}

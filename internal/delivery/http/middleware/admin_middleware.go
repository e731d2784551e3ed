package middleware

import (
	"net/http"

	"clinic-admin/internal/service"

	"github.com/sirupsen/logrus"
)

// AdminGate restricts a route to the single configured admin identity.
// Callers that are turned away are redirected rather than refused.
type AdminGate struct {
	adminEmail func() string
	log        *logrus.Logger
}

// NewAdminGate builds the gate. adminEmail is called on every request.
func NewAdminGate(adminEmail func() string, log *logrus.Logger) *AdminGate {
	return &AdminGate{
		adminEmail: adminEmail,
		log:        log,
	}
}

func (g *AdminGate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := GetIdentityFromContext(r.Context())

		decision := service.AuthorizeAdmin(identity, g.adminEmail())
		if !decision.Allowed {
			g.log.WithFields(logrus.Fields{
				"path":        r.URL.Path,
				"redirect_to": decision.RedirectTo,
			}).Info("Admin access denied")
			http.Redirect(w, r, decision.RedirectTo, http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

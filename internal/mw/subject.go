package mw

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/permission"
	"github.com/nikolayk812/storefront/internal/session"
)

// Subject resolves the caller from the session. It must run inside the session middleware.
func Subject(perms permission.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())

			var owner domain.Owner = domain.Anonymous{}
			if userID, ok := sess.UserID(); ok {
				owner = domain.RegisteredUser{ID: userID}
			}

			ctx := access.WithSubject(r.Context(), access.Subject{
				Owner:           owner,
				Perms:           permission.For(perms, owner),
				SessionOrderIDs: sess.OrderIDs(),
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

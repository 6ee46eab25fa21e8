package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nikolayk812/storefront/internal/access"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/trace"
)

const (
	MsgNotAuthenticated = "Authentication credentials were not provided."
	MsgForbidden        = "You do not have permission to perform this action."
	MsgNotFound         = "Not found."
	MsgInternal         = "A server error occurred."
	MsgBadCredentials   = "Unable to log in with provided credentials."
)

// WriteErr is the single place where service errors become HTTP responses.
func WriteErr(w http.ResponseWriter, r *http.Request, err error) {
	var (
		denied *access.DeniedError
		verr   *domain.ValidationError
	)

	switch {
	case errors.As(err, &denied):
		if denied.Err != nil {
			slog.Error("authorization check failed", trace.Attr(r.Context()),
				"m", r.Method, "path", r.URL.Path, "err", err)
		}
		if denied.Anonymous {
			WriteError(w, http.StatusUnauthorized, MsgNotAuthenticated)
			return
		}
		WriteError(w, http.StatusForbidden, MsgForbidden)

	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, ValidationErrors{Errors: verr.Fields})

	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSON(w, http.StatusBadRequest, ValidationErrors{
			Errors: map[string][]string{domain.NonFieldErrors: {MsgBadCredentials}},
		})

	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, MsgNotFound)

	case errors.Is(err, context.DeadlineExceeded):
		// the timeout middleware answers 504
		slog.Warn("request timed out", trace.Attr(r.Context()), "m", r.Method, "path", r.URL.Path)

	default:
		slog.Error("request failed", trace.Attr(r.Context()),
			"m", r.Method, "path", r.URL.Path, "err", err)
		WriteError(w, http.StatusInternalServerError, MsgInternal)
	}
}

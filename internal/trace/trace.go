// Package trace tags every API request with an id that is echoed to the
// client and attached to each log record written while serving it.
package trace

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Header carries the trace id in both directions.
const Header = "X-Trace-ID"

const maxLen = 64

func NewID() string {
	return uuid.NewString()
}

// Valid reports whether a client supplied id may be reused. Anything else
// would end up verbatim in logs, so only short ids of [A-Za-z0-9._/-] pass.
func Valid(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for _, c := range []byte(id) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.', c == '/':
		default:
			return false
		}
	}
	return true
}

func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns the trace id of ctx, or "" outside a traced request.
func From(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Attr is the log attribute for the trace id of ctx.
func Attr(ctx context.Context) slog.Attr {
	return slog.String("trace", From(ctx))
}

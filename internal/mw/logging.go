package mw

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/nikolayk812/storefront/internal/httpx"
	"github.com/nikolayk812/storefront/internal/trace"
)

type LogOpts struct {
	SkipPaths []string
	// RedactHeaders are masked in the error detail record, case-insensitively.
	RedactHeaders []string
}

func DefaultLogOpts() LogOpts {
	return LogOpts{
		SkipPaths:     []string{"/healthz", "/version"},
		RedactHeaders: []string{"Authorization", "Cookie", "Set-Cookie"},
	}
}

// Logger writes a one-line "req" record per request and a "req_detail" record with headers for failures.
func Logger(opts LogOpts) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || slices.Contains(opts.SkipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := httpx.NewRecorder(w)
			next.ServeHTTP(rec, r)
			dur := time.Since(start)

			status := rec.Status()

			slog.Info("req",
				trace.Attr(r.Context()),
				"m", r.Method,
				"path", r.URL.Path,
				"status", status,
				"ms", dur.Milliseconds(),
				"bytes", rec.Written(),
			)

			if status >= 400 {
				slog.Error("req_detail",
					trace.Attr(r.Context()),
					"m", r.Method, "path", r.URL.Path,
					"status", status, "ms", dur.Milliseconds(),
					"headers", redact(r.Header, opts.RedactHeaders),
				)
			}
		})
	}
}

func redact(header http.Header, names []string) map[string]string {
	h := make(map[string]string, len(header))
	for k, vv := range header {
		if len(vv) == 0 {
			continue
		}
		v := vv[0]
		if slices.ContainsFunc(names, func(name string) bool { return strings.EqualFold(k, name) }) {
			v = "***redacted***"
		}
		h[k] = v
	}
	return h
}

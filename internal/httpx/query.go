package httpx

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/storefront/internal/domain"
)

const msgInteger = "A valid integer is required."

// ParsePage reads limit and offset query parameters.
func ParsePage(r *http.Request) (domain.Page, error) {
	page := domain.Page{Limit: domain.DefaultPageLimit}
	verr := &domain.ValidationError{}
	q := r.URL.Query()

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		switch {
		case err != nil:
			verr.Add("limit", msgInteger)
		case limit < 1 || limit > domain.MaxPageLimit:
			verr.Add("limit", fmt.Sprintf("Ensure this value is between 1 and %d.", domain.MaxPageLimit))
		default:
			page.Limit = limit
		}
	}

	if s := q.Get("offset"); s != "" {
		offset, err := strconv.Atoi(s)
		switch {
		case err != nil:
			verr.Add("offset", msgInteger)
		case offset < 0:
			verr.Add("offset", "Ensure this value is greater than or equal to 0.")
		default:
			page.Offset = offset
		}
	}

	if !verr.Empty() {
		return page, verr
	}

	return page, nil
}

// ParseID reads an integer path parameter. A malformed id names no record.
func ParseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("strconv.ParseInt[%s]: %w", name, domain.ErrNotFound)
	}
	return id, nil
}

// QueryList reads a filter given either repeated or comma separated.
func QueryList(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

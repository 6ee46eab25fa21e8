// Package httpx holds the JSON plumbing shared by handlers and middleware.
package httpx

import (
	"encoding/json"
	"net/http"
)

type APIError struct {
	Error string `json:"error"`
}

// ValidationErrors is the 400 body: field name to messages.
type ValidationErrors struct {
	Errors map[string][]string `json:"errors"`
}

// List is the envelope of every collection response.
type List[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

func NewList[T any](count int, results []T) List[T] {
	if results == nil {
		results = []T{}
	}
	return List[T]{Count: count, Results: results}
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, APIError{Error: msg})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

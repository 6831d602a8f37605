package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// queryString returns a pointer to the query value, nil when absent.
func queryString(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

// queryInt returns a pointer to the parsed query value, nil when absent
// or unparsable.
func queryInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// queryIntDefault parses a query value, falling back when absent.
func queryIntDefault(r *http.Request, name string, fallback int) int {
	if n := queryInt(r, name); n != nil {
		return *n
	}
	return fallback
}

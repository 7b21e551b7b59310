// Package site serves the embedded landing page.
package site

import (
	"context"
	"net/http"
)

// Router is the subset of http.ServeMux and chi.Router used for registration.
type Router interface {
	Handle(pattern string, h http.Handler)
}

// Register attaches the landing page to r at /.
func Register(_ context.Context, r Router) {
	if r == nil {
		panic("router is nil")
	}
	r.Handle("/", NewRootHandler())
}

// RootHandler serves the landing page with the create-user and add-exercise forms.
type RootHandler struct {
	page []byte
}

// NewRootHandler creates a new root handler. It panics if the embedded page is
// missing, which can only happen with a broken build.
func NewRootHandler() *RootHandler {
	page, err := Index()
	if err != nil {
		panic(err)
	}
	return &RootHandler{page: page}
}

// ServeHTTP serves the page for GET and HEAD on / and nothing else.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(h.page)
	}
}

package router

import (
	"net/http"

	"github.com/gorilla/mux"
)

type RouteRegistrar interface {
	RegisterRoutes(r *mux.Router)
}

// New builds the API router. The auth middleware wraps every registered
// route; registrars only know about paths.
func New(authMiddleware func(http.Handler) http.Handler, registrars ...RouteRegistrar) *mux.Router {
	r := mux.NewRouter()

	if authMiddleware != nil {
		r.Use(mux.MiddlewareFunc(authMiddleware))
	}

	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(r)
		}
	}

	return r
}

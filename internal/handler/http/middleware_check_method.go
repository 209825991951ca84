// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi's default behaviour is to respond with HTTP 405 Method Not Allowed
// whenever a request path matches a registered route but the HTTP method
// is not handled. This function overrides that behaviour: the request is
// answered by notFound, hiding the existence of the route from callers that
// use an unsupported method.
//
// The lookup walks every route registered on router, including those of
// mounted sub-routers, and compares the full pattern against the raw request
// path. Only exact pattern matches are considered. If the method turns out to
// be registered for the path the request is forwarded to router.
func CheckHTTPMethod(router *chi.Mux, notFound http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !routeHasMethod(router, r.URL.Path, r.Method) {
			notFound(w, r)
			return
		}

		router.ServeHTTP(w, r)
	}
}

func routeHasMethod(router chi.Routes, path, method string) bool {
	found := false
	_ = chi.Walk(router, func(m string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if route == path && m == method {
			found = true
		}
		return nil
	})
	return found
}

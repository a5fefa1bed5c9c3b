package server

import (
	"context"
	"net/http"
)

type ctxKey int

const ctxKeyVisitor ctxKey = iota

func visitorMiddleware(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, err := visitorFromRequest(r, sessions)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "no journey session, open the page first")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyVisitor, v)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func visitorFrom(r *http.Request) *visitor {
	return r.Context().Value(ctxKeyVisitor).(*visitor)
}

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"petify/internal/platform/httpx"
	"petify/internal/platform/logger"
)

// Recover reemplaza a chimw.Recoverer: el panic se loguea con el logger del
// request y el cliente recibe el mismo 500 JSON que cualquier otro error.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.FromContext(r.Context()).Error("panic recovered", map[string]any{
				"panic": fmt.Sprint(rec),
				"stack": string(debug.Stack()),
			})
			httpx.WriteDetail(w, http.StatusInternalServerError, "internal error")
		}()
		next.ServeHTTP(w, r)
	})
}

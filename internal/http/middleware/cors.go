package middleware

import "net/http"

const (
	// AllowedHeaders are the request headers the browser client sends
	AllowedHeaders = "authorization, x-client-info, apikey, content-type"

	FunctionMethods  = "POST, OPTIONS"
	DashboardMethods = "GET, POST, OPTIONS"
)

// CORSMiddleware sets the CORS headers on every response and answers
// preflight requests with an empty 200
func CORSMiddleware(methods string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", AllowedHeaders)
			w.Header().Set("Access-Control-Allow-Methods", methods)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

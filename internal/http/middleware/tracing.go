package middleware

import (
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware starts an OpenCensus span per request. Query strings are
// not recorded since reset links carry tokens.
func TracingMiddleware(next http.Handler) http.Handler {
	handler := &ochttp.Handler{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if span := trace.FromContext(r.Context()); span != nil {
				span.AddAttributes(
					trace.StringAttribute("http.method", r.Method),
					trace.StringAttribute("http.path", r.URL.Path),
					trace.StringAttribute("http.user_agent", r.UserAgent()),
				)
				if clientInfo := r.Header.Get("X-Client-Info"); clientInfo != "" {
					span.AddAttributes(trace.StringAttribute("http.client_info", clientInfo))
				}
				w = &statusRecorder{ResponseWriter: w, span: span}
			}
			next.ServeHTTP(w, r)
		}),
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}
	return handler
}

// statusRecorder marks the span as failed on 4xx and 5xx responses
type statusRecorder struct {
	http.ResponseWriter
	span *trace.Span
}

func (s *statusRecorder) WriteHeader(code int) {
	s.span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
	if code >= 400 {
		s.span.SetStatus(trace.Status{
			Code:    trace.StatusCodeUnknown,
			Message: http.StatusText(code),
		})
	}
	s.ResponseWriter.WriteHeader(code)
}

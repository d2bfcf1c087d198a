package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeEvent adapts an HTTP request to an Event, dispatches it and writes
// the Response. The resource is the chi route pattern that matched, or
// empty when no route did.
func (h *Handler) ServeEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.Logger.Warn("cannot read request body", zap.Error(err))
		writeResponse(w, message(http.StatusBadRequest, "Cannot read request body."))
		return
	}

	var resource string
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		resource = rctx.RoutePattern()
	}

	ev := Event{
		Resource:   resource,
		Path:       r.URL.Path,
		HTTPMethod: r.Method,
		Headers:    lowerHeaders(r.Header),
		Body:       string(body),
	}
	writeResponse(w, h.Dispatch(r.Context(), ev))
}

// lowerHeaders приводит имена заголовков к нижнему регистру:
// net/http хранит их в каноническом виде (X-Api-Key).
func lowerHeaders(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for name, values := range header {
		if len(values) > 0 {
			out[strings.ToLower(name)] = values[0]
		}
	}
	return out
}

func writeResponse(w http.ResponseWriter, resp Response) {
	for name, value := range resp.Headers {
		w.Header().Set(name, value)
	}
	if resp.Body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		_, _ = io.WriteString(w, resp.Body)
	}
}

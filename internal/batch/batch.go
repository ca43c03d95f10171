// Package batch runs multiple read-only sub-requests in a single round-trip.
package batch

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

// MaxBodySize limits the size of batch request bodies.
const MaxBodySize = 1 << 20

// Renderer renders responses.
type Renderer interface {
	// RenderJSON renders a successful response.
	RenderJSON(w http.ResponseWriter, v interface{})
	// RenderError renders errors, including *Error.
	RenderError(w http.ResponseWriter, err error)
}

// Error is returned when a batch request is invalid.
type Error struct {
	// Name is the offending request body attribute, may be blank.
	Name        string
	Description string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Name == "" {
		return "body: " + e.Description
	}
	return e.Name + " in body: " + e.Description
}

// Handler returns a new handler. Sub-requests are served by mux, at most
// maxRequests per batch, unlimited if zero.
func Handler(mux http.Handler, maxRequests int, rnd Renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// parse request
		var req Request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&req); err != nil {
			rnd.RenderError(w, &Error{Description: "Invalid JSON"})
			return
		}
		if maxRequests > 0 && len(req.Requests) > maxRequests {
			rnd.RenderError(w, &Error{Name: "requests", Description: "Number of requests is limited to " + strconv.Itoa(maxRequests) + "."})
			return
		}
		if req.containsRecursive() {
			rnd.RenderError(w, &Error{Name: "requests", Description: "Recursive call on /batch endpoint is forbidden."})
			return
		}

		// unset the batch route context
		ctx := context.WithValue(r.Context(), chi.RouteCtxKey, nil)

		// parse/collect sub-requests
		sub := make([]*http.Request, 0, len(req.Requests))
		for pos, part := range req.Requests {
			part.Norm(req.Defaults)

			sreq, err := part.httpRequest(ctx, r.Header)
			if err != nil {
				rnd.RenderError(w, &Error{Name: "requests." + strconv.Itoa(pos), Description: err.Error()})
				return
			}
			sub = append(sub, sreq)
		}

		// record/collect responses
		rec := poolRecorder()
		defer releaseRecorder(rec)

		res := &Response{Responses: make([]ResponsePart, 0, len(sub))}
		for _, sr := range sub {
			mux.ServeHTTP(rec, sr)
			rec.appendTo(res, sr.URL.String())
		}

		rnd.RenderJSON(w, res)
	})
}

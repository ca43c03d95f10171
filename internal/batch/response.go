package batch

import (
	"encoding/json"
	"net/http"
	"sync"
)

// Response is a batch response.
type Response struct {
	Responses []ResponsePart `json:"responses"`
}

// ResponsePart contains sub-response information of a batch response.
type ResponsePart struct {
	Status  int               `json:"status"`
	Path    string            `json:"path"`
	Body    json.RawMessage   `json:"body,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// responseRecorder records sub-responses, one at a time.
type responseRecorder struct {
	code   int
	header http.Header
	body   []byte
}

// Header implements http.ResponseWriter interface.
func (w *responseRecorder) Header() http.Header {
	if w.header == nil {
		w.header = make(http.Header)
	}
	return w.header
}

// WriteHeader implements http.ResponseWriter interface.
func (w *responseRecorder) WriteHeader(code int) {
	if w.code == 0 {
		w.code = code
	}
}

// Write implements http.ResponseWriter interface.
func (w *responseRecorder) Write(p []byte) (int, error) {
	if w.code == 0 {
		w.WriteHeader(http.StatusOK)
	}
	w.body = append(w.body, p...)
	return len(p), nil
}

func (w *responseRecorder) appendTo(r *Response, path string) {
	part := ResponsePart{
		Status: w.code,
		Path:   path,
	}
	if part.Status == 0 {
		part.Status = http.StatusOK
	}
	if len(w.body) != 0 {
		part.Body = append(json.RawMessage(nil), w.body...)
	}
	if len(w.header) != 0 {
		part.Headers = make(map[string]string, len(w.header))
		for key := range w.header {
			part.Headers[key] = w.header.Get(key)
		}
	}
	r.Responses = append(r.Responses, part)

	w.reset()
}

func (w *responseRecorder) reset() {
	for key := range w.header {
		delete(w.header, key)
	}
	*w = responseRecorder{header: w.header, body: w.body[:0]}
}

var recorderPool sync.Pool

func poolRecorder() *responseRecorder {
	if v := recorderPool.Get(); v != nil {
		return v.(*responseRecorder)
	}
	return new(responseRecorder)
}

func releaseRecorder(w *responseRecorder) {
	w.reset()
	recorderPool.Put(w)
}

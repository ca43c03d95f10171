package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/riposo/finder/internal/batch"
	"github.com/riposo/finder/pkg/bufferpool"
	"github.com/riposo/finder/pkg/finder"
)

type errCode int

const (
	errCodeMissingAuthToken  errCode = 104
	errCodeInvalidParameters errCode = 107
	errCodeMissingResource   errCode = 111
	errCodeMethodNotAllowed  errCode = 115
	errCodeUndefined         errCode = 999
)

type httpError struct {
	StatusCode int     `json:"code"`
	ErrCode    errCode `json:"errno"`
	Text       string  `json:"error"`
	Message    string  `json:"message,omitempty"`
}

func (e *httpError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Text
}

var errNotFound = &httpError{
	StatusCode: http.StatusNotFound,
	ErrCode:    errCodeMissingResource,
	Text:       "Not Found",
	Message:    "The resource you are looking for could not be found.",
}

var errUnauthorized = &httpError{
	StatusCode: http.StatusUnauthorized,
	ErrCode:    errCodeMissingAuthToken,
	Text:       "Unauthorized",
	Message:    "Please authenticate yourself to use this endpoint.",
}

var errMethodNotAllowed = &httpError{
	StatusCode: http.StatusMethodNotAllowed,
	ErrCode:    errCodeMethodNotAllowed,
	Text:       "Method Not Allowed",
	Message:    "Method not allowed on this endpoint.",
}

func invalidQuery(message string) *httpError {
	return &httpError{
		StatusCode: http.StatusBadRequest,
		ErrCode:    errCodeInvalidParameters,
		Text:       "Invalid parameters",
		Message:    "querystring: " + message,
	}
}

func invalidBody(message string) *httpError {
	return &httpError{
		StatusCode: http.StatusBadRequest,
		ErrCode:    errCodeInvalidParameters,
		Text:       "Invalid parameters",
		Message:    message,
	}
}

func backendError(err error) *httpError {
	return &httpError{
		StatusCode: http.StatusInternalServerError,
		ErrCode:    errCodeUndefined,
		Text:       http.StatusText(http.StatusInternalServerError),
		Message:    err.Error(),
	}
}

// renderError responds with an error.
func renderError(w http.ResponseWriter, err error) {
	var (
		herr *httpError
		cerr *finder.ConfigurationError
		uerr *finder.UnsupportedOperatorError
		berr *batch.Error
	)

	switch {
	case errors.As(err, &herr):
	case errors.As(err, &cerr):
		herr = invalidQuery(cerr.Error())
	case errors.As(err, &uerr):
		herr = invalidQuery(uerr.Error())
	case errors.As(err, &berr):
		herr = invalidBody(berr.Error())
	case errors.Is(err, finder.ErrNotFound):
		herr = errNotFound
	default:
		finder.Logger.Printf("error=%q", err.Error())
		herr = backendError(err)
	}
	_ = render(w, herr.StatusCode, herr)
}

// renderJSON renders any value as JSON.
func renderJSON(w http.ResponseWriter, v interface{}) {
	if err := render(w, http.StatusOK, v); err != nil {
		renderError(w, err)
	}
}

func render(w http.ResponseWriter, code int, v interface{}) error {
	buf := bufferpool.Get()
	defer bufferpool.Put(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(v); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w) // ignore errors, header already written
	return nil
}

// renderer implements batch.Renderer.
type renderer struct{}

func (renderer) RenderJSON(w http.ResponseWriter, v interface{}) { renderJSON(w, v) }
func (renderer) RenderError(w http.ResponseWriter, err error)    { renderError(w, err) }

package batch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var skipHeaders = map[string]struct{}{
	"Accept-Encoding":   {},
	"Connection":        {},
	"Content-Encoding":  {},
	"Content-Length":    {},
	"Content-Type":      {},
	"Keep-Alive":        {},
	"Transfer-Encoding": {},
	"Upgrade":           {},
}

// Request is a batch request.
type Request struct {
	Defaults *RequestPart  `json:"defaults"`
	Requests []RequestPart `json:"requests"`
}

func (r *Request) containsRecursive() bool {
	if r.Defaults != nil && r.Defaults.isRecursive() {
		return true
	}

	for _, part := range r.Requests {
		if part.isRecursive() {
			return true
		}
	}
	return false
}

// RequestPart contains sub-request information of a batch request.
type RequestPart struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Headers map[string]string `json:"headers"`
}

// Norm merges defaults into p. Method defaults to GET.
func (p *RequestPart) Norm(defaults *RequestPart) {
	if defaults != nil {
		if p.Method == "" {
			p.Method = defaults.Method
		}
		if p.Path == "" {
			p.Path = defaults.Path
		}
		if n := len(defaults.Headers); n != 0 {
			if p.Headers == nil {
				p.Headers = make(map[string]string, n)
			}
			for key, val := range defaults.Headers {
				if _, ok := p.Headers[key]; !ok {
					p.Headers[key] = val
				}
			}
		}
	}

	if p.Method == "" {
		p.Method = http.MethodGet
	}
}

func (p *RequestPart) isRecursive() bool {
	return strings.HasPrefix(p.Path, "/batch")
}

func (p *RequestPart) httpRequest(ctx context.Context, parent http.Header) (*http.Request, error) {
	method := strings.ToUpper(p.Method)
	switch method {
	case http.MethodGet, http.MethodHead:
		// read-only
	default:
		return nil, fmt.Errorf("invalid method %q", p.Method)
	}

	if !strings.HasPrefix(p.Path, "/") {
		return nil, fmt.Errorf("invalid path %q", p.Path)
	}

	hr, err := http.NewRequestWithContext(ctx, method, p.Path, http.NoBody)
	if err != nil {
		if uerr := new(url.Error); errors.As(err, &uerr) {
			return nil, fmt.Errorf("invalid path %q", p.Path)
		}
		return nil, err
	}

	for key := range parent {
		if _, ok := skipHeaders[key]; !ok {
			hr.Header.Set(key, parent.Get(key))
		}
	}
	for key, val := range p.Headers {
		hr.Header.Set(key, val)
	}
	return hr, nil
}

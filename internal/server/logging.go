package server

import (
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
)

type logger struct {
	*log.Logger
}

func (l *logger) NewLogEntry(r *http.Request) middleware.LogEntry {
	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return &logEntry{
		parent: l,
		id:     middleware.GetReqID(r.Context()),
		host:   host,
		method: r.Method,
		path:   r.URL.RequestURI(),
	}
}

type logEntry struct {
	parent                 *logger
	id, host, method, path string
}

func (e *logEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	if e.id != "" {
		e.parent.Printf("id=%s host=%s method=%s path=%q status=%03d bytes=%d taken=%.3f",
			e.id, e.host, e.method, e.path, status, bytes, elapsed.Seconds())
		return
	}
	e.parent.Printf("host=%s method=%s path=%q status=%03d bytes=%d taken=%.3f",
		e.host, e.method, e.path, status, bytes, elapsed.Seconds())
}

func (*logEntry) Panic(v interface{}, _ []byte) {
	middleware.PrintPrettyStack(v)
}

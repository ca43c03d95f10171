package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	chimw "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/riposo/finder/internal/batch"
	"github.com/riposo/finder/internal/config"
	"github.com/riposo/finder/pkg/auth"
	"github.com/riposo/finder/pkg/conn"
	"github.com/riposo/finder/pkg/finder"
	"github.com/riposo/finder/pkg/identity"
	"github.com/riposo/finder/pkg/query"
	"github.com/riposo/finder/pkg/schema"
)

type mux struct {
	*chi.Mux
	cn  *conn.Conn
	cfg *config.Config
}

func newMux(cn *conn.Conn, cfg *config.Config) (http.Handler, error) {
	m := &mux{
		Mux: chi.NewMux(),
		cn:  cn,
		cfg: cfg,
	}

	m.Use(chimw.RealIP)
	if name := cfg.Server.RequestID; name != "" {
		gen, err := identity.Get(name)
		if err != nil {
			return nil, err
		}
		m.Use(requestID(gen))
	}
	m.Use(chimw.RequestLogger(&logger{Logger: finder.Logger}))
	m.Use(chimw.Recoverer)
	m.Use(chimw.Compress(3))
	m.Use(chimw.SetHeader("X-Content-Type-Options", "nosniff"))
	m.Use(cors.Handler(configCORS(m.cfg)))

	// custom error handlers
	m.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, errNotFound)
	})
	m.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, errMethodNotAllowed)
	})

	m.Get("/", m.Hello)
	m.Get("/__heartbeat__", m.Heartbeat)
	m.Get("/__lbheartbeat__", m.HeartbeatLB)

	m.Group(func(r chi.Router) {
		if len(cfg.Auth.Users) != 0 {
			r.Use(authenticate(auth.Basic(cfg.Auth.Users)))
		}

		r.Method(http.MethodPost, "/batch", batch.Handler(m, cfg.Batch.MaxRequests, renderer{}))
		r.Route("/entities", m.entities)
	})

	return m, nil
}

func (m *mux) entities(r chi.Router) {
	r.Use(chimw.StripSlashes)

	r.Get("/", m.Entities)
	r.Route("/{entity}", func(r chi.Router) {
		r.Use(m.entityCtx)

		r.Get("/records", m.Records)
		r.Get("/count", m.Count)
		r.Get("/sql", m.SQL)
	})
}

func (m *mux) Hello(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, map[string]interface{}{
		"project_name":    "finder",
		"project_version": finder.Version,
		"dialect":         m.cn.Dialect().Name,
		"url":             r.URL.String(),
		"settings": map[string]interface{}{
			"max_take":           m.cfg.Query.MaxTake,
			"batch_max_requests": m.cfg.Batch.MaxRequests,
		},
	})
}

func (m *mux) Heartbeat(w http.ResponseWriter, r *http.Request) {
	ok := m.cn.Ping(r.Context()) == nil
	if ok {
		renderJSON(w, map[string]bool{"database": ok})
		return
	}
	_ = render(w, http.StatusServiceUnavailable, map[string]bool{"database": ok})
}

func (*mux) HeartbeatLB(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, struct{}{})
}

func (*mux) Entities(w http.ResponseWriter, _ *http.Request) {
	type column struct {
		Field   string `json:"field"`
		Column  string `json:"column"`
		Primary bool   `json:"primary,omitempty"`
	}
	type entity struct {
		Name    string   `json:"name"`
		Table   string   `json:"table"`
		Columns []column `json:"columns"`
	}

	data := make([]entity, 0)
	schema.Each(func(e *schema.Entity) {
		ent := entity{Name: e.Name, Table: e.Table, Columns: make([]column, 0, len(e.Columns))}
		for _, col := range e.Columns {
			ent.Columns = append(ent.Columns, column{Field: col.Field, Column: col.Name, Primary: col.Primary})
		}
		data = append(data, ent)
	})
	renderJSON(w, map[string]interface{}{"data": data})
}

func (m *mux) Records(w http.ResponseWriter, r *http.Request) {
	b, err := m.builder(r, true)
	if err != nil {
		renderError(w, err)
		return
	}

	ctx, cancel := m.queryContext(r.Context())
	defer cancel()

	recs, err := b.GetMany(ctx, m.cn)
	if err != nil {
		renderError(w, err)
		return
	}
	if recs == nil {
		recs = []*schema.Record{}
	}
	renderJSON(w, map[string]interface{}{"data": recs})
}

func (m *mux) Count(w http.ResponseWriter, r *http.Request) {
	b, err := m.builder(r, false)
	if err != nil {
		renderError(w, err)
		return
	}

	ctx, cancel := m.queryContext(r.Context())
	defer cancel()

	n, err := b.GetCount(ctx, m.cn)
	if err != nil {
		renderError(w, err)
		return
	}
	renderJSON(w, map[string]int64{"count": n})
}

func (m *mux) SQL(w http.ResponseWriter, r *http.Request) {
	b, err := m.builder(r, true)
	if err != nil {
		renderError(w, err)
		return
	}

	var q query.Compiled
	switch qs := r.URL.Query(); {
	case qs.Get("count") == "true":
		q, err = b.BuildCount()
	case qs.Get("condition") == "true":
		q, err = b.BuildCondition()
	default:
		q, err = b.Build()
	}
	if err != nil {
		renderError(w, err)
		return
	}

	args := q.Args
	if args == nil {
		args = []interface{}{}
	}
	renderJSON(w, map[string]interface{}{"sql": q.SQL, "args": args})
}

// --------------------------------------------------------------------

type ctxKey struct{}

var entityKey = ctxKey{}

func (m *mux) entityCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ent, ok := schema.Lookup(chi.URLParam(r, "entity"))
		if !ok {
			renderError(w, errNotFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), entityKey, ent)))
	})
}

func (m *mux) builder(r *http.Request, capTake bool) (*query.Builder, error) {
	ent := r.Context().Value(entityKey).(*schema.Entity)
	qs := r.URL.Query()

	opt, err := parseFindOptions(qs)
	if err != nil {
		return nil, err
	}
	if max := m.cfg.Query.MaxTake; capTake && max > 0 && (opt.Take == 0 || opt.Take > max) {
		opt.Take = max
	}

	qo := &query.Options{Policy: m.cfg.Where}
	if m.cfg.Query.Log {
		qo.Logger = finder.Logger
	}
	return m.cn.Builder(ent, qs.Get("alias"), qo).SetFindOptions(opt)
}

func (m *mux) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.cfg.Query.Timeout > 0 {
		return context.WithTimeout(ctx, m.cfg.Query.Timeout)
	}
	return context.WithCancel(ctx)
}

func configCORS(c *config.Config) cors.Options {
	return cors.Options{
		AllowedOrigins: c.CORS.Origins,
		MaxAge:         int(c.CORS.MaxAge.Seconds()),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodOptions,
		},
	}
}

// Package query contains the query builder that turns find options into
// executed queries.
package query

import (
	"context"
	"log"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/riposo/finder/internal/compiler"
	"github.com/riposo/finder/internal/normalize"
	"github.com/riposo/finder/pkg/dialect"
	"github.com/riposo/finder/pkg/finder"
	"github.com/riposo/finder/pkg/params"
	"github.com/riposo/finder/pkg/predicate"
	"github.com/riposo/finder/pkg/schema"
)

// Compiled is a compiled query.
type Compiled = compiler.Query

// Options configure builders.
type Options struct {
	// Dialect is the target SQL dialect. Default: dialect.Postgres.
	Dialect *dialect.Dialect
	// Policy determines how null and absent where values are treated.
	Policy params.ValuePolicy
	// Logger logs executed queries, if set.
	Logger *log.Logger
	// Clock is used to time queries. Default: the wall clock.
	Clock clock.Clock
}

func (o *Options) norm() *Options {
	var oo Options
	if o != nil {
		oo = *o
	}
	if oo.Dialect == nil {
		oo.Dialect = dialect.Postgres
	}
	if oo.Clock == nil {
		oo.Clock = clock.New()
	}
	return &oo
}

// Builder builds queries for an entity. Builders are immutable, every
// configuration call returns a new builder.
type Builder struct {
	opt   *Options
	ent   *schema.Entity
	alias string

	where  predicate.Node
	order  []params.SortOrder
	fields []string
	limit  int
	offset int
}

// New inits a new builder for entity ent, using alias in generated SQL.
// The alias defaults to the entity name.
func New(ent *schema.Entity, alias string, opt *Options) *Builder {
	if alias == "" {
		alias = ent.Name
	}

	return &Builder{
		opt:   opt.norm(),
		ent:   ent,
		alias: alias,
		where: predicate.Empty{},
	}
}

// Entity returns the target entity.
func (b *Builder) Entity() *schema.Entity { return b.ent }

// Alias returns the table alias.
func (b *Builder) Alias() string { return b.alias }

// Dialect returns the target dialect.
func (b *Builder) Dialect() *dialect.Dialect { return b.opt.Dialect }

// Where returns the normalized predicate tree.
func (b *Builder) Where() predicate.Node { return b.where }

// Order returns the normalized sort order.
func (b *Builder) Order() []params.SortOrder { return b.order }

// SetFindOptions validates and normalizes find options and returns a new
// builder with the resulting state. Previously configured options are
// replaced, not merged. It returns a *finder.ConfigurationError if the
// options cannot be applied to the entity.
func (b *Builder) SetFindOptions(opt params.FindOptions) (*Builder, error) {
	if opt.Take < 0 {
		return nil, finder.ConfigErrorf(b.ent.Name, "", "take must not be negative")
	}
	if opt.Skip < 0 {
		return nil, finder.ConfigErrorf(b.ent.Name, "", "skip must not be negative")
	}

	where, err := normalize.Where(b.ent, b.opt.Policy, opt.Conditions()...)
	if err != nil {
		return nil, err
	}

	order, err := normalize.Order(b.ent, opt.Order)
	if err != nil {
		return nil, err
	}

	var fields []string
	if len(opt.Select) != 0 {
		if fields, err = normalize.Select(b.ent, opt.Select); err != nil {
			return nil, err
		}
	}

	return &Builder{
		opt:    b.opt,
		ent:    b.ent,
		alias:  b.alias,
		where:  where,
		order:  order,
		fields: fields,
		limit:  opt.Take,
		offset: opt.Skip,
	}, nil
}

// Fields returns the selected fields.
func (b *Builder) Fields() []string {
	if len(b.fields) == 0 {
		return b.ent.Fields()
	}
	return b.fields
}

// Build compiles the SELECT query.
func (b *Builder) Build() (Compiled, error) {
	return compiler.Select(b.opt.Dialect, b.statement())
}

// BuildCount compiles the SELECT COUNT query.
func (b *Builder) BuildCount() (Compiled, error) {
	return compiler.Count(b.opt.Dialect, b.statement())
}

// BuildCondition compiles the bare filter condition, without the WHERE
// keyword, for embedding into hand-written statements. Builders without
// filters compile to a blank condition.
func (b *Builder) BuildCondition() (Compiled, error) {
	return compiler.Condition(b.opt.Dialect, b.ent, b.alias, b.where)
}

// GetMany executes the query and returns all matching records.
func (b *Builder) GetMany(ctx context.Context, exec Executor) ([]*schema.Record, error) {
	q, err := b.Build()
	if err != nil {
		return nil, err
	}

	start := b.opt.Clock.Now()
	recs, err := hydrate(ctx, exec, q, b.Fields())
	b.logQuery(q, start, err)
	return recs, err
}

// GetOne executes the query and returns the first matching record.
// It returns finder.ErrNotFound if no records match.
func (b *Builder) GetOne(ctx context.Context, exec Executor) (*schema.Record, error) {
	bb := *b
	bb.limit = 1

	recs, err := bb.GetMany(ctx, exec)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, finder.ErrNotFound
	}
	return recs[0], nil
}

// GetCount executes the count query and returns the number of matching
// records.
func (b *Builder) GetCount(ctx context.Context, exec Executor) (int64, error) {
	q, err := b.BuildCount()
	if err != nil {
		return 0, err
	}

	start := b.opt.Clock.Now()
	cnt, err := count(ctx, exec, q)
	b.logQuery(q, start, err)
	return cnt, err
}

func (b *Builder) statement() *compiler.Statement {
	return &compiler.Statement{
		Entity: b.ent,
		Alias:  b.alias,
		Fields: b.fields,
		Where:  b.where,
		Order:  b.order,
		Limit:  b.limit,
		Offset: b.offset,
	}
}

func (b *Builder) logQuery(q Compiled, start time.Time, err error) {
	if b.opt.Logger == nil {
		return
	}

	taken := b.opt.Clock.Since(start)
	if err != nil {
		b.opt.Logger.Printf("query=%q args=%v taken=%.3f error=%q", q.SQL, q.Args, taken.Seconds(), err.Error())
	} else {
		b.opt.Logger.Printf("query=%q args=%v taken=%.3f", q.SQL, q.Args, taken.Seconds())
	}
}

package cli

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/riposo/finder/internal/config"
	"github.com/riposo/finder/pkg/finder"
	"github.com/riposo/finder/pkg/params"
	"github.com/riposo/finder/pkg/query"
	"github.com/riposo/finder/pkg/schema"
	"github.com/riposo/finder/pkg/util"
)

// configFile returns the config file path from sub-command args.
func configFile(args []interface{}) string {
	if len(args) != 0 {
		if s, ok := args[0].(string); ok {
			return s
		}
	}
	return ""
}

// setup parses the config and registers the configured entities.
func setup(args []interface{}) (*config.Config, error) {
	cfg, err := config.Parse(configFile(args))
	if err != nil {
		return nil, usageErrorf("invalid configuration: %v", err)
	}
	if err := registerEntities(cfg.Entities); err != nil {
		return nil, err
	}
	return cfg, nil
}

var (
	entitiesOnce sync.Once
	entitiesErr  error
)

func registerEntities(fname string) error {
	entitiesOnce.Do(func() {
		entitiesErr = loadEntities(fname)
	})
	return entitiesErr
}

func loadEntities(fname string) error {
	f, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf("unable to read entities file %q: %w", fname, err)
	}
	defer f.Close()

	ents, err := schema.LoadYAML(f)
	if err != nil {
		return err
	}
	for _, e := range ents {
		schema.Register(e)
	}
	return nil
}

// --------------------------------------------------------------------

type queryFlags struct {
	entity string
	alias  string
	where  string
	order  string
	sort   string
	fields string
	take   int
	skip   int
}

func (f *queryFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.entity, "entity", "", "Entity name (required).")
	fs.StringVar(&f.alias, "alias", "", "Table alias, defaults to the entity name.")
	fs.StringVar(&f.where, "where", "", `Where conditions as JSON, e.g. '{"type":"A"}'.`)
	fs.StringVar(&f.order, "order", "", `Order as JSON, e.g. '{"id":"DESC"}'.`)
	fs.StringVar(&f.sort, "sort", "", "Compact order, e.g. 'type,-id'. Ignored when -order is set.")
	fs.StringVar(&f.fields, "select", "", "Comma-separated list of fields to select.")
	fs.IntVar(&f.take, "take", 0, "Maximum number of records.")
	fs.IntVar(&f.skip, "skip", 0, "Number of records to skip.")
}

func (f *queryFlags) findOptions() (params.FindOptions, error) {
	opt := params.FindOptions{Take: f.take, Skip: f.skip}

	if f.where != "" {
		conds, err := params.ParseWhere(f.where)
		if err != nil {
			return opt, usageErrorf("invalid -where: %v", err)
		}
		opt.Or = conds
	}

	switch {
	case f.order != "":
		order, err := params.ParseOrder(f.order)
		if err != nil {
			return opt, usageErrorf("invalid -order: %v", err)
		}
		opt.Order = order
	case f.sort != "":
		opt.Order = params.OrderOf(params.ParseSort(f.sort))
	}

	util.SplitFields(f.fields, ",", func(s string) {
		opt.Select = append(opt.Select, s)
	})
	return opt, nil
}

func (f *queryFlags) builder(cfg *config.Config, qo *query.Options) (*query.Builder, error) {
	if f.entity == "" {
		return nil, usageErrorf("missing -entity")
	}

	ent, ok := schema.Lookup(f.entity)
	if !ok {
		return nil, usageErrorf("unknown entity %q", f.entity)
	}

	opt, err := f.findOptions()
	if err != nil {
		return nil, err
	}

	qo.Policy = cfg.Where
	if cfg.Query.Log {
		qo.Logger = finder.Logger
	}
	return query.New(ent, f.alias, qo).SetFindOptions(opt)
}

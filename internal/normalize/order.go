package normalize

import (
	"strings"

	"github.com/riposo/finder/pkg/finder"
	"github.com/riposo/finder/pkg/params"
	"github.com/riposo/finder/pkg/schema"
)

// Order normalizes an order mapping for an entity, preserving the order
// of entries. Repeated fields are ignored.
func Order(ent *schema.Entity, order params.Order) ([]params.SortOrder, error) {
	if len(order) == 0 {
		return nil, nil
	}

	sort := make([]params.SortOrder, 0, len(order))
	for _, e := range order {
		if _, ok := ent.Column(e.Field); !ok {
			return nil, unknownField(ent, e.Field)
		}

		desc, err := params.ParseDirection(e.Direction)
		if err != nil {
			return nil, finder.ConfigErrorf(ent.Name, e.Field, "%v", err)
		}
		sort = params.AppendSortOrder(sort, params.SortOrder{Field: e.Field, Descending: desc})
	}
	return sort, nil
}

// Select validates and normalizes selected fields. Embedded groups select
// all of their columns. It returns all fields of the entity if none are
// given.
func Select(ent *schema.Entity, fields []string) ([]string, error) {
	if len(fields) == 0 {
		return ent.Fields(), nil
	}

	selected := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if _, ok := ent.Column(field); ok {
			selected[field] = struct{}{}
		} else if ent.IsEmbedded(field) {
			for _, col := range ent.Columns {
				if strings.HasPrefix(col.Field, field+".") {
					selected[col.Field] = struct{}{}
				}
			}
		} else {
			return nil, unknownField(ent, field)
		}
	}

	// keep definition order
	res := make([]string, 0, len(selected))
	for _, col := range ent.Columns {
		if _, ok := selected[col.Field]; ok {
			res = append(res, col.Field)
		}
	}
	return res, nil
}

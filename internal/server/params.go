package server

import (
	"net/url"
	"strconv"

	"github.com/riposo/finder/pkg/params"
	"github.com/riposo/finder/pkg/util"
)

// parseFindOptions parses find options from a query string.
func parseFindOptions(qs url.Values) (params.FindOptions, error) {
	var opt params.FindOptions

	if s := qs.Get("where"); s != "" {
		conds, err := params.ParseWhere(s)
		if err != nil {
			return opt, invalidQuery("where " + err.Error())
		}
		opt.Or = conds
	}

	if s := qs.Get("order"); s != "" {
		order, err := params.ParseOrder(s)
		if err != nil {
			return opt, invalidQuery("order " + err.Error())
		}
		opt.Order = order
	} else if s := qs.Get("sort"); s != "" {
		opt.Order = params.OrderOf(params.ParseSort(s))
	}

	for _, s := range qs["select"] {
		util.SplitFields(s, ",", func(field string) {
			opt.Select = append(opt.Select, field)
		})
	}

	var err error
	if opt.Take, err = parseInt(qs, "take"); err != nil {
		return opt, err
	}
	if opt.Skip, err = parseInt(qs, "skip"); err != nil {
		return opt, err
	}
	return opt, nil
}

func parseInt(qs url.Values, key string) (int, error) {
	s := qs.Get(key)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, invalidQuery(key + " must be a positive integer")
	}
	return n, nil
}

package params

// FindOptions configure a query.
type FindOptions struct {
	// Where is the primary filter object.
	Where Where
	// Or lists alternative filter objects. A row qualifies if it matches
	// Where or any of Or. A blank Where is ignored when Or is set.
	Or []Where
	// Order determines the sort order.
	Order Order
	// Select limits the returned fields. All fields are returned if blank.
	Select []string
	// Take limits the number of rows returned.
	Take int
	// Skip skips a number of rows.
	Skip int
}

// Conditions returns all filter objects that are OR'ed.
func (o *FindOptions) Conditions() []Where {
	if len(o.Or) == 0 {
		if len(o.Where) == 0 {
			return nil
		}
		return []Where{o.Where}
	}

	if len(o.Where) == 0 {
		return o.Or
	}

	conds := make([]Where, 0, 1+len(o.Or))
	conds = append(conds, o.Where)
	return append(conds, o.Or...)
}

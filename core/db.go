package core

// DBOrdering is one element of a query's ORDER BY clause; repositories
// validate Field against their own column allowlist before use.
type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

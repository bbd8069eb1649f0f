package domain

// TableCounts is the number of stored rows per entity, reported by the health endpoint.
type TableCounts struct {
	Trips      int64
	Days       int64
	Activities int64
}

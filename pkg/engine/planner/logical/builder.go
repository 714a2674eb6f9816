package logical

// Table is the boundary to a storage-backed relation. The planner resolves
// relation names to tables before optimization begins; the optimizer only
// needs a table to hand out a scan builder.
type Table interface {
	// CreateScanBuilder returns a fresh scan builder for reading the table.
	// It may return nil if the table does not support scan building, in
	// which case the relation is left in the plan untouched.
	CreateScanBuilder() TableScanBuilder
}

// TableScanBuilder accumulates operators pushed down into a storage-native
// read request. Each PushDown method attempts to encode the operator's
// semantics into the accumulated request and reports whether it succeeded.
//
// Absorption is all-or-nothing: a method that returns false must leave the
// builder's observable state exactly as it was before the call. Any
// lower-level failure (such as an unsupported predicate shape) must be
// translated into a rejection rather than an error, so the operator stays
// in the logical plan as still-executable logic.
type TableScanBuilder interface {
	PushDownFilter(filter *Filter) bool
	PushDownAggregation(aggregation *Aggregation) bool
	PushDownSort(sort *Sort) bool
	PushDownLimit(limit *Limit) bool
	PushDownProjection(projection *Projection) bool
	PushDownHighlight(highlight *Highlight) bool
	PushDownNested(nested *Nested) bool
}

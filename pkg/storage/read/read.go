// Package read holds shared building blocks for storage scan builders: the
// types a storage engine embeds to satisfy the planner's
// [logical.TableScanBuilder] boundary.
package read

import "github.com/siftql/sift/pkg/engine/planner/logical"

// UnimplementedScanBuilder rejects every push-down. Storage engines embed
// it and override only the operators their request representation can
// absorb, so that adding a new push-down-capable operator to the planner
// does not break existing builders.
type UnimplementedScanBuilder struct{}

var _ logical.TableScanBuilder = UnimplementedScanBuilder{}

func (UnimplementedScanBuilder) PushDownFilter(*logical.Filter) bool           { return false }
func (UnimplementedScanBuilder) PushDownAggregation(*logical.Aggregation) bool { return false }
func (UnimplementedScanBuilder) PushDownSort(*logical.Sort) bool               { return false }
func (UnimplementedScanBuilder) PushDownLimit(*logical.Limit) bool             { return false }
func (UnimplementedScanBuilder) PushDownProjection(*logical.Projection) bool   { return false }
func (UnimplementedScanBuilder) PushDownHighlight(*logical.Highlight) bool     { return false }
func (UnimplementedScanBuilder) PushDownNested(*logical.Nested) bool           { return false }

package search

import (
	"context"

	"github.com/pkg/errors"

	"github.com/siftql/sift/pkg/engine/planner/logical"
)

// Table is a search index exposed to the planner as a storage-backed
// relation. It implements [logical.Table].
type Table struct {
	name            string
	maxResultWindow int
}

var _ logical.Table = (*Table)(nil)

// Table resolves an index into a planner table, discovering the index's
// max result window so limit push-down can respect it.
func (c *Client) Table(ctx context.Context, index string) (*Table, error) {
	windows, err := c.GetIndexMaxResultWindows(ctx, index)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve settings of index %s", index)
	}
	window, ok := windows[index]
	if !ok {
		window = DefaultMaxResultWindow
	}
	return &Table{name: index, maxResultWindow: window}, nil
}

// Name returns the index name backing the table.
func (t *Table) Name() string {
	return t.name
}

// CreateScanBuilder implements [logical.Table].
func (t *Table) CreateScanBuilder() logical.TableScanBuilder {
	return NewRequestBuilder(t.name, t.maxResultWindow)
}

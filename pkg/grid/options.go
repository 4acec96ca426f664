package grid

import (
	"time"

	"github.com/gridkit/infinigrid/pkg/errors"
)

// Default configuration values. These are applied by New when the
// corresponding Options field is zero.
const (
	// DefaultCapacity is the window capacity (maximum materialized items).
	DefaultCapacity = 30

	// DefaultThreshold is the distance from the viewport edge, in layout
	// units, at which a load-more trigger fires.
	DefaultThreshold = 100.0

	// DefaultResizeDebounce is how long the viewport size must stay stable
	// before a resize is applied.
	DefaultResizeDebounce = 100 * time.Millisecond

	// DefaultPrependRetries bounds the post-prepend polling loop that
	// re-checks whether the viewport is still pinned at the absolute top.
	DefaultPrependRetries = 5

	// DefaultPrependRetryInterval is the delay between those re-checks.
	DefaultPrependRetryInterval = 100 * time.Millisecond
)

// Options configures a Grid.
type Options struct {
	// ColumnWidth is the fixed width of every column. Required.
	ColumnWidth float64 `json:"column_width"`

	// Gutter is the spacing between columns and between stacked items.
	Gutter float64 `json:"gutter"`

	// Columns fixes the column count. When 0, the count is derived from the
	// viewport width and recomputed on resize.
	Columns int `json:"columns"`

	// Capacity bounds the window length. Values < 0 disable recycling
	// entirely (the window grows without bound); 0 selects DefaultCapacity.
	Capacity int `json:"capacity"`

	// Threshold is the trigger distance from the viewport edges.
	Threshold float64 `json:"threshold"`

	// EqualSize declares all items share the first item's measured size,
	// enabling O(1) rank-modulo placement.
	EqualSize bool `json:"equal_size"`

	// ElasticOverscroll suppresses top-edge scroll offsets, so platform
	// rubber-banding cannot fire spurious prepends.
	ElasticOverscroll bool `json:"elastic_overscroll"`

	// ResizeDebounce is the quiet period required before a resize applies.
	ResizeDebounce time.Duration `json:"resize_debounce"`

	// PrependRetries and PrependRetryInterval bound the post-prepend
	// at-the-top polling loop.
	PrependRetries       int           `json:"prepend_retries"`
	PrependRetryInterval time.Duration `json:"prepend_retry_interval"`
}

// withDefaults returns a copy of o with zero fields replaced by defaults.
func (o Options) withDefaults() Options {
	if o.Capacity == 0 {
		o.Capacity = DefaultCapacity
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.ResizeDebounce == 0 {
		o.ResizeDebounce = DefaultResizeDebounce
	}
	if o.PrependRetries == 0 {
		o.PrependRetries = DefaultPrependRetries
	}
	if o.PrependRetryInterval == 0 {
		o.PrependRetryInterval = DefaultPrependRetryInterval
	}
	return o
}

// validate checks option values after defaults are applied.
func (o Options) validate() error {
	if o.ColumnWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "column width must be positive, got %v", o.ColumnWidth)
	}
	if o.Gutter < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gutter cannot be negative, got %v", o.Gutter)
	}
	if o.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "column count cannot be negative, got %d", o.Columns)
	}
	if o.Threshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "threshold cannot be negative, got %v", o.Threshold)
	}
	return nil
}

// compatible reports whether a snapshot produced under other can be restored
// into a grid configured with o. Geometry- and policy-defining fields must
// match; purely behavioral fields (debounce, retries, threshold) may differ.
func (o Options) compatible(other Options) bool {
	return o.ColumnWidth == other.ColumnWidth &&
		o.Gutter == other.Gutter &&
		o.Columns == other.Columns &&
		o.Capacity == other.Capacity &&
		o.EqualSize == other.EqualSize
}

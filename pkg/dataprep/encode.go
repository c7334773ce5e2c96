package dataprep

import (
	"errors"
	"sort"
)

// ErrNotFitted is returned when Transform is called before Fit.
var ErrNotFitted = errors.New("dataprep: transformer not fitted")

// OneHotEncoder one-hot encodes a single categorical column. Categories are
// learned at fit time and kept sorted; a value not seen during Fit encodes as
// the all-zero vector.
type OneHotEncoder struct {
	Column     string
	categories []string
	index      map[string]int
}

// NewOneHotEncoder returns an unfitted encoder for column.
func NewOneHotEncoder(column string) *OneHotEncoder {
	return &OneHotEncoder{Column: column}
}

// Fit learns the distinct values of data.
func (e *OneHotEncoder) Fit(data []string) {
	seen := map[string]struct{}{}
	for _, v := range data {
		seen[v] = struct{}{}
	}
	e.categories = make([]string, 0, len(seen))
	for v := range seen {
		e.categories = append(e.categories, v)
	}
	sort.Strings(e.categories)

	e.index = make(map[string]int, len(e.categories))
	for i, v := range e.categories {
		e.index[v] = i
	}
}

// Categories returns the fitted categories in output order.
func (e *OneHotEncoder) Categories() []string { return e.categories }

// Width is the length of an encoded vector.
func (e *OneHotEncoder) Width() int { return len(e.categories) }

// Index returns the hot position of v, or -1 for an unseen value.
func (e *OneHotEncoder) Index(v string) int {
	if i, ok := e.index[v]; ok {
		return i
	}
	return -1
}

// EncodeInto writes the encoding of v into dst, which must be Width() long.
func (e *OneHotEncoder) EncodeInto(dst []float64, v string) {
	for i := range dst {
		dst[i] = 0
	}
	if i := e.Index(v); i >= 0 {
		dst[i] = 1
	}
}

package dataprep

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"

	"github.com/kailiang0817/House-Predict/pkg/data"
)

// ErrUnknownColumn is returned when a training column is neither categorical
// nor one of the configured numeric columns.
var ErrUnknownColumn = errors.New("dataprep: column not in schema")

// ColumnTransformer one-hot encodes the categorical columns of a frame and
// passes every other column through unchanged. Encoded blocks come first, in
// Categorical order, followed by the passthrough columns in the order they
// had in the training frame. Columns are looked up by name, so the column
// order of frames passed to Transform does not matter.
type ColumnTransformer struct {
	Categorical []string
	// Numeric restricts the passthrough columns. Empty means every column
	// that is not categorical.
	Numeric []string

	encoders    []*OneHotEncoder
	passthrough []string
	fitted      bool
}

// NewColumnTransformer returns an unfitted transformer.
func NewColumnTransformer(categorical, numeric []string) *ColumnTransformer {
	return &ColumnTransformer{Categorical: categorical, Numeric: numeric}
}

// Fit learns the category vocabularies and the passthrough layout from X.
func (c *ColumnTransformer) Fit(X dataframe.DataFrame) error {
	if err := data.HasColumns(X, c.Categorical...); err != nil {
		return fmt.Errorf("dataprep: fit: %w", err)
	}

	isCat := make(map[string]bool, len(c.Categorical))
	for _, name := range c.Categorical {
		isCat[name] = true
	}
	allowed := make(map[string]bool, len(c.Numeric))
	for _, name := range c.Numeric {
		allowed[name] = true
	}

	passthrough := make([]string, 0, X.Ncol())
	for _, name := range X.Names() {
		if isCat[name] {
			continue
		}
		if len(allowed) > 0 && !allowed[name] {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		passthrough = append(passthrough, name)
	}

	encoders := make([]*OneHotEncoder, len(c.Categorical))
	for i, name := range c.Categorical {
		enc := NewOneHotEncoder(name)
		enc.Fit(X.Col(name).Records())
		encoders[i] = enc
	}

	c.encoders = encoders
	c.passthrough = passthrough
	c.fitted = true
	return nil
}

// Transform encodes X into a dense feature matrix with one row per frame row.
// Columns of X that were not seen during Fit are ignored.
func (c *ColumnTransformer) Transform(X dataframe.DataFrame) (*mat.Dense, error) {
	if !c.fitted {
		return nil, ErrNotFitted
	}
	if err := data.HasColumns(X, c.Columns()...); err != nil {
		return nil, fmt.Errorf("dataprep: transform: %w", err)
	}
	rows, width := X.Nrow(), c.Width()
	if rows == 0 || width == 0 {
		return nil, fmt.Errorf("dataprep: transform: empty input (%d rows, %d features)", rows, width)
	}

	out := mat.NewDense(rows, width, nil)
	offset := 0
	for _, enc := range c.encoders {
		values := X.Col(enc.Column).Records()
		for i, v := range values {
			enc.EncodeInto(out.RawRowView(i)[offset:offset+enc.Width()], v)
		}
		offset += enc.Width()
	}
	for _, name := range c.passthrough {
		values, err := data.Floats(X.Col(name))
		if err != nil {
			return nil, fmt.Errorf("dataprep: column %q: %w", name, err)
		}
		for i, v := range values {
			out.Set(i, offset, v)
		}
		offset++
	}
	return out, nil
}

// FitTransform fits on X and returns its encoding.
func (c *ColumnTransformer) FitTransform(X dataframe.DataFrame) (*mat.Dense, error) {
	if err := c.Fit(X); err != nil {
		return nil, err
	}
	return c.Transform(X)
}

// Columns lists the input columns the fitted transformer reads.
func (c *ColumnTransformer) Columns() []string {
	cols := make([]string, 0, len(c.encoders)+len(c.passthrough))
	for _, enc := range c.encoders {
		cols = append(cols, enc.Column)
	}
	return append(cols, c.passthrough...)
}

// Width is the number of output features.
func (c *ColumnTransformer) Width() int {
	w := len(c.passthrough)
	for _, enc := range c.encoders {
		w += enc.Width()
	}
	return w
}

// FeatureNames names every output column: "column_category" for encoded
// indicators, the column name for passthrough values.
func (c *ColumnTransformer) FeatureNames() []string {
	names := make([]string, 0, c.Width())
	for _, enc := range c.encoders {
		for _, cat := range enc.Categories() {
			names = append(names, enc.Column+"_"+cat)
		}
	}
	return append(names, c.passthrough...)
}

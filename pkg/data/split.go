package data

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrNotNumeric is returned when a cell that must hold a number does not.
var ErrNotNumeric = errors.New("not numeric")

// SplitXY separates the feature table from the target column. The target and
// every drop column are removed from X; the remaining columns keep their
// load order.
func SplitXY(df dataframe.DataFrame, target string, drop []string) (dataframe.DataFrame, []float64, error) {
	if err := HasColumns(df, append([]string{target}, drop...)...); err != nil {
		return dataframe.DataFrame{}, nil, err
	}

	y, err := Floats(df.Col(target))
	if err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("target %q: %w", target, err)
	}
	for i, v := range y {
		if math.IsNaN(v) {
			return dataframe.DataFrame{}, nil, fmt.Errorf("target %q row %d: %w: missing value", target, i+1, ErrNotNumeric)
		}
	}

	X := df.Drop(append([]string{target}, drop...))
	if X.Err != nil {
		return dataframe.DataFrame{}, nil, fmt.Errorf("drop columns: %w", X.Err)
	}
	return X, y, nil
}

// Floats converts a column to float64. Numeric series convert directly with
// missing values as NaN; text series must parse cell by cell.
func Floats(s series.Series) ([]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Type() != series.String {
		return s.Float(), nil
	}
	records := s.Records()
	out := make([]float64, len(records))
	for i, rec := range records {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d value %q: %w", i+1, rec, ErrNotNumeric)
		}
		out[i] = v
	}
	return out, nil
}

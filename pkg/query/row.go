package query

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/kailiang0817/House-Predict/pkg/pipeline"
)

// BuildRow assembles the single-row frame for a prediction. Columns in want
// that were not asked are taken from the schema defaults; a column with
// neither is left out and the pipeline reports it as missing.
func BuildRow(answers []Answer, schema pipeline.Schema, want []string) (dataframe.DataFrame, error) {
	cols := make([]series.Series, 0, len(want)+len(answers))
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		seen[a.Column] = true
		switch a.Kind {
		case Text:
			cols = append(cols, series.New([]string{a.Text}, series.String, a.Column))
		case Int:
			cols = append(cols, series.New([]int{int(a.Number)}, series.Int, a.Column))
		default:
			cols = append(cols, series.New([]float64{a.Number}, series.Float, a.Column))
		}
	}
	for _, name := range want {
		if seen[name] {
			continue
		}
		v, ok := schema.Defaults[name]
		if !ok {
			continue
		}
		seen[name] = true
		cols = append(cols, series.New([]float64{v}, series.Float, name))
	}

	row := dataframe.New(cols...)
	if row.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("query: build row: %w", row.Err)
	}
	return row, nil
}

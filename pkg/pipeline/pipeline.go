package pipeline

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/dataframe"

	"github.com/kailiang0817/House-Predict/pkg/dataprep"
	"github.com/kailiang0817/House-Predict/pkg/model"
)

// ErrNotFitted is returned by Predict before Fit has succeeded.
var ErrNotFitted = errors.New("pipeline: not fitted")

// Pipeline chains the column transformer and a regressor so that training
// and prediction always see identically encoded features.
type Pipeline struct {
	schema      Schema
	transformer *dataprep.ColumnTransformer
	regressor   model.Regressor
	fitted      bool
}

// New returns an unfitted pipeline for schema ending in regressor.
func New(schema Schema, regressor model.Regressor) *Pipeline {
	return &Pipeline{
		schema:      schema,
		transformer: dataprep.NewColumnTransformer(schema.Categorical, schema.Numeric),
		regressor:   regressor,
	}
}

// numeric returns the passthrough columns for a frame with the given names.
func (p *Pipeline) numeric(names []string) []string {
	if len(p.schema.Numeric) > 0 {
		return p.schema.Numeric
	}
	return p.schema.NumericColumns(names)
}

// Fit fits the transformer on X, then the regressor on the encoded X and y.
func (p *Pipeline) Fit(X dataframe.DataFrame, y []float64) error {
	if X.Nrow() != len(y) {
		return fmt.Errorf("pipeline: %d rows but %d targets", X.Nrow(), len(y))
	}
	p.fitted = false
	p.transformer = dataprep.NewColumnTransformer(p.schema.Categorical, p.numeric(X.Names()))

	Xt, err := p.transformer.FitTransform(X)
	if err != nil {
		return fmt.Errorf("pipeline: preprocess: %w", err)
	}
	if err := p.regressor.Fit(Xt, y); err != nil {
		return fmt.Errorf("pipeline: regressor: %w", err)
	}
	p.fitted = true
	return nil
}

// Predict returns the prediction for a single-row frame.
func (p *Pipeline) Predict(row dataframe.DataFrame) (float64, error) {
	if !p.fitted {
		return 0, ErrNotFitted
	}
	if n := row.Nrow(); n != 1 {
		return 0, fmt.Errorf("pipeline: predict expects one row, got %d", n)
	}

	Xt, err := p.transformer.Transform(row)
	if err != nil {
		return 0, fmt.Errorf("pipeline: preprocess: %w", err)
	}
	preds, err := p.regressor.Predict(Xt)
	if err != nil {
		return 0, fmt.Errorf("pipeline: regressor: %w", err)
	}
	return preds[0], nil
}

// Columns lists the input columns the fitted pipeline needs.
func (p *Pipeline) Columns() []string { return p.transformer.Columns() }

// FeatureNames lists the encoded feature names fed to the regressor.
func (p *Pipeline) FeatureNames() []string { return p.transformer.FeatureNames() }

// Schema returns the schema the pipeline was built with.
func (p *Pipeline) Schema() Schema { return p.schema }

package app

import (
	"fmt"
	"io"
	"time"

	"github.com/kailiang0817/House-Predict/pkg/config"
	"github.com/kailiang0817/House-Predict/pkg/data"
	"github.com/kailiang0817/House-Predict/pkg/loader"
	"github.com/kailiang0817/House-Predict/pkg/logging"
	"github.com/kailiang0817/House-Predict/pkg/model"
	"github.com/kailiang0817/House-Predict/pkg/pipeline"
	"github.com/kailiang0817/House-Predict/pkg/query"
	"github.com/kailiang0817/House-Predict/pkg/report"
)

// App owns the trained pipeline for the lifetime of the process.
type App struct {
	Pipeline *pipeline.Pipeline
	Fields   []query.Field
	log      *logging.Logger
}

// Init loads the dataset, splits it, and fits the pipeline. Nothing happens
// at import time; every phase runs here in order.
func Init(cfg *config.Config, schema pipeline.Schema, logger *logging.Logger) (*App, error) {
	dataLog := logger.WithComponent(logging.ComponentData)
	df, err := data.LoadCSV(cfg.DataPath, data.LoadOptions{
		Delimiter:   cfg.Delimiter(),
		Encoding:    cfg.DataEncoding,
		TextColumns: schema.Categorical,
	})
	if err != nil {
		return nil, err
	}
	dataLog.Info("dataset loaded",
		logging.FieldPath, cfg.DataPath,
		logging.FieldRows, df.Nrow(),
		logging.FieldColumns, df.Ncol())

	X, y, err := data.SplitXY(df, schema.Target, schema.Excluded)
	if err != nil {
		return nil, err
	}
	XTrain, XTest, yTrain, _, err := loader.SplitFrame(X, y, cfg.TestFraction, cfg.Seed)
	if err != nil {
		return nil, err
	}
	dataLog.Debug("train/test split",
		logging.FieldTrain, XTrain.Nrow(),
		logging.FieldTest, XTest.Nrow(),
		logging.FieldSeed, cfg.Seed)

	forest := model.NewRandomForestRegressor(
		model.WithNEstimators(cfg.NEstimators),
		model.WithForestMaxDepth(cfg.MaxDepth),
		model.WithForestMinSamplesSplit(cfg.MinSamplesSplit),
		model.WithForestMinSamplesLeaf(cfg.MinSamplesLeaf),
		model.WithForestMaxFeatures(cfg.MaxFeatures),
		model.WithForestMinImpurityDecrease(cfg.MinImpurity),
		model.WithNJobs(cfg.NJobs),
		model.WithSeed(cfg.Seed),
	)
	p := pipeline.New(schema, forest)

	trainLog := logger.WithComponent(logging.ComponentTraining)
	trainLog.Info("training random forest", logging.FieldTrees, cfg.NEstimators, logging.FieldTrain, XTrain.Nrow())
	start := time.Now()
	if err := p.Fit(XTrain, yTrain); err != nil {
		return nil, err
	}
	trainLog.Info("training complete",
		logging.FieldFeatures, len(p.FeatureNames()),
		logging.FieldDuration, time.Since(start).Round(time.Millisecond))

	return &App{Pipeline: p, Fields: query.DefaultFields(), log: logger}, nil
}

// Run asks for one property on in/out, predicts its price and prints the
// report.
func (a *App) Run(in io.Reader, out io.Writer) error {
	prompter := query.NewPrompter(in, out)
	prompter.Banner()

	answers, err := prompter.Ask(a.Fields)
	if err != nil {
		return err
	}
	row, err := query.BuildRow(answers, a.Pipeline.Schema(), a.Pipeline.Columns())
	if err != nil {
		return err
	}

	price, err := a.Pipeline.Predict(row)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	a.log.WithComponent(logging.ComponentQuery).Debug("prediction",
		"price", price, logging.FieldTier, report.Classify(price).String())

	return report.Render(out, price)
}

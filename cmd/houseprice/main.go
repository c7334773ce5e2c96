package main

import (
	"flag"
	"os"

	"github.com/kailiang0817/House-Predict/pkg/app"
	"github.com/kailiang0817/House-Predict/pkg/config"
	"github.com/kailiang0817/House-Predict/pkg/logging"
	"github.com/kailiang0817/House-Predict/pkg/pipeline"
)

//
// ---------------------- CLI FLAGS ----------------------
//
// --data      : Path to the transaction CSV. Default = $HOUSE_DATA_PATH or Taipei_house.csv
// --seed      : Seed for the train/test split and the forest. Default = $HOUSE_SEED or 0
// --trees     : Number of trees in the forest. Default = $HOUSE_N_ESTIMATORS or 100
// --log-level : debug, info, warn or error. Default = $LOG_LEVEL or info
//
// Example:
//   go run ./cmd/houseprice --data Taipei_house.csv --trees 200
//
// -------------------------------------------------------
//

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.DataPath, "data", cfg.DataPath, "Path to the transaction CSV file")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for split and forest")
	flag.IntVar(&cfg.NEstimators, "trees", cfg.NEstimators, "Number of trees in the forest")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", logging.FieldError, err)
		os.Exit(1)
	}

	a, err := app.Init(cfg, pipeline.DefaultSchema(), logger)
	if err != nil {
		logger.Error("Failed to train model", logging.FieldError, err)
		os.Exit(1)
	}

	if err := a.Run(os.Stdin, os.Stdout); err != nil {
		logger.Error("Prediction failed", logging.FieldError, err)
		os.Exit(1)
	}
}

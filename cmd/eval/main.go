package main

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rankbench/internal/artifacts"
	"github.com/tensorplex-labs/rankbench/internal/config"
	"github.com/tensorplex-labs/rankbench/internal/evaluation"
	"github.com/tensorplex-labs/rankbench/internal/hyperparams"
	"github.com/tensorplex-labs/rankbench/internal/runlog"
	"github.com/tensorplex-labs/rankbench/internal/trackapi"
	"github.com/tensorplex-labs/rankbench/internal/utils/logger"
)

var artifactsPath = flag.String("artifacts", "", "path to an epoch artifact file or a directory of them")

func main() {
	logger.Init()
	log.Info().Msg("Starting evaluation...")
	start := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	if *artifactsPath == "" {
		log.Fatal().Msg("missing --artifacts, pass an epoch artifact file or a directory of them")
	}

	params := loadParams(cfg)
	metrics := evaluation.ParseMetrics(params.Metrics)

	evaluator := evaluation.New(
		evaluation.WithTopKs(params.TopKs...),
		evaluation.WithMetrics(metrics...),
		evaluation.WithHitThreshold(params.HitThreshold),
	)

	// Leave the run id empty so the runner can adopt the id stored in the
	// artifacts themselves.
	runner := evaluation.NewRunner("", evaluator, evaluation.NewCadence(params.EvalEvery))

	stopKey := ""
	if len(metrics) > 0 && len(params.TopKs) > 0 {
		stopKey = metrics[0].Key(params.TopKs[0])
		runner.SetEarlyStop(stopKey, params.EarlyStopWindow)
	}

	history, err := evaluate(runner, *artifactsPath)
	if err != nil {
		log.Fatal().Err(err).Str("artifacts", *artifactsPath).Msg("evaluation failed")
	}
	if history.Len() == 0 {
		log.Warn().Msg("no epochs were due for evaluation, nothing to record")
		return
	}
	if history.RunID == "" {
		history.RunID = runlog.NewRunID()
	}

	historyPath := runlog.HistoryPath(cfg.RunDir, history.RunID)
	if err := history.Save(historyPath); err != nil {
		log.Fatal().Err(err).Str("path", historyPath).Msg("failed to save history")
	}
	log.Info().Str("path", historyPath).Int("epochs", history.Len()).Msg("Saved run history")

	if stopKey != "" {
		if epoch, value, ok := history.BestEpoch(stopKey); ok {
			log.Info().
				Str("metric", stopKey).
				Int("epoch", epoch).
				Float64("value", value).
				Msg("Best epoch")
		}
	}

	if cfg.TrackerURL != "" {
		pushHistory(cfg, history)
	}

	logger.Sugar().Infow("evaluation complete",
		"run_id", history.RunID,
		"epochs", history.Len(),
		"elapsed", runlog.FormatDuration(time.Since(start).Seconds()),
	)
}

func loadParams(cfg *config.AppConfig) hyperparams.Params {
	if cfg.Model == "" || cfg.Data == "" {
		log.Warn().Msg("MODEL or DATA not set, using default hyperparameters")
		return hyperparams.Defaults()
	}
	params, err := hyperparams.LoadFor(cfg.ConfigDir, cfg.Model, cfg.Data)
	if err != nil {
		log.Fatal().Err(err).
			Str("model", cfg.Model).
			Str("data", cfg.Data).
			Msg("failed to load hyperparameters")
	}
	return *params
}

func evaluate(runner *evaluation.Runner, target string) (*evaluation.History, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return runner.ProcessDir(target)
	}

	batch, err := artifacts.Load(target)
	if err != nil {
		return nil, err
	}
	if _, _, err := runner.ProcessBatch(batch, 0); err != nil {
		return nil, err
	}
	return runner.History(), nil
}

func pushHistory(cfg *config.AppConfig, history *evaluation.History) {
	api, err := trackapi.NewTrackAPI(&cfg.TrackerEnvConfig)
	if err != nil {
		log.Error().Err(err).Msg("failed to init tracker client, skipping push")
		return
	}

	records := make([]trackapi.RunResultRecord, 0, history.Len())
	for _, epoch := range history.Epochs {
		records = append(records, trackapi.RunResultRecord{
			RunID:      history.RunID,
			Model:      cfg.Model,
			Data:       cfg.Data,
			Epoch:      epoch.Epoch,
			Metrics:    epoch.Result,
			Summary:    evaluation.FormatResult(epoch.Result),
			ElapsedSec: epoch.ElapsedSec,
			CreatedAt:  epoch.RecordedAt,
		})
	}

	resp, err := api.PostRunResultBatch(trackapi.RunResultBatchRequest{Records: records})
	if err != nil {
		log.Error().Err(err).Msg("failed to push run history to tracker")
		return
	}
	log.Info().
		Str("run_id", history.RunID).
		Int("accepted", resp.Data.Accepted).
		Msg("Pushed run history to tracker")
}

package main

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/tensorplex-labs/rankbench/internal/config"
	"github.com/tensorplex-labs/rankbench/internal/datasets"
	"github.com/tensorplex-labs/rankbench/internal/model"
	"github.com/tensorplex-labs/rankbench/internal/rng"
	"github.com/tensorplex-labs/rankbench/internal/utils/logger"
)

func main() {
	logger.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	testNegativeSampling(cfg.Seed)
	testWorkerStreams(cfg.Seed)
	testParamCounting()
}

func testNegativeSampling(seed int64) {
	log.Info().Msg("--- Testing SampleNegatives ---")
	r := rng.Source(seed)
	positives := map[int]bool{3: true, 17: true, 42: true}

	negatives, err := datasets.SampleNegatives(r, positives, 100, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("sampling failed")
	}
	for i, id := range negatives {
		log.Info().Int("slot", i).Int("item", id).Msgf("drew negative %d", id)
	}

	ids, labels, err := datasets.CandidateList(r, 42, 100, 10)
	if err != nil {
		log.Fatal().Err(err).Msg("candidate list failed")
	}
	log.Info().Ints("ids", ids).Floats64("labels", labels).Msg("candidate list for item 42")
}

func testWorkerStreams(seed int64) {
	log.Info().Msg("--- Testing worker seed derivation ---")
	positives := map[int]bool{1: true}

	for workerID := 0; workerID < 3; workerID++ {
		r := rng.WorkerSource(seed, workerID)
		negatives, err := datasets.SampleNegatives(r, positives, 50, 4)
		if err != nil {
			log.Fatal().Err(err).Int("worker", workerID).Msg("sampling failed")
		}
		log.Info().Int("worker", workerID).Ints("negatives", negatives).Msg("worker draw")
	}
}

func testParamCounting() {
	log.Info().Msg("--- Testing CountTrainable ---")
	params := []model.Param{
		{Name: "user_emb", Value: mat.NewDense(943, 64, nil)},
		{Name: "item_emb", Value: mat.NewDense(1682, 64, nil)},
		{Name: "item_bias", Value: mat.NewDense(1682, 1, nil)},
		{Name: "pretrained_emb", Value: mat.NewDense(1682, 300, nil), Frozen: true},
	}

	log.Info().
		Int("trainable", model.CountTrainable(params)).
		Int("total", model.CountAll(params)).
		Msg("embedding table sizes")
	for _, p := range params {
		log.Info().Str("name", p.Name).Int("numel", model.Numel(p.Value)).Bool("frozen", p.Frozen).Msgf("param %s", p.Name)
	}
}

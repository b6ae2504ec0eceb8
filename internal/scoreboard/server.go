// Package scoreboard serves evaluation results over HTTP so training runs
// can be compared while they are still going
package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/rankbench/internal/runlog"
	"github.com/tensorplex-labs/rankbench/internal/trackapi"
)

// NewServer creates a new scoreboard server
func NewServer(serverConfig *ServerConfig) *Server {
	if serverConfig == nil {
		serverConfig = &ServerConfig{
			Host:      DefaultServerHost,
			Port:      DefaultServerPort,
			BodyLimit: DefaultBodyLimit,
		}
	}

	// Load configuration from environment variables
	if serverConfig.Port == 0 || serverConfig.Port == DefaultServerPort {
		if portStr := os.Getenv("SCOREBOARD_PORT"); portStr != "" {
			if port, err := strconv.Atoi(portStr); err == nil {
				serverConfig.Port = port
				log.Debug().
					Int("port", port).
					Msg("Loaded scoreboard port from environment")
			} else {
				log.Warn().
					Str("SCOREBOARD_PORT", portStr).
					Err(err).
					Msg("Invalid SCOREBOARD_PORT environment variable, using default")
			}
		}
	}

	if serverConfig.BodyLimit == 0 || serverConfig.BodyLimit == DefaultBodyLimit {
		if bodyLimitStr := os.Getenv("SCOREBOARD_BODY_LIMIT"); bodyLimitStr != "" {
			if bodyLimit, err := strconv.Atoi(bodyLimitStr); err == nil {
				serverConfig.BodyLimit = bodyLimit
				log.Debug().
					Int("body_limit", bodyLimit).
					Msg("Loaded scoreboard body limit from environment")
			} else {
				log.Warn().
					Str("SCOREBOARD_BODY_LIMIT", bodyLimitStr).
					Err(err).
					Msg("Invalid SCOREBOARD_BODY_LIMIT environment variable, using default")
			}
		}
	}

	log.Info().
		Any("serverConfig", serverConfig).
		Msg("Scoreboard configuration loaded")

	app := fiber.New(fiber.Config{
		Prefork:      false,
		ErrorHandler: fiberErrHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		BodyLimit:    serverConfig.BodyLimit,
	})

	app.Use(recover.New()) // add panic recovery
	app.Use(compress.New(compress.Config{Level: compress.LevelBestCompression}))

	server := &Server{
		App:    app,
		config: serverConfig,
		store:  NewStore(),
	}

	whitelistedRoutes := []string{"/health"}
	app.Use(ZstdRequestMiddleware(whitelistedRoutes))

	server.registerRoutes()

	return server
}

func (s *Server) registerRoutes() {
	s.App.Get("/health", s.handleHealth)
	s.App.Post("/runs/results", s.handlePostResult)
	s.App.Post("/runs/results/batch", s.handlePostResultBatch)
	s.App.Get("/runs", s.handleListRuns)
	s.App.Get("/runs/:id/latest", s.handleLatest)
	s.App.Get("/runs/:id/history", s.handleHistory)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(okResponse(HealthResponse{Status: "ok"}))
}

func (s *Server) handlePostResult(c *fiber.Ctx) error {
	var record trackapi.RunResultRecord
	if err := c.BodyParser(&record); err != nil {
		log.Error().Err(err).Msg("Failed to parse run result")
		return c.Status(fiber.StatusBadRequest).JSON(errResponse(err))
	}
	if record.RunID == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(errResponse(fmt.Errorf("run_id is required")))
	}
	if record.CreatedAt == "" {
		record.CreatedAt = runlog.Timestamp()
	}

	count := s.store.Append(record)
	log.Info().
		Str("run_id", record.RunID).
		Int("epoch", record.Epoch).
		Int("records", count).
		Msg("Run result stored")

	return c.JSON(okResponse(trackapi.PostRunResultResponse{ID: uuid.NewString()}))
}

func (s *Server) handlePostResultBatch(c *fiber.Ctx) error {
	var req trackapi.RunResultBatchRequest
	if err := c.BodyParser(&req); err != nil {
		log.Error().Err(err).Msg("Failed to parse run result batch")
		return c.Status(fiber.StatusBadRequest).JSON(errResponse(err))
	}
	if len(req.Records) == 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(errResponse(fmt.Errorf("batch holds no records")))
	}
	for i := range req.Records {
		if req.Records[i].RunID == "" {
			return c.Status(fiber.StatusBadRequest).
				JSON(errResponse(fmt.Errorf("record %d is missing run_id", i)))
		}
	}

	for i := range req.Records {
		if req.Records[i].CreatedAt == "" {
			req.Records[i].CreatedAt = runlog.Timestamp()
		}
		s.store.Append(req.Records[i])
	}
	log.Info().
		Str("run_id", req.Records[0].RunID).
		Int("records", len(req.Records)).
		Msg("Run result batch stored")

	return c.JSON(okResponse(trackapi.PostRunResultBatchResponse{Accepted: len(req.Records)}))
}

func (s *Server) handleListRuns(c *fiber.Ctx) error {
	return c.JSON(okResponse(RunListResponse{Runs: s.store.Runs()}))
}

func (s *Server) handleLatest(c *fiber.Ctx) error {
	runID := c.Params("id")
	record, ok := s.store.Latest(runID)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("no results for run %s", runID))
	}
	return c.JSON(okResponse(record))
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	runID := c.Params("id")
	records := s.store.History(runID)
	if len(records) == 0 {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("no results for run %s", runID))
	}
	return c.JSON(okResponse(trackapi.RunHistoryResponse{RunID: runID, Records: records}))
}

func fiberErrHandler(ctx *fiber.Ctx, err error) error {
	// Status code defaults to 500
	code := fiber.StatusInternalServerError

	// Retrieve the custom status code if it's a *fiber.Error
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	log.Error().
		Err(err).
		Int("status_code", code).
		Str("path", ctx.Path()).
		Str("method", ctx.Method()).
		Msg("Fiber error handler triggered")

	return ctx.Status(code).JSON(errResponse(err))
}

func okResponse[T any](data T) trackapi.Response[T] {
	return trackapi.Response[T]{
		Success: true,
		Data:    data,
	}
}

func errResponse(err error) trackapi.Response[map[string]any] {
	out := trackapi.Response[map[string]any]{
		Success: false,
		Data:    map[string]any{},
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

// Start serves until ctx is cancelled, then drains in flight requests.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.App.Listen(addr)
	}()

	log.Info().Str("addr", addr).Msg("Scoreboard server starting")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("Scoreboard server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.App.ShutdownWithContext(shutdownCtx)
	}
}

package scoreboard

import (
	"github.com/gofiber/fiber/v2"
)

const (
	// Server defaults
	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 8600
	DefaultBodyLimit  = 4 * 1024 * 1024 // 4MB
)

// Server serves stored run results over HTTP.
type Server struct {
	App    *fiber.App
	config *ServerConfig
	store  *Store
}

type ServerConfig struct {
	Host      string
	Port      int
	BodyLimit int
}

// RunListResponse lists the run ids the scoreboard has seen.
type RunListResponse struct {
	Runs []string `json:"runs"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status string `json:"status"`
}

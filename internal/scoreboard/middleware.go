package scoreboard

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

// ZstdRequestMiddleware transparently decompresses zstd encoded request
// bodies. Response compression is left to the compress middleware.
func ZstdRequestMiddleware(whitelistedRoutes []string) fiber.Handler {
	if whitelistedRoutes == nil {
		whitelistedRoutes = []string{"/health"}
		log.Debug().
			Any("default", whitelistedRoutes).
			Msg("Whitelisted routes not specified, using default whitelist")
	}
	skip := make(map[string]bool, len(whitelistedRoutes))
	for _, route := range whitelistedRoutes {
		skip[route] = true
	}

	// One shared decoder; DecodeAll is safe for concurrent use.
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create zstd decoder")
	}

	return func(c *fiber.Ctx) error {
		if skip[c.Path()] {
			return c.Next()
		}
		if !strings.EqualFold(c.Get(fiber.HeaderContentEncoding), "zstd") {
			return c.Next()
		}

		body := c.Body()
		if len(body) == 0 {
			return c.Next()
		}

		decompressed, err := decoder.DecodeAll(body, nil)
		if err != nil {
			log.Err(err).Msg("Failed to decompress request")
			return c.Status(fiber.StatusBadRequest).JSON(
				errResponse(fmt.Errorf("failed to decompress zstd data: %s", err.Error())))
		}

		c.Request().SetBody(decompressed)
		c.Request().Header.Del(fiber.HeaderContentEncoding)
		log.Debug().
			Int("compressed", len(body)).
			Int("decompressed", len(decompressed)).
			Msg("Request body decompressed")
		return c.Next()
	}
}

package httpapi

import (
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/road-conditions/internal/sensors"
	"github.com/i474232898/road-conditions/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *sensors.Service) {
	api := app.Group("/api")

	// Always 200: an empty array means no data is available right now.
	api.Get("/sensors", func(c *fiber.Ctx) error {
		res := service.Get(c.UserContext())
		if len(res.Readings) == 0 {
			slog.Warn("no sensor data to serve", "bucket", res.Bucket, "status", res.Status)
		}
		return c.JSON(res.Readings)
	})

	api.Get("/sensors/status", func(c *fiber.Ctx) error {
		entry, err := service.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no sensor data cached yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read sensor cache")
		}

		current := service.CurrentBucket()
		resp := statusResponse{
			Bucket:        entry.Bucket,
			CurrentBucket: current,
			Stale:         entry.Bucket != current,
			Sensors:       len(entry.Readings),
			FetchedAt:     entry.FetchedAt,
		}
		if st, ok := service.LastRefresh(); ok {
			resp.LastRefresh = st
		}
		return c.JSON(resp)
	})

	api.Get("/sensors/marker", func(c *fiber.Ctx) error {
		q := markerQuery{
			Grip: c.Query("grip"),
			Dark: c.QueryBool("dark", false),
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		c.Type("html", "utf-8")
		return c.SendString(sensors.MarkerIcon(q.Grip, q.Dark))
	})
}

type statusResponse struct {
	Bucket        string         `json:"bucket"`
	CurrentBucket string         `json:"currentBucket"`
	Stale         bool           `json:"stale"`
	Sensors       int            `json:"sensors"`
	FetchedAt     time.Time      `json:"fetchedAt"`
	LastRefresh   sensors.Status `json:"lastRefresh,omitempty"`
}

// markerQuery holds query parameters for the marker endpoint.
type markerQuery struct {
	Grip string `validate:"required,max=32"`
	Dark bool
}

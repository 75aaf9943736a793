package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/voltswap/voltswap/internal/domain"
	"github.com/voltswap/voltswap/internal/service"
)

// actorHeader is set by the authenticating gateway in front of this service.
const actorHeader = "X-Actor-ID"

func Register(app *fiber.App, svcs *service.Services) {
	app.Post("/transfers", func(c *fiber.Ctx) error {
		var body struct {
			BatteryID   string `json:"battery_id"`
			ToStationID string `json:"to_station_id"`
			Reason      string `json:"reason"`
			Note        string `json:"note"`
			Status      string `json:"status"`
		}
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, domain.InvalidRequestf("malformed request body"))
		}

		rec, err := svcs.Transfers.Initiate(c.Context(), service.TransferInput{
			BatteryID:   body.BatteryID,
			ToStationID: body.ToStationID,
			Reason:      body.Reason,
			Note:        body.Note,
			Status:      body.Status,
			ActorID:     c.Get(actorHeader),
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	})

	app.Get("/transfers", func(c *fiber.Ctx) error {
		page, err := svcs.Queries.ListTransfers(c.Context(), service.ListTransfersInput{
			BatteryID:     c.Query("battery_id"),
			FromStationID: c.Query("from_station_id"),
			ToStationID:   c.Query("to_station_id"),
			Status:        c.Query("status"),
			Page:          c.QueryInt("page", 1),
			Limit:         c.QueryInt("limit", service.DefaultPageSize),
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(page)
	})

	app.Get("/transfers/:id", func(c *fiber.Ctx) error {
		rec, err := svcs.Queries.GetTransfer(c.Context(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(rec)
	})

	app.Post("/transfers/export", func(c *fiber.Ctx) error {
		url, err := svcs.Exports.ExportTransfers(c.Context(), domain.TransferFilter{
			BatteryID:     c.Query("battery_id"),
			FromStationID: c.Query("from_station_id"),
			ToStationID:   c.Query("to_station_id"),
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	})

	app.Get("/stations", func(c *fiber.Ctx) error {
		items, err := svcs.Repos.ListStations(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(items)
	})

	app.Get("/batteries/:id/history", func(c *fiber.Ctx) error {
		hours := c.QueryInt("hours", 24)
		if hours < 1 {
			return writeError(c, domain.InvalidRequestf("hours must be positive"))
		}
		snapshots, err := svcs.Telemetry.History(c.Context(), c.Params("id"), time.Duration(hours)*time.Hour)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(snapshots)
	})

	app.Get("/stations/:id/batteries", func(c *fiber.Ctx) error {
		items, err := svcs.Repos.ListBatteriesAtStation(c.Context(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(items)
	})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case domain.KindInvalidRequest:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindInvalidState:
		return fiber.StatusUnprocessableEntity
	case domain.KindCapacityExceeded, domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindStorageUnavailable:
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, err error) error {
	var e *domain.Error
	if !errors.As(err, &e) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"kind":    "internal",
			"message": "internal server error",
		})
	}

	body := fiber.Map{"kind": e.Kind, "message": e.Message}
	if e.Kind == domain.KindCapacityExceeded {
		body["current"] = e.Current
		body["capacity"] = e.Capacity
	}
	return c.Status(statusFor(e.Kind)).JSON(body)
}

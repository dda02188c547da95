package httpapi

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-records/internal/store"
	"github.com/i474232898/weather-records/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	app.Post("/weather", func(c *fiber.Ctx) error {
		var req createRequest
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}

		report, err := service.Create(c.UserContext(), req.toCreateRequest())
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrMissingCredential):
				return fiber.NewError(fiber.StatusInternalServerError, "Missing WeatherStack API key")
			case errors.Is(err, weather.ErrUpstream):
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather data")
			case errors.Is(err, weather.ErrNoCurrentConditions):
				return fiber.NewError(fiber.StatusBadRequest, "Invalid location or missing weather data")
			}
			return err
		}

		return c.JSON(report)
	})

	app.Get("/weather/:weather_id", func(c *fiber.Ctx) error {
		rec, err := service.Get(c.Params("weather_id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Weather data not found")
			}
			return err
		}

		return c.JSON(rec)
	})
}

// ErrorHandler renders every error as {"error": true, "detail": "..."}.
// Errors that are not *fiber.Error become 500s.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		detail = fe.Message
	} else {
		log.Printf("ERROR: %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error":  true,
		"detail": detail,
	})
}

// createRequest is the POST /weather body. Pointers tell a missing field
// apart from an empty one; only presence is required.
type createRequest struct {
	Date     *string `json:"date" validate:"required"`
	Location *string `json:"location" validate:"required"`
	Notes    *string `json:"notes"`
}

func (r *createRequest) bind(c *fiber.Ctx) error {
	if !c.Is("json") {
		return errors.New("request body must be JSON")
	}
	if err := c.BodyParser(r); err != nil {
		return err
	}
	return validate.Struct(r)
}

func (r createRequest) toCreateRequest() weather.CreateRequest {
	req := weather.CreateRequest{
		Date:     *r.Date,
		Location: *r.Location,
	}
	if r.Notes != nil {
		req.Notes = *r.Notes
	}
	return req
}

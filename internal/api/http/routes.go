package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

const (
	msgEntityFailed    = "The entity is having an existential crisis..."
	msgBrainScanFailed = "Brain scan failed - entity is dreaming"
	msgBrainScan       = "You are looking directly into the entity's neural pathways..."
	msgComfort         = "You gently comfort the entity..."
	msgAgitate         = "You poke the entity aggressively!"
	msgInvalidAction   = "Invalid action"
	msgUnavailable     = "entity unavailable"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. metrics may be
// nil, in which case /metrics is not served.
func RegisterRoutes(app *fiber.App, service *zeitgeist.Service, metrics http.Handler) {
	api := app.Group("/api")

	api.Get("/entity", func(c *fiber.Ctx) error {
		state, err := service.CurrentEntityState(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, msgEntityFailed)
		}
		return c.JSON(state)
	})

	api.Get("/brain-scan", func(c *fiber.Ctx) error {
		fresh, err := parseBool(c.Query("fresh"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "fresh must be true or false")
		}

		bundle, err := service.RawBundle(c.UserContext(), fresh)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, msgBrainScanFailed)
		}
		st, err := service.InteractionState(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, msgBrainScanFailed)
		}

		return c.JSON(fiber.Map{
			"timestamp":        time.Now().UTC(),
			"rawInputs":        bundle,
			"sourceStatus":     bundle.Status,
			"userInteractions": st,
			"message":          msgBrainScan,
		})
	})

	api.Post("/interact", func(c *fiber.Ctx) error {
		var req interactRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, msgInvalidAction)
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, msgInvalidAction)
		}

		kind := zeitgeist.InteractionKind(req.Action)
		st, err := service.RecordInteraction(c.UserContext(), kind)
		if err != nil {
			if errors.Is(err, zeitgeist.ErrInvalidInteraction) {
				return fiber.NewError(fiber.StatusBadRequest, msgInvalidAction)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to record interaction")
		}

		message := msgComfort
		if kind == zeitgeist.InteractionAgitate {
			message = msgAgitate
		}
		return c.JSON(fiber.Map{
			"message":      message,
			"totalComfort": st.Comfort,
			"totalAgitate": st.Agitate,
		})
	})

	api.Get("/interactions", func(c *fiber.Ctx) error {
		st, err := service.InteractionState(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read interactions")
		}
		return c.JSON(st)
	})

	api.Post("/interactions/reset", func(c *fiber.Ctx) error {
		st, err := service.ResetInteractions(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to reset interactions")
		}
		return c.JSON(st)
	})

	api.Get("/mood-card", func(c *fiber.Ctx) error {
		card, err := service.MoodCard(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, msgEntityFailed)
		}
		return c.JSON(card)
	})

	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics))
	}
}

// interactRequest is the body of POST /api/interact.
type interactRequest struct {
	Action string `json:"action" validate:"required,oneof=comfort agitate"`
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/story-bias/internal/logger"
	"alfredoptarigan/story-bias/internal/models"
	"alfredoptarigan/story-bias/internal/services"
)

type HomeHandler struct {
	reportService services.ReportService
	sessions      *SessionResolver
	logger        *zap.Logger
}

func NewHomeHandler(
	reportService services.ReportService,
	sessions *SessionResolver,
	logger *zap.Logger,
) *HomeHandler {
	return &HomeHandler{
		reportService: reportService,
		sessions:      sessions,
		logger:        logger,
	}
}

// HandleHome handles GET /. Any pending message is shown once and cleared,
// so a refresh returns the empty page.
func (h *HomeHandler) HandleHome(c *fiber.Ctx) error {
	view := fiber.Map{
		"ReportText": "",
		"Error":      "",
	}

	sessionID, err := h.sessions.ID(c)
	if err != nil {
		h.logger.Error("session unavailable", zap.Error(err))
	} else {
		msg, err := h.reportService.Consume(c.UserContext(), sessionID)
		if err != nil {
			h.logger.Error("failed to read analysis message",
				zap.String("session", logger.ShortID(sessionID)),
				zap.Error(err),
			)
		}

		if msg != nil {
			switch msg.Kind {
			case models.MessageReport:
				view["ReportText"] = msg.Text
			case models.MessageError:
				view["Error"] = msg.Text
			}
		}
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Render("index", view)
}

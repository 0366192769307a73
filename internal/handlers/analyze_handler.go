package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/story-bias/internal/logger"
	"alfredoptarigan/story-bias/internal/services"
)

type AnalyzeHandler struct {
	reportService services.ReportService
	sessions      *SessionResolver
	logger        *zap.Logger
}

func NewAnalyzeHandler(
	reportService services.ReportService,
	sessions *SessionResolver,
	logger *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		reportService: reportService,
		sessions:      sessions,
		logger:        logger,
	}
}

// HandleAnalyze handles POST /analyze. It always redirects home; the
// outcome travels as the session's one-shot message.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	sessionID, err := h.sessions.ID(c)
	if err != nil {
		h.logger.Error("session unavailable", zap.Error(err))
		return c.Redirect("/")
	}

	outcome, err := h.reportService.Submit(c.UserContext(), sessionID, c.FormValue("url"))
	if err != nil {
		h.logger.Error("failed to store analysis message",
			zap.String("session", logger.ShortID(sessionID)),
			zap.Stringer("outcome", outcome),
			zap.Error(err),
		)
	}

	return c.Redirect("/")
}

// RedirectHome handles GET /analyze.
func (h *AnalyzeHandler) RedirectHome(c *fiber.Ctx) error {
	return c.Redirect("/")
}

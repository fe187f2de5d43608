package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/mail"
	"smart-fuel-crm/internal/metrics"
	dto "smart-fuel-crm/pkg/models"
)

// FollowUpRunner is satisfied by *automation.FollowUpMailer.
type FollowUpRunner interface {
	Run(ctx context.Context, today time.Time) (dto.RunResult, error)
}

// FunctionsHandler exposes the outbound email relay and a manual trigger for
// the scheduled follow-up mailer.
type FunctionsHandler struct {
	sender mail.Sender
	runner FollowUpRunner
	now    func() time.Time
}

func NewFunctionsHandler(sender mail.Sender, runner FollowUpRunner) *FunctionsHandler {
	return &FunctionsHandler{sender: sender, runner: runner, now: time.Now}
}

func (h *FunctionsHandler) SendEmail(c *gin.Context) {
	var req dto.SendEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.sender.Send(c.Request.Context(), mail.Message{
		To:      strings.TrimSpace(req.To),
		CC:      strings.TrimSpace(req.CC),
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			respondError(c, err)
			return
		}
		logger.Warnw("email relay rejected", "error", err)
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	metrics.EmailsSent.WithLabelValues(metrics.SourceRelay).Inc()
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *FunctionsHandler) SendFollowUps(c *gin.Context) {
	res, err := h.runner.Run(c.Request.Context(), h.now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

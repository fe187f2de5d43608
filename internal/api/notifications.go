package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-fuel-crm/internal/auth"
	"smart-fuel-crm/internal/notify"
	"smart-fuel-crm/internal/report"
	dto "smart-fuel-crm/pkg/models"
)

// UpcomingService is satisfied by *notify.Service.
type UpcomingService interface {
	Upcoming(ctx context.Context, userID string) ([]notify.Upcoming, error)
	Clear(ctx context.Context, userID string, ids []string) (dto.ClearResult, error)
}

type NotificationHandler struct {
	svc UpcomingService
}

func NewNotificationHandler(svc UpcomingService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) Upcoming(c *gin.Context) {
	items, err := h.svc.Upcoming(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []notify.Upcoming{}
	}
	c.JSON(http.StatusOK, items)
}

type ClearRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

func (h *NotificationHandler) Clear(c *gin.Context) {
	var req ClearRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Clear(c.Request.Context(), auth.UserID(c), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type ReportHandler struct {
	reports *report.Service
}

func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Fleet reports the caller's clients for ?range= (default this_month).
func (h *ReportHandler) Fleet(c *gin.Context) {
	s, err := h.reports.Fleet(c.Request.Context(), auth.UserID(c), report.ParseRange(c.Query("range")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *ReportHandler) POS(c *gin.Context) {
	s, err := h.reports.POS(c.Request.Context(), report.ParseRange(c.Query("range")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

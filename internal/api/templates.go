package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"smart-fuel-crm/internal/auth"
	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/repository"
	"smart-fuel-crm/internal/storage"
)

const maxAttachmentSize = 10 << 20

type TemplateHandler struct {
	templates *repository.TemplateRepository
	storage   storage.Provider
}

// NewTemplateHandler accepts a nil provider; attachment uploads then answer 503.
func NewTemplateHandler(templates *repository.TemplateRepository, provider storage.Provider) *TemplateHandler {
	return &TemplateHandler{templates: templates, storage: provider}
}

type TemplateRequest struct {
	Subject *string `json:"subject"`
	Body    *string `json:"body"`
	CC      *string `json:"cc" binding:"omitempty,email"`
}

func channelParam(c *gin.Context) (string, bool) {
	channel := c.Param("type")
	if !validChannel(channel) {
		respondError(c, badRequest("template type must be email or whatsapp"))
		return "", false
	}
	return channel, true
}

// Get returns the user's template, creating an empty one on first access.
func (h *TemplateHandler) Get(c *gin.Context) {
	channel, ok := channelParam(c)
	if !ok {
		return
	}
	tpl, err := h.templates.Ensure(c.Request.Context(), auth.UserID(c), channel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *TemplateHandler) Save(c *gin.Context) {
	channel, ok := channelParam(c)
	if !ok {
		return
	}
	var req TemplateRequest
	if !bindJSON(c, &req) {
		return
	}
	tpl := &models.MessageTemplate{
		UserID:  auth.UserID(c),
		Type:    channel,
		Subject: req.Subject,
		Body:    req.Body,
		CC:      trimmed(req.CC),
	}
	if channel == models.ChannelWhatsApp {
		tpl.Subject, tpl.CC = nil, nil
	}
	saved, err := h.templates.Upsert(c.Request.Context(), tpl)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// UploadAttachment stores a multipart "file" and links it to the template.
func (h *TemplateHandler) UploadAttachment(c *gin.Context) {
	channel, ok := channelParam(c)
	if !ok {
		return
	}
	if h.storage == nil {
		respondError(c, errStorageDisabled)
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, badRequest("file is required"))
		return
	}
	if header.Size > maxAttachmentSize {
		respondError(c, badRequest("file is too large"))
		return
	}

	ctx := c.Request.Context()
	userID := auth.UserID(c)
	tpl, err := h.templates.Ensure(ctx, userID, channel)
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectPath := storage.ObjectPath(userID, channel, header.Filename)
	url, err := h.storage.Put(ctx, objectPath, file, header.Size, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	att := models.TemplateAttachment{
		TemplateID: tpl.ID,
		UserID:     userID,
		FileName:   strings.TrimSpace(header.Filename),
		FileURL:    url,
		FilePath:   objectPath,
	}
	if err := h.templates.AddAttachment(ctx, &att); err != nil {
		if delErr := h.storage.Delete(ctx, objectPath); delErr != nil {
			logger.Warnw("orphaned attachment object", "path", objectPath, "error", delErr)
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, att)
}

// DeleteAttachment removes the stored object, then the row.
func (h *TemplateHandler) DeleteAttachment(c *gin.Context) {
	if _, ok := channelParam(c); !ok {
		return
	}
	if h.storage == nil {
		respondError(c, errStorageDisabled)
		return
	}
	ctx := c.Request.Context()
	userID := auth.UserID(c)
	att, err := h.templates.GetAttachment(ctx, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.storage.Delete(ctx, att.FilePath); err != nil {
		respondError(c, err)
		return
	}
	if err := h.templates.DeleteAttachment(ctx, userID, att.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

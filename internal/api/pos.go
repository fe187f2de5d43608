package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smart-fuel-crm/internal/action"
	"smart-fuel-crm/internal/auth"
	"smart-fuel-crm/internal/dataset"
	"smart-fuel-crm/internal/listing"
	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/metrics"
	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/repository"
	"smart-fuel-crm/internal/status"
)

var posSchema = listing.Schema[models.POSClient]{
	Category:        func(p models.POSClient) *string { return p.Department },
	DefaultCategory: status.Departments.Default,
	Search: []func(models.POSClient) *string{
		func(p models.POSClient) *string { return &p.ClientCode },
		func(p models.POSClient) *string { return &p.ClientName },
		func(p models.POSClient) *string { return p.Phone },
	},
	Columns: map[string]func(models.POSClient) any{
		"client_code": func(p models.POSClient) any { return p.ClientCode },
		"client_name": func(p models.POSClient) any { return p.ClientName },
		"department":  func(p models.POSClient) any { return status.Departments.Label(p.Department) },
		"phone":       func(p models.POSClient) any { return listing.Str(p.Phone) },
		"status":      func(p models.POSClient) any { return status.POSCall.Label(p.Status) },
		"created_at":  func(p models.POSClient) any { return p.CreatedAt },
	},
}

// maxImportSize bounds an uploaded workbook.
const maxImportSize = 20 << 20

// POSHandler serves the point-of-sale book, which is shared by the whole team.
type POSHandler struct {
	repos *repository.Repositories
	names NameResolver
	links contactLinks
	now   func() time.Time
}

func NewPOSHandler(repos *repository.Repositories, names NameResolver, countryCode string) *POSHandler {
	return &POSHandler{
		repos: repos,
		names: names,
		links: contactLinks{templates: repos.Templates, countryCode: countryCode},
		now:   time.Now,
	}
}

type POSClientRequest struct {
	ClientCode string  `json:"client_code" binding:"required"`
	ClientName string  `json:"client_name" binding:"required"`
	Department *string `json:"department"`
	Phone      *string `json:"phone"`
	Status     *string `json:"status"`
}

// toModel validates the request; see ClientRequest.toModel for how stored is used.
func (r POSClientRequest) toModel(stored *models.POSClient) (models.POSClient, error) {
	code, name := strings.TrimSpace(r.ClientCode), strings.TrimSpace(r.ClientName)
	switch {
	case code == "":
		return models.POSClient{}, fieldError("client_code", "required")
	case name == "":
		return models.POSClient{}, fieldError("client_name", "required")
	}
	var storedDept, storedStatus *string
	if stored != nil {
		storedDept, storedStatus = stored.Department, stored.Status
	}
	dept, err := status.Departments.ParseEdit(r.Department, storedDept)
	if err != nil {
		return models.POSClient{}, fieldError("department", err.Error())
	}
	st, err := status.POSCall.ParseEdit(r.Status, storedStatus)
	if err != nil {
		return models.POSClient{}, fieldError("status", err.Error())
	}
	if st == nil && r.Status == nil {
		st = storedStatus
	}
	return models.POSClient{
		ClientCode: code,
		ClientName: name,
		Department: dept,
		Phone:      trimmed(r.Phone),
		Status:     st,
	}, nil
}

func (h *POSHandler) List(c *gin.Context) {
	rows, err := h.repos.POSClients.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, posSchema.Apply(rows, listQuery(c, "department")))
}

func (h *POSHandler) Create(c *gin.Context) {
	var req POSClientRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := req.toModel(nil)
	if err != nil {
		respondError(c, err)
		return
	}
	p.UserID = auth.UserID(c)
	if err := h.repos.POSClients.Create(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *POSHandler) Update(c *gin.Context) {
	var req POSClientRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	stored, err := h.repos.POSClients.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	p, err := req.toModel(stored)
	if err != nil {
		respondError(c, err)
		return
	}
	p.ID = stored.ID
	if err := h.repos.POSClients.Update(ctx, &p); err != nil {
		respondError(c, err)
		return
	}
	updated, err := h.repos.POSClients.Get(ctx, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *POSHandler) Delete(c *gin.Context) {
	if err := h.repos.POSClients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Import upserts the rows of an uploaded .xlsx or .xls workbook (multipart field "file").
func (h *POSHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, badRequest("file is required"))
		return
	}
	if header.Size > maxImportSize {
		respondError(c, badRequest("file is too large"))
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	res, err := dataset.ImportPOSClients(c.Request.Context(), h.repos.POSClients, file, header.Filename, auth.UserID(c))
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			// Anything the parser rejects is a problem with the upload itself.
			err = badRequest(err.Error())
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *POSHandler) ListCallLogs(c *gin.Context) {
	rows, err := h.repos.CallLogs.ListForClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type CallLogRequest struct {
	CallDate         *string `json:"call_date"`
	CallSummary      *string `json:"call_summary"`
	Feedback         *string `json:"feedback"`
	Status           string  `json:"status" binding:"required"`
	Notes            *string `json:"notes"`
	NextFollowUpDate *string `json:"next_follow_up_date"`
}

func (h *POSHandler) AddCallLog(c *gin.Context) {
	var req CallLogRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := status.POSCall.ParseKnown(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	callDate, err := parseDate("call_date", req.CallDate)
	if err != nil {
		respondError(c, err)
		return
	}
	next, err := parseDate("next_follow_up_date", req.NextFollowUpDate)
	if err != nil {
		respondError(c, err)
		return
	}
	l := &models.POSCallLog{
		POSClientID:      c.Param("id"),
		CallSummary:      trimmed(req.CallSummary),
		Feedback:         trimmed(req.Feedback),
		Status:           st,
		Notes:            trimmed(req.Notes),
		NextFollowUpDate: next,
	}
	if callDate != nil {
		l.CallDate = *callDate
	}
	if err := h.logCall(c.Request.Context(), auth.UserID(c), l, metrics.KindCall); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// logCall fills author and date and records l, moving the POS client to l.Status.
func (h *POSHandler) logCall(ctx context.Context, userID string, l *models.POSCallLog, kind string) error {
	author, err := h.names.DisplayName(ctx, userID)
	if err != nil {
		return err
	}
	l.UserID = userID
	l.UserFullName = author
	if l.CallDate == "" {
		l.CallDate = h.now().UTC().Format(models.DateLayout)
	}
	if err := h.repos.CallLogs.AddAndUpdateClient(ctx, l); err != nil {
		return err
	}
	metrics.FollowUpsLogged.WithLabelValues(kind).Inc()
	return nil
}

func (h *POSHandler) ListNotes(c *gin.Context) {
	notes, err := h.repos.Notes.ListForPOSClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *POSHandler) AddNote(c *gin.Context) {
	var req NoteRequest
	if !bindJSON(c, &req) {
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(c, badRequest("content is required"))
		return
	}
	ctx := c.Request.Context()
	userID := auth.UserID(c)
	author, err := h.names.DisplayName(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	note := models.POSClientNote{POSClientID: c.Param("id"), UserID: userID, Content: content, AuthorName: author}
	if err := h.repos.Notes.AddForPOSClient(ctx, &note); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// Action mirrors ClientHandler.Action; follow-ups on POS clients are call logs.
func (h *POSHandler) Action(c *gin.Context) {
	a, err := action.Parse(c.Param("kind"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	switch a.(type) {
	case action.None:
		c.Status(http.StatusNoContent)
	case action.AddFollowUp:
		h.AddCallLog(c)
	case action.ViewHistory:
		h.ListCallLogs(c)
	case action.Notes:
		h.ListNotes(c)
	case action.Edit:
		h.Update(c)
	case action.Delete:
		h.Delete(c)
	case action.SendEmail:
		h.contact(c, models.ChannelEmail)
	case action.SendWhatsApp:
		h.contact(c, models.ChannelWhatsApp)
	}
}

func (h *POSHandler) contact(c *gin.Context, channel string) {
	ctx := c.Request.Context()
	userID := auth.UserID(c)
	p, err := h.repos.POSClients.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	// POS records carry no email address, so the email channel reports ErrNoEmail.
	out, err := h.links.build(ctx, userID, channel, contactTarget{phone: p.Phone, fields: p.Placeholders()})
	if err != nil {
		respondError(c, err)
		return
	}

	feedback := out.feedback
	l := &models.POSCallLog{
		POSClientID: p.ID,
		Feedback:    &feedback,
		Status:      status.POSCall.Label(p.Status),
	}
	if err := h.logCall(ctx, userID, l, out.kind); err != nil {
		logger.Warnw("contact call log not recorded", "pos_client_id", p.ID, "channel", channel, "error", err)
		out.link.Warning = "Link created but the call could not be logged"
	} else {
		out.link.Logged = true
	}
	c.JSON(http.StatusOK, out.link)
}

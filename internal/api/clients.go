package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"smart-fuel-crm/internal/action"
	"smart-fuel-crm/internal/auth"
	"smart-fuel-crm/internal/listing"
	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/metrics"
	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/repository"
	"smart-fuel-crm/internal/status"
)

// NameResolver supplies the author name stored with follow-ups and notes.
type NameResolver interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// Invalidator drops cached data derived from a user's follow-up schedule.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string)
}

var clientSchema = listing.Schema[models.Client]{
	Category:        func(c models.Client) *string { return c.Status },
	DefaultCategory: status.Fleet.Default,
	Search: []func(models.Client) *string{
		func(c models.Client) *string { return &c.CompanyName },
		func(c models.Client) *string { return c.ContactPerson },
		func(c models.Client) *string { return c.Phone },
		func(c models.Client) *string { return c.Email },
	},
	Columns: map[string]func(models.Client) any{
		"company_name":   func(c models.Client) any { return c.CompanyName },
		"contact_person": func(c models.Client) any { return listing.Str(c.ContactPerson) },
		"phone":          func(c models.Client) any { return listing.Str(c.Phone) },
		"email":          func(c models.Client) any { return listing.Str(c.Email) },
		"number_of_cars": func(c models.Client) any { return listing.Int(c.NumberOfCars) },
		"fuel_type":      func(c models.Client) any { return listing.Str(c.FuelType) },
		"status":         func(c models.Client) any { return status.Fleet.Label(c.Status) },
		"created_at":     func(c models.Client) any { return c.CreatedAt },
	},
}

// listQuery reads ?search=&<category>=&sort=&dir=.
func listQuery(c *gin.Context, categoryParam string) listing.Query {
	q := listing.Query{
		Search:   c.Query("search"),
		Category: strings.TrimSpace(c.Query(categoryParam)),
	}
	if key := c.Query("sort"); key != "" {
		q.Sort = &listing.SortSpec{Key: key, Direction: listing.ParseDirection(c.Query("dir"))}
	}
	return q
}

type ClientHandler struct {
	repos  *repository.Repositories
	names  NameResolver
	notify Invalidator
	links  contactLinks
}

func NewClientHandler(repos *repository.Repositories, names NameResolver, notify Invalidator, countryCode string) *ClientHandler {
	return &ClientHandler{
		repos:  repos,
		names:  names,
		notify: notify,
		links:  contactLinks{templates: repos.Templates, countryCode: countryCode},
	}
}

type ClientRequest struct {
	CompanyName   string  `json:"company_name" binding:"required"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" binding:"omitempty,email"`
	NumberOfCars  *int    `json:"number_of_cars" binding:"omitempty,min=0"`
	FuelType      *string `json:"fuel_type"`
	Status        *string `json:"status"`
	Address       *string `json:"address"`
}

// toModel validates the request. On an edit, stored is the current row: its
// values pass even when legacy, and an absent status keeps the stored one.
func (r ClientRequest) toModel(stored *models.Client) (models.Client, error) {
	name := strings.TrimSpace(r.CompanyName)
	if name == "" {
		return models.Client{}, fieldError("company_name", "required")
	}
	var storedFuel, storedStatus *string
	if stored != nil {
		storedFuel, storedStatus = stored.FuelType, stored.Status
	}
	fuel, err := status.FuelTypes.ParseEdit(r.FuelType, storedFuel)
	if err != nil {
		return models.Client{}, fieldError("fuel_type", err.Error())
	}
	st, err := status.Fleet.ParseEdit(r.Status, storedStatus)
	if err != nil {
		return models.Client{}, fieldError("status", err.Error())
	}
	switch {
	case st != nil:
	case r.Status == nil && storedStatus != nil:
		st = storedStatus
	default:
		def := status.Fleet.Default
		st = &def
	}
	return models.Client{
		CompanyName:   name,
		ContactPerson: trimmed(r.ContactPerson),
		Phone:         trimmed(r.Phone),
		Email:         trimmed(r.Email),
		NumberOfCars:  r.NumberOfCars,
		FuelType:      fuel,
		Status:        st,
		Address:       trimmed(r.Address),
	}, nil
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.repos.Clients.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientSchema.Apply(clients, listQuery(c, "status")))
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	client, err := req.toModel(nil)
	if err != nil {
		respondError(c, err)
		return
	}
	client.UserID = auth.UserID(c)
	if err := h.repos.Clients.Create(c.Request.Context(), &client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	var req ClientRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	stored, err := h.repos.Clients.Get(ctx, auth.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	client, err := req.toModel(stored)
	if err != nil {
		respondError(c, err)
		return
	}
	client.ID = stored.ID
	client.UserID = stored.UserID
	if err := h.repos.Clients.Update(ctx, &client); err != nil {
		respondError(c, err)
		return
	}
	updated, err := h.repos.Clients.Get(ctx, client.UserID, client.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	userID := auth.UserID(c)
	if err := h.repos.Clients.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.invalidate(c.Request.Context(), userID)
	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) ListFollowUps(c *gin.Context) {
	rows, err := h.repos.FollowUps.ListForClient(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type FollowUpRequest struct {
	Feedback         *string `json:"feedback"`
	Status           string  `json:"status" binding:"required"`
	NextFollowUpDate *string `json:"next_follow_up_date"`
}

func (h *ClientHandler) AddFollowUp(c *gin.Context) {
	var req FollowUpRequest
	if !bindJSON(c, &req) {
		return
	}
	st, err := status.Fleet.ParseKnown(req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	next, err := parseDate("next_follow_up_date", req.NextFollowUpDate)
	if err != nil {
		respondError(c, err)
		return
	}
	f, err := h.logFollowUp(c.Request.Context(), auth.UserID(c), c.Param("id"), trimmed(req.Feedback), st, next, metrics.KindManual)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// logFollowUp records a follow-up authored by userID and moves the client to st.
func (h *ClientHandler) logFollowUp(ctx context.Context, userID, clientID string, feedback *string, st string, next *string, kind string) (*models.FollowUp, error) {
	author, err := h.names.DisplayName(ctx, userID)
	if err != nil {
		return nil, err
	}
	f := &models.FollowUp{
		ClientID:         clientID,
		UserID:           userID,
		Feedback:         feedback,
		Status:           st,
		NextFollowUpDate: next,
		UserFullName:     author,
	}
	if err := h.repos.FollowUps.AddAndUpdateClient(ctx, f); err != nil {
		return nil, err
	}
	metrics.FollowUpsLogged.WithLabelValues(kind).Inc()
	h.invalidate(ctx, userID)
	return f, nil
}

func (h *ClientHandler) ListNotes(c *gin.Context) {
	notes, err := h.repos.Notes.ListForClient(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

type NoteRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *ClientHandler) AddNote(c *gin.Context) {
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
	note := models.ClientNote{ClientID: c.Param("id"), UserID: userID, Content: content, AuthorName: author}
	if err := h.repos.Notes.AddForClient(ctx, &note); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// Action dispatches POST /clients/:id/actions/:kind to the matching operation.
func (h *ClientHandler) Action(c *gin.Context) {
	a, err := action.Parse(c.Param("kind"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	switch a.(type) {
	case action.None:
		c.Status(http.StatusNoContent)
	case action.AddFollowUp:
		h.AddFollowUp(c)
	case action.ViewHistory:
		h.ListFollowUps(c)
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

// contact builds the link for channel and logs a follow-up that keeps the
// client's status. A failed log is reported as a warning; the link stays usable.
func (h *ClientHandler) contact(c *gin.Context, channel string) {
	ctx := c.Request.Context()
	userID := auth.UserID(c)
	client, err := h.repos.Clients.Get(ctx, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	out, err := h.links.build(ctx, userID, channel, contactTarget{
		email:  client.Email,
		phone:  client.Phone,
		fields: client.Placeholders(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	feedback := out.feedback
	st := status.FleetOngoing
	if client.Status != nil && *client.Status != "" {
		st = *client.Status
	}
	if _, err := h.logFollowUp(ctx, userID, client.ID, &feedback, st, nil, out.kind); err != nil {
		logger.Warnw("contact follow-up not logged", "client_id", client.ID, "channel", channel, "error", err)
		out.link.Warning = "Link created but the follow-up could not be logged"
	} else {
		out.link.Logged = true
	}
	c.JSON(http.StatusOK, out.link)
}

func (h *ClientHandler) invalidate(ctx context.Context, userID string) {
	if h.notify != nil {
		h.notify.Invalidate(ctx, userID)
	}
}

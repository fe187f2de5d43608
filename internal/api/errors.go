package api

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"smart-fuel-crm/internal/action"
	"smart-fuel-crm/internal/dataset"
	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/mail"
	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/repository"
	"smart-fuel-crm/internal/spreadsheet"
	"smart-fuel-crm/internal/status"
	"smart-fuel-crm/internal/whatsapp"
	dto "smart-fuel-crm/pkg/models"
)

var (
	errBadRequest      = errors.New("bad request")
	errStorageDisabled = errors.New("attachment storage is not configured")
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName reports validation failures under the request's JSON keys.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// badRequest wraps a validation message so respondError maps it to 400.
func badRequest(msg string) error {
	return &requestError{msg: msg}
}

// fieldError is a 400 reported beside one request field.
func fieldError(field, msg string) error {
	return &requestError{msg: field + ": " + msg, details: map[string]string{field: msg}}
}

type requestError struct {
	msg     string
	details map[string]string
}

func (e *requestError) Error() string { return e.msg }
func (e *requestError) Unwrap() error { return errBadRequest }

// isDuplicate matches unique-key violations, translated or raw driver text.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, status.ErrUnknownStatus),
		errors.Is(err, action.ErrUnknownKind),
		errors.Is(err, action.ErrNoClient),
		errors.Is(err, dataset.ErrUnknownDataset),
		errors.Is(err, dataset.ErrUnknownFormat),
		errors.Is(err, spreadsheet.ErrUnsupportedWorkbook):
		return http.StatusBadRequest
	case errors.Is(err, spreadsheet.ErrNothingToExport),
		errors.Is(err, spreadsheet.ErrNoRows),
		errors.Is(err, mail.ErrNoEmail),
		errors.Is(err, whatsapp.ErrNoPhone):
		return http.StatusUnprocessableEntity
	case errors.Is(err, mail.ErrNotConfigured), errors.Is(err, errStorageDisabled):
		return http.StatusServiceUnavailable
	case isDuplicate(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError answers with the mapped status and the error text. Field
// errors also carry per-field details.
func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.Errorw("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	}
	resp := dto.ErrorResponse{Error: err.Error()}
	var re *requestError
	if errors.As(err, &re) {
		resp.Details = re.details
	}
	c.JSON(code, resp)
}

// bindJSON binds the body and answers 400 on failure, listing the failed
// validation tag per field.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	resp := dto.ErrorResponse{Error: err.Error()}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Error = "validation failed"
		resp.Details = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			resp.Details[fe.Field()] = fe.Tag()
		}
	}
	c.JSON(http.StatusBadRequest, resp)
	return false
}

// parseDate validates an optional YYYY-MM-DD value; blank becomes nil.
func parseDate(field string, raw *string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	if _, err := time.Parse(models.DateLayout, v); err != nil {
		return nil, fieldError(field, "must be YYYY-MM-DD")
	}
	return &v, nil
}

func trimmed(raw *string) *string {
	if raw == nil {
		return nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil
	}
	return &v
}

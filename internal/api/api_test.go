package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smart-fuel-crm/internal/auth"
	"smart-fuel-crm/internal/automation"
	"smart-fuel-crm/internal/cache"
	"smart-fuel-crm/internal/mail"
	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/notify"
	"smart-fuel-crm/internal/profile"
	"smart-fuel-crm/internal/report"
	"smart-fuel-crm/internal/repository"
	"smart-fuel-crm/internal/storage"
	dto "smart-fuel-crm/pkg/models"
)

func str(s string) *string { return &s }

type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "msg-1", nil
}

type fakeStorage struct {
	objects map[string][]byte
}

func (f *fakeStorage) Put(_ context.Context, path string, r io.Reader, _ int64, _ string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.objects[path] = b
	return "https://files.test/" + path, nil
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	delete(f.objects, path)
	return nil
}

type testServer struct {
	t       *testing.T
	router  *gin.Engine
	repos   *repository.Repositories
	sender  *fakeSender
	storage *fakeStorage
}

func newTestServer(t *testing.T, provider storage.Provider) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	repos := repository.New(db)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	names := profile.NewService(repos.Profiles)
	upcoming := notify.NewService(repos.FollowUps, cache.NewMemory(0), time.Minute)
	sender := &fakeSender{}
	mailer := automation.NewFollowUpMailer(repos, sender, names, upcoming)

	s := &testServer{t: t, repos: repos, sender: sender}
	if fs, ok := provider.(*fakeStorage); ok {
		s.storage = fs
	}

	r := gin.New()
	r.Use(CORS())
	RegisterRoutes(r, Handlers{
		Auth:          NewAuthHandler(repos.Profiles, issuer),
		Profile:       NewProfileHandler(repos.Profiles),
		Clients:       NewClientHandler(repos, names, upcoming, "20"),
		POS:           NewPOSHandler(repos, names, "20"),
		Templates:     NewTemplateHandler(repos.Templates, provider),
		Notifications: NewNotificationHandler(upcoming),
		Reports:       NewReportHandler(report.NewService(repos)),
		Export:        NewExportHandler(repos),
		Functions:     NewFunctionsHandler(sender, mailer),
	}, issuer.Middleware())
	s.router = r
	return s
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) upload(path, token, field, filename string, content []byte) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(s.t, err)
	_, err = part.Write(content)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register creates a user and returns its token and id.
func (s *testServer) register(email, fullName string) (string, string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": "secret123", "full_name": fullName})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var res SessionResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Token, res.User.ID
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/clients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _ := s.register("Sara@Example.com", "سارة")

	w = s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "sara@example.com", "password": "another1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "sara@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "sara@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[SessionResponse](t, w).Token)

	w = s.do(http.MethodPut, "/api/profile", token, gin.H{"full_name": "  Sara A  "})
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[models.Profile](t, w)
	assert.Equal(t, "Sara A", *p.FullName)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestClientListFiltersAndSorts(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.register("a@crm.test", "")

	for _, body := range []gin.H{
		{"company_name": "Beta", "number_of_cars": 10, "status": "تم التعاقد"},
		{"company_name": "alpha", "number_of_cars": 3},
		{"company_name": "Gamma", "contact_person": "Alpha Person"},
	} {
		w := s.do(http.MethodPost, "/api/clients", token, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(http.MethodPost, "/api/clients", token, gin.H{"company_name": "X", "status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/clients?search=ALPHA&sort=company_name&dir=asc", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]models.Client](t, w)
	require.Len(t, got, 2)
	assert.Equal(t, "Gamma", got[0].CompanyName)
	assert.Equal(t, "alpha", got[1].CompanyName)

	w = s.do(http.MethodGet, "/api/clients?status="+url.QueryEscape("جديد")+"&sort=number_of_cars&dir=desc", token, nil)
	got = decode[[]models.Client](t, w)
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].CompanyName)
	assert.Equal(t, "Gamma", got[1].CompanyName, "missing values sort last")

	other, _ := s.register("b@crm.test", "")
	w = s.do(http.MethodGet, "/api/clients", other, nil)
	assert.Empty(t, decode[[]models.Client](t, w))
}

func TestFollowUpsAndNotifications(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.register("a@crm.test", "سارة")

	w := s.do(http.MethodPost, "/api/clients", token, gin.H{"company_name": "Acme"})
	client := decode[models.Client](t, w)

	next := time.Now().UTC().AddDate(0, 0, 3).Format(models.DateLayout)
	w = s.do(http.MethodPost, "/api/clients/"+client.ID+"/follow-ups", token, gin.H{
		"feedback": "call back", "status": "تواصل لاحقاً", "next_follow_up_date": next,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	f := decode[models.FollowUp](t, w)
	assert.Equal(t, "سارة", f.UserFullName)

	w = s.do(http.MethodPost, "/api/clients/"+client.ID+"/follow-ups", token, gin.H{"status": "جديد", "next_follow_up_date": "03/04/2026"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stored, err := s.repos.Clients.Get(context.Background(), client.UserID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "تواصل لاحقاً", *stored.Status)

	w = s.do(http.MethodGet, "/api/notifications/upcoming", token, nil)
	upcoming := decode[[]notify.Upcoming](t, w)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Acme", upcoming[0].CompanyName)

	w = s.do(http.MethodPost, "/api/notifications/clear", token, gin.H{"ids": []string{f.ID}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ClearResult{Requested: 1, Cleared: 1}, decode[dto.ClearResult](t, w))

	w = s.do(http.MethodGet, "/api/notifications/upcoming", token, nil)
	assert.Empty(t, decode[[]notify.Upcoming](t, w))

	w = s.do(http.MethodPost, "/api/clients/"+client.ID+"/notes", token, gin.H{"content": "  prefers mornings "})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "prefers mornings", decode[models.ClientNote](t, w).Content)

	w = s.do(http.MethodPost, "/api/clients/"+client.ID+"/actions/notes", token, nil)
	assert.Len(t, decode[[]models.ClientNote](t, w), 1)

	w = s.do(http.MethodPost, "/api/clients/"+client.ID+"/actions/delete", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodGet, "/api/clients/"+client.ID+"/follow-ups", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactActions(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.register("a@crm.test", "")

	w := s.do(http.MethodPut, "/api/templates/whatsapp", token, gin.H{"body": "مرحبا {contact_person} من {company_name}"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/clients", token, gin.H{"company_name": "Acme", "contact_person": "Ali", "phone": "010-1234-567"})
	client := decode[models.Client](t, w)

	w = s.do(http.MethodPost, "/api/clients/"+client.ID+"/actions/whatsapp", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	link := decode[dto.ContactLink](t, w)
	assert.True(t, strings.HasPrefix(link.URL, "https://wa.me/20101234567?text="), link.URL)
	assert.Equal(t, "مرحبا Ali من Acme", link.Body)
	assert.True(t, link.Logged)

	history, err := s.repos.FollowUps.ListForClient(context.Background(), client.UserID, client.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, whatsAppFeedback, *history[0].Feedback)
	assert.Equal(t, "جديد", history[0].Status)

	w = s.do(http.MethodPost, "/api/clients/"+client.ID+"/actions/email", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/api/clients/"+client.ID+"/actions/teleport", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/clients/"+client.ID+"/actions/none", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestPOSImportCallLogsAndReport(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.register("a@crm.test", "Omar")

	book := workbook(t, [][]any{
		{"كود العميل", "اسم العميل", "القسم", "رقم التليفون"},
		{"P1", "Station One", "تجزئة", "01000000001"},
		{"P2", "Station Two", "", ""},
		{"", "Dropped", "", ""},
	})

	w := s.upload("/api/pos/clients/import", token, "file", "clients.csv", book)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.upload("/api/pos/clients/import", token, "file", "clients.xls", []byte("not a workbook"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.upload("/api/pos/clients/import", token, "file", "clients.xlsx", book)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, dto.ImportResult{TotalRows: 3, ValidRows: 2, Upserted: 2}, decode[dto.ImportResult](t, w))

	w = s.upload("/api/pos/clients/import", token, "file", "broken.xlsx", []byte("not a workbook"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/pos/clients?department="+url.QueryEscape("غير محدد"), token, nil)
	list := decode[[]models.POSClient](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "P2", list[0].ClientCode)

	w = s.do(http.MethodGet, "/api/pos/clients?search=station&sort=client_code&dir=desc", token, nil)
	list = decode[[]models.POSClient](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "P2", list[0].ClientCode)
	p1 := list[1]

	w = s.do(http.MethodPost, "/api/pos/clients/"+p1.ID+"/call-logs", token, gin.H{"status": "تم الإرسال للتعاقد", "call_summary": "agreed"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	l := decode[models.POSCallLog](t, w)
	assert.Equal(t, "Omar", l.UserFullName)
	assert.Equal(t, time.Now().UTC().Format(models.DateLayout), l.CallDate)

	w = s.do(http.MethodPost, "/api/pos/clients/"+p1.ID+"/actions/whatsapp", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://wa.me/201000000001", decode[dto.ContactLink](t, w).URL)

	w = s.do(http.MethodGet, "/api/reports/pos?range=all_time", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sum := decode[report.Summary](t, w)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Converted)
	assert.Equal(t, "50.0", sum.ConversionRateDisplay)
	assert.EqualValues(t, 2, sum.ContactEvents)

	other, _ := s.register("b@crm.test", "")
	w = s.do(http.MethodGet, "/api/pos/clients", other, nil)
	assert.Len(t, decode[[]models.POSClient](t, w), 2, "the POS book is shared")
}

func TestExport(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.register("a@crm.test", "")

	w := s.do(http.MethodGet, "/api/export/clients", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	s.do(http.MethodPost, "/api/clients", token, gin.H{"company_name": "Acme"})

	w = s.do(http.MethodGet, "/api/export/clients?format=csv", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="clients_export.csv"`, w.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\ufeffاسم الشركة,"))

	w = s.do(http.MethodGet, "/api/export/clients?format=pdf", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodGet, "/api/export/invoices", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttachmentsWithoutStorage(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.register("a@crm.test", "")
	w := s.upload("/api/templates/email/attachments", token, "file", "offer.pdf", []byte("%PDF"))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTemplateAttachments(t *testing.T) {
	s := newTestServer(t, &fakeStorage{objects: map[string][]byte{}})
	token, userID := s.register("a@crm.test", "")

	w := s.do(http.MethodGet, "/api/templates/sms", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, "/api/templates/email", token, gin.H{"subject": "عرض {company_name}", "body": "b", "cc": "boss@crm.test"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.upload("/api/templates/email/attachments", token, "file", "offer.pdf", []byte("%PDF"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	att := decode[models.TemplateAttachment](t, w)
	assert.True(t, strings.HasPrefix(att.FilePath, userID+"/email/"))
	assert.Equal(t, "https://files.test/"+att.FilePath, att.FileURL)
	assert.Contains(t, s.storage.objects, att.FilePath)

	w = s.do(http.MethodGet, "/api/templates/email", token, nil)
	tpl := decode[models.MessageTemplate](t, w)
	require.Len(t, tpl.Attachments, 1)
	assert.Equal(t, "boss@crm.test", *tpl.CC)

	w = s.do(http.MethodDelete, "/api/templates/email/attachments/"+att.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, s.storage.objects, att.FilePath)

	w = s.do(http.MethodDelete, "/api/templates/email/attachments/"+att.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFunctions(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.register("a@crm.test", "")

	w := s.do(http.MethodPost, "/api/functions/send-email", token, gin.H{"to": "not-an-email", "subject": "s", "body": "b"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/functions/send-email", token, gin.H{"to": "x@crm.test", "subject": "s", "body": "b"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.sender.sent, 1)
	assert.Equal(t, "x@crm.test", s.sender.sent[0].To)

	s.sender.err = mail.ErrNotConfigured
	w = s.do(http.MethodPost, "/api/functions/send-email", token, gin.H{"to": "x@crm.test", "subject": "s", "body": "b"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(http.MethodPost, "/api/functions/send-follow-ups", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.RunResult{}, decode[dto.RunResult](t, w))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodOptions, "/api/clients", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientUpdateKeepsStoredStatus(t *testing.T) {
	s := newTestServer(t, nil)
	token, userID := s.register("a@crm.test", "")
	ctx := context.Background()

	legacy := "عميل قديم"
	old := models.Client{UserID: userID, CompanyName: "Old Co", Status: &legacy}
	require.NoError(t, s.repos.Clients.Create(ctx, &old))

	w := s.do(http.MethodPut, "/api/clients/"+old.ID, token, gin.H{"company_name": "Old Co 2", "status": legacy})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[models.Client](t, w)
	assert.Equal(t, "Old Co 2", got.CompanyName)
	assert.Equal(t, legacy, *got.Status)

	w = s.do(http.MethodPut, "/api/clients/"+old.ID, token, gin.H{"company_name": "Old Co", "status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/clients", token, gin.H{"company_name": "Won", "status": "تم التعاقد"})
	require.Equal(t, http.StatusCreated, w.Code)
	won := decode[models.Client](t, w)

	w = s.do(http.MethodPut, "/api/clients/"+won.ID, token, gin.H{"company_name": "Won", "phone": "0101"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got = decode[models.Client](t, w)
	assert.Equal(t, "تم التعاقد", *got.Status)
	assert.Equal(t, "0101", *got.Phone)

	w = s.do(http.MethodPut, "/api/clients/missing", token, gin.H{"company_name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPOSUpdateKeepsStoredStatus(t *testing.T) {
	s := newTestServer(t, nil)
	token, userID := s.register("a@crm.test", "")

	legacy := "قديم"
	p := models.POSClient{UserID: userID, ClientCode: "C9", ClientName: "Kiosk", Department: &legacy, Status: str("مهتم")}
	require.NoError(t, s.repos.POSClients.Create(context.Background(), &p))

	w := s.do(http.MethodPut, "/api/pos/clients/"+p.ID, token, gin.H{"client_code": "C9", "client_name": "Kiosk 2", "department": legacy})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[models.POSClient](t, w)
	assert.Equal(t, legacy, *got.Department)
	assert.Equal(t, "مهتم", *got.Status)
}

func TestErrorResponses(t *testing.T) {
	s := newTestServer(t, nil)
	token, _ := s.register("a@crm.test", "")

	w := s.do(http.MethodPost, "/api/clients", token, gin.H{"company_name": "", "email": "nope"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	res := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, map[string]string{"company_name": "required", "email": "email"}, res.Details)

	w = s.do(http.MethodPost, "/api/clients", token, gin.H{"company_name": "X", "status": "bogus"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	res = decode[dto.ErrorResponse](t, w)
	assert.Contains(t, res.Details, "status")

	w = s.do(http.MethodPost, "/api/clients", token, gin.H{"company_name": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]string{"company_name": "required"}, decode[dto.ErrorResponse](t, w).Details)

	w = s.do(http.MethodPost, "/api/pos/clients", token, gin.H{"client_code": "C1", "client_name": "One"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(http.MethodPost, "/api/pos/clients", token, gin.H{"client_code": "C1", "client_name": "Again"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotEqual(t, "internal error", decode[dto.ErrorResponse](t, w).Error)
}

func TestRespondErrorShowsStoreMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "connection refused", decode[dto.ErrorResponse](t, w).Error)
}

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sports-portal/internal/api"
	"sports-portal/internal/approval"
	"sports-portal/internal/jwt"
	"sports-portal/internal/model"
	"sports-portal/internal/repository"
	"sports-portal/internal/service"
	"sports-portal/internal/validation"
)

const internalSecret = "internal-test-secret"

type stubRegistration struct {
	err error
}

func (s *stubRegistration) Register(_ context.Context, in service.RegisterInput) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.User{ID: uuid.New(), Email: in.Email, Handle: "ali", Status: approval.StatusPending}, nil
}

type stubAuth struct {
	loginErr  error
	changeErr error
	pair      *service.TokenPair
}

func (s *stubAuth) LoginPlayer(context.Context, string, string) (*service.TokenPair, error) {
	return s.pair, s.loginErr
}

func (s *stubAuth) RefreshToken(context.Context, string) (string, error) { return "", service.ErrTokenInvalid }

func (s *stubAuth) LogoutUser(context.Context, string) error { return nil }

func (s *stubAuth) ChangePassword(context.Context, uuid.UUID, service.ChangePasswordInput) error {
	return s.changeErr
}

type stubProfiles struct {
	profile *service.Profile
	err     error
}

func (s *stubProfiles) View(context.Context, uuid.UUID) (*service.Profile, error) { return s.profile, s.err }

func (s *stubProfiles) Edit(context.Context, uuid.UUID, service.ProfileEditInput) (*service.Profile, error) {
	return s.profile, s.err
}

func (s *stubProfiles) AvatarUploadURL(context.Context, uuid.UUID, string) (*service.UploadTarget, error) {
	return nil, errors.New("unused")
}

func (s *stubProfiles) RegisterDeviceToken(context.Context, uuid.UUID, string) error { return nil }

type stubDashboard struct{}

func (stubDashboard) Get(context.Context, uuid.UUID) (*service.Dashboard, error) {
	return &service.Dashboard{Teammates: []model.PlayerSummary{}}, nil
}

type stubCertificates struct {
	owner    uuid.UUID
	certs    []model.Certificate
	document *trackedDocument
}

type trackedDocument struct {
	io.Reader
	closed atomic.Bool
}

func (d *trackedDocument) Close() error {
	d.closed.Store(true)
	return nil
}

func (s *stubCertificates) List(context.Context, uuid.UUID) ([]model.Certificate, error) {
	return s.certs, nil
}

func (s *stubCertificates) View(_ context.Context, userID, _ uuid.UUID) (*service.CertificateView, error) {
	if userID != s.owner {
		return nil, service.ErrCertificateNotFound
	}
	return &service.CertificateView{Certificate: &s.certs[0]}, nil
}

func (s *stubCertificates) Download(_ context.Context, userID, _ uuid.UUID) (io.ReadCloser, string, error) {
	if userID != s.owner {
		return nil, "", service.ErrCertificateNotFound
	}
	s.document = &trackedDocument{Reader: strings.NewReader("%PDF-1.4 award")}
	return s.document, "award.pdf", nil
}

func (s *stubCertificates) Create(context.Context, uuid.UUID, string, string) (*model.Certificate, error) {
	return nil, errors.New("unused")
}

func (s *stubCertificates) UploadURL(context.Context, string) (*service.UploadTarget, error) {
	return nil, errors.New("unused")
}

type stubApprovals struct {
	called []uuid.UUID
	status approval.Status
}

func (s *stubApprovals) SetStatus(_ context.Context, ids []uuid.UUID, status approval.Status) ([]repository.StatusChange, error) {
	if len(ids) == 0 {
		return nil, service.ErrNoPlayersSelected
	}
	s.called, s.status = ids, status
	return []repository.StatusChange{{UserID: ids[0], From: approval.StatusPending, To: status}}, nil
}

type stubSports struct{}

func (stubSports) List(context.Context) ([]model.Sport, error) {
	return []model.Sport{{ID: uuid.New(), Name: "Cricket"}}, nil
}

func (stubSports) Candidates(context.Context, uuid.UUID) (*service.Candidates, error) {
	return nil, service.ErrSportNotFound
}

type stubNotifications struct{}

func (stubNotifications) Create(context.Context, service.NotificationInput) (*model.Notification, error) {
	return nil, validation.Errors{&validation.MissingFieldError{Field: "title"}}
}

func (stubNotifications) General(context.Context) ([]model.Notification, error) {
	return nil, errors.New("connection refused")
}

type stubFeedback struct{}

func (stubFeedback) Submit(context.Context, service.FeedbackInput) (*model.Feedback, error) {
	return &model.Feedback{ID: uuid.New()}, nil
}

type stubStore struct{}

func (stubStore) URL(_ context.Context, key string) (string, error) { return "https://media.test/" + key, nil }
func (stubStore) UploadURL(context.Context, string) (string, error) { return "", nil }
func (stubStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("unused")
}

type testApp struct {
	app       *fiber.App
	tokens    *jwt.Manager
	reg       *stubRegistration
	auth      *stubAuth
	profiles  *stubProfiles
	certs     *stubCertificates
	approvals *stubApprovals
}

func newTestApp() *testApp {
	ta := &testApp{
		tokens:    jwt.NewManager("test-secret", time.Minute, time.Hour),
		reg:       &stubRegistration{},
		auth:      &stubAuth{},
		profiles:  &stubProfiles{},
		certs:     &stubCertificates{},
		approvals: &stubApprovals{},
	}
	ta.app = fiber.New()
	ta.app.Use(api.PrometheusMiddleware())
	api.SetupRoutes(ta.app, api.Handlers{
		Auth:   api.NewAuthHandler(ta.reg, ta.auth),
		Player: api.NewPlayerHandler(ta.profiles, ta.auth, stubDashboard{}, ta.certs, stubStore{}),
		Admin:  api.NewAdminHandler(ta.approvals, ta.certs, stubSports{}, stubNotifications{}),
		Public: api.NewPublicHandler(stubSports{}, stubFeedback{}, stubNotifications{}),
	}, ta.tokens, internalSecret)
	return ta
}

func (ta *testApp) do(t *testing.T, method, path, body string, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := map[string]any{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (ta *testApp) bearer(t *testing.T, user *model.User) map[string]string {
	t.Helper()
	token, err := ta.tokens.GenerateAccessToken(user)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestRegister_ValidationErrorsByField(t *testing.T) {
	ta := newTestApp()
	ta.reg.err = validation.Errors{
		&validation.MismatchError{Field: "confirm_password", Other: "password"},
		&validation.FormatError{Field: "cnic", Expected: validation.CNICFormat},
	}

	resp, body := ta.do(t, http.MethodPost, "/v1/auth/register", `{"email":"a@x.com"}`, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid input", body["error"])
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "confirm_password")
	assert.Contains(t, fields, "cnic")
}

func TestRegister_ConflictAndCreated(t *testing.T) {
	ta := newTestApp()
	ta.reg.err = &repository.UniquenessConflict{Field: "email"}
	resp, body := ta.do(t, http.MethodPost, "/v1/auth/register", `{"email":"a@x.com"}`, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "email already exists", body["error"])

	ta.reg.err = nil
	resp, body = ta.do(t, http.MethodPost, "/v1/auth/register", `{"email":"a@x.com"}`, nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])

	resp, _ = ta.do(t, http.MethodPost, "/v1/auth/register", `{not json`, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin_Outcomes(t *testing.T) {
	ta := newTestApp()

	resp, body := ta.do(t, http.MethodPost, "/v1/auth/login", `{"email":"bad","password":""}`, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["fields"], "password")

	ta.auth.loginErr = &approval.DeniedError{Outcome: approval.OutcomePending}
	resp, body = ta.do(t, http.MethodPost, "/v1/auth/login", `{"email":"a@x.com","password":"s3cretpass"}`, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body["error"], "pending approval")
	assert.Equal(t, "pending", body["status"])

	ta.auth.loginErr = service.ErrInvalidCredentials
	resp, _ = ta.do(t, http.MethodPost, "/v1/auth/login", `{"email":"a@x.com","password":"nope"}`, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	ta.auth.loginErr = nil
	ta.auth.pair = &service.TokenPair{AccessToken: "a", RefreshToken: "r", User: &model.User{ID: uuid.New()}}
	resp, body = ta.do(t, http.MethodPost, "/v1/auth/login", `{"email":"a@x.com","password":"s3cretpass"}`, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "a", body["access_token"])

	resp, _ = ta.do(t, http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"r"}`, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPlayerRoutes_RequireAccessToken(t *testing.T) {
	ta := newTestApp()
	user := &model.User{ID: uuid.New(), FirstName: "Ali", LastName: "Khan", IsPlayer: true, Status: approval.StatusApproved}

	resp, _ := ta.do(t, http.MethodGet, "/v1/players/me/profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = ta.do(t, http.MethodGet, "/v1/players/me/profile", "", map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	_, refresh, err := ta.tokens.GenerateTokens(user)
	require.NoError(t, err)
	resp, _ = ta.do(t, http.MethodGet, "/v1/players/me/profile", "", map[string]string{"Authorization": "Bearer " + refresh})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	ta.profiles.profile = &service.Profile{User: user, Player: &model.Player{UserID: user.ID}}
	resp, body := ta.do(t, http.MethodGet, "/v1/players/me/profile", "", ta.bearer(t, user))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Ali+Khan", body["avatar_url"])

	pic := "profile_pictures/me.png"
	user.ProfilePicture = &pic
	_, body = ta.do(t, http.MethodGet, "/v1/players/me/profile", "", ta.bearer(t, user))
	assert.Equal(t, "https://media.test/profile_pictures/me.png", body["avatar_url"])

	ta.profiles.err = service.ErrNotApproved
	resp, _ = ta.do(t, http.MethodGet, "/v1/players/me/profile", "", ta.bearer(t, user))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body = ta.do(t, http.MethodGet, "/v1/players/me/dashboard", "", ta.bearer(t, user))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "teammates")
}

func TestChangePassword_Errors(t *testing.T) {
	ta := newTestApp()
	user := &model.User{ID: uuid.New(), IsPlayer: true, Status: approval.StatusApproved}
	ta.auth.changeErr = validation.Errors{&validation.MismatchError{Field: "old_password", Other: "the current password"}}

	resp, body := ta.do(t, http.MethodPost, "/v1/players/me/password", `{"old_password":"x"}`, ta.bearer(t, user))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["fields"], "old_password")

	ta.auth.changeErr = nil
	resp, _ = ta.do(t, http.MethodPost, "/v1/players/me/password", `{}`, ta.bearer(t, user))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCertificateRoutes(t *testing.T) {
	ta := newTestApp()
	owner := &model.User{ID: uuid.New(), IsPlayer: true, Status: approval.StatusApproved}
	other := &model.User{ID: uuid.New(), IsPlayer: true, Status: approval.StatusApproved}
	certID := uuid.New()
	ta.certs.owner = owner.ID
	ta.certs.certs = []model.Certificate{{ID: certID, Title: "Best Bowler", DocumentKey: "certificates/award.pdf"}}

	resp, _ := ta.do(t, http.MethodGet, "/v1/players/me/certificates/"+certID.String(), "", ta.bearer(t, owner))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = ta.do(t, http.MethodGet, "/v1/players/me/certificates/"+certID.String(), "", ta.bearer(t, other))
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = ta.do(t, http.MethodGet, "/v1/players/me/certificates/not-a-uuid", "", ta.bearer(t, owner))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/v1/players/me/certificates/"+certID.String()+"/download", nil)
	req.Header.Set("Authorization", ta.bearer(t, owner)["Authorization"])
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="award.pdf"`)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 award", string(raw))
	require.NotNil(t, ta.certs.document)
	assert.Eventually(t, ta.certs.document.closed.Load, time.Second, 10*time.Millisecond)
}

func TestAdminRoutes_RequireInternalSecret(t *testing.T) {
	ta := newTestApp()
	id := uuid.New()
	body := `{"user_ids":["` + id.String() + `"]}`

	resp, _ := ta.do(t, http.MethodPost, "/v1/admin/players/approve", body, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Nil(t, ta.approvals.called)

	secret := map[string]string{"X-Internal-Secret": internalSecret}
	resp, decoded := ta.do(t, http.MethodPost, "/v1/admin/players/decline", body, secret)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []uuid.UUID{id}, ta.approvals.called)
	assert.Equal(t, approval.StatusDeclined, ta.approvals.status)
	assert.Equal(t, "declined", decoded["status"])

	resp, _ = ta.do(t, http.MethodPost, "/v1/admin/players/approve", `{"user_ids":[]}`, secret)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = ta.do(t, http.MethodGet, "/v1/admin/sports/"+uuid.NewString()+"/candidates", "", secret)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, decoded = ta.do(t, http.MethodPost, "/v1/admin/notifications", `{"message":"x"}`, secret)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decoded["fields"], "title")
}

func TestPublicRoutes(t *testing.T) {
	ta := newTestApp()

	resp, _ := ta.do(t, http.MethodGet, "/v1/sports", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := ta.do(t, http.MethodPost, "/v1/feedback", `{"email":"a@x.com","rating":5,"description":"ok"}`, nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["id"])

	resp, body = ta.do(t, http.MethodGet, "/v1/notifications", "", nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", body["error"])
}

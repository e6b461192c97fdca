package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"carehub/internal/auth"
	"carehub/internal/config"
	"carehub/internal/database"
	"carehub/internal/mailer"
	"carehub/internal/middleware"
	"carehub/internal/model"
	"carehub/internal/repository"
	"carehub/internal/service"
	"carehub/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	codec := auth.NewCodec(config.TokenConfig{
		Secret:        "test-signing-key",
		Algorithm:     "HS256",
		Issuer:        "carehub",
		Audience:      "carehub-api",
		ExpiryMinutes: 30,
	})
	guard := auth.NewBootstrapGuard(db)
	userRepo := repository.NewUserRepository(db)
	notifier := mailer.New(config.EmailConfig{APIURL: "http://127.0.0.1:1"})
	authService := service.NewAuthService(userRepo, codec, guard, notifier)

	router := gin.New()
	NewAuthHandler(authService).RegisterRoutes(router.Group(""), middleware.Authenticate(codec, userRepo))
	return router, db
}

func seedLoginUser(t *testing.T, db *gorm.DB, password string) *model.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{
		Username:    "jane.doe@example.com",
		Password:    hashed,
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane.doe@example.com",
		PhoneNumber: "07000000001",
		Sex:         "female",
		Role:        model.RoleCareGiver,
		Status:      model.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v; body: %s", err, rec.Body.String())
	}
	return env
}

func TestLoginEndpointSuccess(t *testing.T) {
	router, db := newAuthRouter(t)
	seedLoginUser(t, db, "open sesame 1")

	rec := postJSON(router, "/auth/login", `{"username":"jane.doe@example.com","password":"open sesame 1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	if env.StatusCode != response.CodeSuccess || !env.Successful {
		t.Errorf("envelope = %+v, want statusCode 00", env)
	}
	data, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data has unexpected shape: %T", env.Data)
	}
	if data["token"] == "" || data["token"] == nil {
		t.Error("expected a token in the response data")
	}
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	router, db := newAuthRouter(t)
	seedLoginUser(t, db, "open sesame 1")

	rec := postJSON(router, "/auth/login", `{"username":"jane.doe@example.com","password":"not the one"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	if env.StatusCode != response.CodeFailure || env.Successful {
		t.Errorf("envelope = %+v, want statusCode 99", env)
	}
}

func TestLoginEndpointValidation(t *testing.T) {
	router, _ := newAuthRouter(t)

	// Password below the minimum length fails binding before any lookup.
	rec := postJSON(router, "/auth/login", `{"username":"jane.doe@example.com","password":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	env := decodeEnvelope(t, rec)
	fields, ok := env.Error.(map[string]any)
	if !ok {
		t.Fatalf("error detail has unexpected shape: %T", env.Error)
	}
	if fields["Password"] == nil {
		t.Errorf("expected a Password field error, got %v", fields)
	}
}

func TestChangePasswordRequiresAuth(t *testing.T) {
	router, _ := newAuthRouter(t)

	rec := postJSON(router, "/auth/change-password", `{"currentPassword":"a","newPassword":"b"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestBlockUsersRequiresSuperuser(t *testing.T) {
	router, db := newAuthRouter(t)
	seedLoginUser(t, db, "open sesame 1")

	login := postJSON(router, "/auth/login", `{"username":"jane.doe@example.com","password":"open sesame 1"}`)
	env := decodeEnvelope(t, login)
	token := env.Data.(map[string]any)["token"].(string)

	req := httptest.NewRequest(http.MethodPost, "/auth/block-users", strings.NewReader(`{"username":"someone@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// A care giver holds a valid session but not the role.
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

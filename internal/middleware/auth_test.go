package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"carehub/internal/auth"
	"carehub/internal/config"
	"carehub/internal/model"
	"carehub/pkg/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeResolver struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeResolver) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func newCodec() *auth.Codec {
	return auth.NewCodec(config.TokenConfig{
		Secret:        "test-signing-key",
		Algorithm:     "HS256",
		Issuer:        "carehub",
		Audience:      "carehub-api",
		ExpiryMinutes: 30,
	})
}

func activeUser(role string) *model.User {
	return &model.User{
		ID:        uuid.New(),
		Username:  "staff@example.com",
		FirstName: "Test",
		LastName:  "Staff",
		Role:      role,
		Status:    model.UserStatusActive,
	}
}

func authRouter(codec *auth.Codec, resolver *fakeResolver, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	handlers := append([]gin.HandlerFunc{Authenticate(codec, resolver)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c).Username})
	})
	router.GET("/protected", handlers...)
	return router
}

func doGet(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateValidToken(t *testing.T) {
	codec := newCodec()
	user := activeUser(model.RoleCareGiver)
	resolver := &fakeResolver{users: map[uuid.UUID]*model.User{user.ID: user}}

	token, err := codec.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec := doGet(authRouter(codec, resolver), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["username"] != user.Username {
		t.Errorf("handler saw username %q, want %q", body["username"], user.Username)
	}
}

func TestAuthenticateMissingHeader(t *testing.T) {
	rec := doGet(authRouter(newCodec(), &fakeResolver{}), "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	router := authRouter(newCodec(), &fakeResolver{})

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	rec := doGet(authRouter(newCodec(), &fakeResolver{}), "not-a-real-token")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateDeletedUser(t *testing.T) {
	codec := newCodec()
	user := activeUser(model.RoleManager)
	token, err := codec.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// Resolver has no record of the user: account deleted after issuance.
	rec := doGet(authRouter(codec, &fakeResolver{}), token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateBlockedUser(t *testing.T) {
	codec := newCodec()
	user := activeUser(model.RoleManager)
	token, err := codec.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	user.Status = model.UserStatusBlocked
	resolver := &fakeResolver{users: map[uuid.UUID]*model.User{user.ID: user}}

	rec := doGet(authRouter(codec, resolver), token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"manager allowed", model.RoleManager, []string{model.RoleManager, model.RoleSuperuser}, http.StatusOK},
		{"superuser allowed", model.RoleSuperuser, []string{model.RoleManager, model.RoleSuperuser}, http.StatusOK},
		{"care giver denied", model.RoleCareGiver, []string{model.RoleManager, model.RoleSuperuser}, http.StatusForbidden},
		{"manager denied superuser route", model.RoleManager, []string{model.RoleSuperuser}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codec := newCodec()
			user := activeUser(tc.role)
			resolver := &fakeResolver{users: map[uuid.UUID]*model.User{user.ID: user}}
			token, err := codec.Issue(user)
			if err != nil {
				t.Fatalf("issue token: %v", err)
			}

			rec := doGet(authRouter(codec, resolver, RequireRole(tc.allowed...)), token)
			if rec.Code != tc.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}

func gateRouter(gate gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.POST("/users", gate, func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{})
	})
	return router
}

func TestSuperuserGateBootstrapEscape(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	codec := newCodec()
	guard := auth.NewBootstrapGuard(db)
	router := gateRouter(SuperuserGate(guard, Authenticate(codec, &fakeResolver{})))

	// No superuser exists: the gate admits unauthenticated requests.
	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("bootstrap request: status = %d, want 201", rec.Code)
	}

	// Once one exists, the escape closes.
	guard.MarkSuperuserCreated()
	req = httptest.NewRequest(http.MethodPost, "/users", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("post-bootstrap request: status = %d, want 401", rec.Code)
	}
}

func TestSuperuserGateClosedRequiresSuperuser(t *testing.T) {
	codec := newCodec()
	guard := auth.NewBootstrapGuard(nil)
	guard.MarkSuperuserCreated()

	manager := activeUser(model.RoleManager)
	superuser := activeUser(model.RoleSuperuser)
	superuser.Username = "admin@example.com"
	resolver := &fakeResolver{users: map[uuid.UUID]*model.User{
		manager.ID:   manager,
		superuser.ID: superuser,
	}}
	router := gateRouter(SuperuserGate(guard, Authenticate(codec, resolver)))

	t.Run("unauthenticated rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("manager rejected", func(t *testing.T) {
		token, err := codec.Issue(manager)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("superuser admitted", func(t *testing.T) {
		token, err := codec.Issue(superuser)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201", rec.Code)
		}
	})
}

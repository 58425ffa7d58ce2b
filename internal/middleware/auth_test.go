package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"commentboard/api/internal/config"
	"commentboard/api/internal/models"
	"commentboard/api/internal/security"
)

func testTokenService() *security.TokenService {
	return security.NewTokenService(config.SecurityConfig{
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
		JWTAccessTTL:     15 * time.Minute,
		JWTRefreshTTL:    7 * 24 * time.Hour,
		ResetTokenTTL:    time.Hour,
	})
}

type staticPerms struct {
	set models.PermissionSet
	err error
}

func (s staticPerms) Get(context.Context, string) (models.PermissionSet, error) {
	return s.set, s.err
}

func newGateRouter(tokens *security.TokenService, perms PermissionSource, capability models.Capability) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected",
		Authenticate(tokens),
		RequirePermission(capability, perms),
		func(c *gin.Context) {
			userID, _ := UserID(c)
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		},
	)
	return engine
}

func doGet(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate_MissingToken(t *testing.T) {
	t.Parallel()

	engine := newGateRouter(testTokenService(), staticPerms{set: models.NewPermissionSet(models.CapabilityRead)}, models.CapabilityRead)

	if rec := doGet(engine, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no header: got %d, want 401", rec.Code)
	}
	if rec := doGet(engine, "Basic abc"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("non-bearer header: got %d, want 401", rec.Code)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	t.Parallel()

	tokens := testTokenService()
	engine := newGateRouter(tokens, staticPerms{set: models.NewPermissionSet(models.CapabilityRead)}, models.CapabilityRead)

	if rec := doGet(engine, "Bearer garbage"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: got %d, want 401", rec.Code)
	}

	// A refresh token is not an access token.
	refresh, err := tokens.IssueRefresh("u1")
	if err != nil {
		t.Fatal(err)
	}
	if rec := doGet(engine, "Bearer "+refresh); rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token as bearer: got %d, want 401", rec.Code)
	}
}

func TestAuthenticate_AttachesIdentity(t *testing.T) {
	t.Parallel()

	tokens := testTokenService()
	engine := newGateRouter(tokens, staticPerms{set: models.NewPermissionSet(models.CapabilityRead)}, models.CapabilityRead)

	access, err := tokens.IssueAccess("u1")
	if err != nil {
		t.Fatal(err)
	}

	rec := doGet(engine, "Bearer "+access)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", rec.Code, rec.Body)
	}
	if body := rec.Body.String(); body != `{"userId":"u1"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRequirePermission_MissingCapability(t *testing.T) {
	t.Parallel()

	tokens := testTokenService()
	engine := newGateRouter(tokens, staticPerms{set: models.NewPermissionSet(models.CapabilityRead)}, models.CapabilityWrite)

	access, err := tokens.IssueAccess("u1")
	if err != nil {
		t.Fatal(err)
	}

	rec := doGet(engine, "Bearer "+access)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("got %d, want 403", rec.Code)
	}
}

func TestRequirePermission_GrantedCapability(t *testing.T) {
	t.Parallel()

	tokens := testTokenService()
	engine := newGateRouter(tokens, staticPerms{set: models.NewPermissionSet(models.CapabilityRead, models.CapabilityWrite)}, models.CapabilityWrite)

	access, err := tokens.IssueAccess("u1")
	if err != nil {
		t.Fatal(err)
	}

	if rec := doGet(engine, "Bearer "+access); rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
}

func TestRequirePermission_StoreFailure(t *testing.T) {
	t.Parallel()

	tokens := testTokenService()
	engine := newGateRouter(tokens, staticPerms{err: errors.New("store down")}, models.CapabilityRead)

	access, err := tokens.IssueAccess("u1")
	if err != nil {
		t.Fatal(err)
	}

	if rec := doGet(engine, "Bearer "+access); rec.Code != http.StatusInternalServerError {
		t.Fatalf("got %d, want 500", rec.Code)
	}
}

func TestGateOrder_AuthenticateWinsWhenBothFail(t *testing.T) {
	t.Parallel()

	// No token and no capability: the authenticate gate runs first, so the
	// response is 401, not 403.
	engine := newGateRouter(testTokenService(), staticPerms{set: models.PermissionSet{}}, models.CapabilityWrite)

	if rec := doGet(engine, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}
}

func TestRequirePermission_WithoutIdentity(t *testing.T) {
	t.Parallel()

	// The permission gate composed without Authenticate cannot establish a
	// caller and answers 401.
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/perm-only",
		RequirePermission(models.CapabilityRead, staticPerms{set: models.NewPermissionSet(models.CapabilityRead)}),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	req := httptest.NewRequest(http.MethodGet, "/perm-only", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}
}

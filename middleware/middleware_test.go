package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"karigar/config"
	"karigar/models"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret-key-for-jwt-testing"
}

func protectedRouter(roles ...models.Role) *gin.Engine {
	router := gin.New()
	chain := []gin.HandlerFunc{JWTAuthMiddleware()}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": UserID(c), "role": Role(c)})
	})
	router.GET("/protected", chain...)
	return router
}

func get(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_MissingToken(t *testing.T) {
	w := get(protectedRouter(), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	w := get(protectedRouter(), "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}

func TestJWTAuth_ValidToken(t *testing.T) {
	token, err := utils.GenerateToken("user-123", string(models.RoleCustomer), "c@example.com", 15*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	w := get(protectedRouter(), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"role":"customer","userID":"user-123"}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestRequireRole(t *testing.T) {
	customer, _ := utils.GenerateToken("c1", string(models.RoleCustomer), "c@example.com", time.Minute)
	provider, _ := utils.GenerateToken("p1", string(models.RoleServiceProvider), "p@example.com", time.Minute)
	router := protectedRouter(models.RoleServiceProvider)

	if w := get(router, customer); w.Code != http.StatusForbidden {
		t.Errorf("customer on provider route: %d", w.Code)
	}
	if w := get(router, provider); w.Code != http.StatusOK {
		t.Errorf("provider on provider route: %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(2, nil))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}

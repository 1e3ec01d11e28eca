package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/controllers"
	"github.com/tebele-dev/tailor-made-couture/models"
)

func setupAuthRouter(svc *mockAuthService, user *models.User, sessionID string) *gin.Engine {
	r := gin.New()
	r.Use(withUser(user, sessionID))
	h := controllers.NewAuthController(svc, time.Hour, false)
	r.POST("/login", h.Login)
	r.POST("/signup", h.Signup)
	r.POST("/logout", h.Logout)
	r.GET("/me", h.Me)
	return r
}

func TestAuthController_Login(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(_ context.Context, email, password string) (*models.AuthResponse, error) {
			if password != "customer123" {
				return nil, apperrors.ErrInvalidCredentials
			}
			return &models.AuthResponse{Token: "tok", SessionID: "sid", User: *testShopper, Redirect: models.ShopperHomeRoute}, nil
		},
	}
	r := setupAuthRouter(svc, nil, "")

	t.Run("success sets token cookie", func(t *testing.T) {
		body, _ := json.Marshal(models.LoginRequest{Email: "customer@tailormade.com", Password: "customer123"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp models.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "tok", resp.Token)
		assert.Equal(t, "/home", resp.Redirect)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "token", cookies[0].Name)
		assert.Equal(t, "tok", cookies[0].Value)
		assert.Equal(t, 3600, cookies[0].MaxAge)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("bad credentials", func(t *testing.T) {
		body, _ := json.Marshal(models.LoginRequest{Email: "customer@tailormade.com", Password: "wrong"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials","kind":"auth"}`, w.Body.String())
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBufferString("{"))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid request")
	})
}

func TestAuthController_SignupCreated(t *testing.T) {
	svc := &mockAuthService{
		signupFn: func(_ context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
			assert.Equal(t, "Ann", req.Name)
			return &models.AuthResponse{Token: "new", User: models.User{ID: "3", Name: "Ann", Role: models.RoleShopper}}, nil
		},
	}
	r := setupAuthRouter(svc, nil, "")

	body := `{"name":"Ann","email":"ann@example.com","password":"secret12","confirm_password":"secret12"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/signup", bytes.NewBufferString(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"new"`)
}

func TestAuthController_LogoutEndsSession(t *testing.T) {
	var ended string
	svc := &mockAuthService{logoutFn: func(_ context.Context, sid string) { ended = sid }}
	r := setupAuthRouter(svc, testShopper, "sid-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/logout", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sid-1", ended)
	assert.Contains(t, w.Body.String(), `"redirect":"/login"`)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestAuthController_Me(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want map[string]interface{}
	}{
		{"anonymous", nil, map[string]interface{}{"authenticated": false, "home": "/home"}},
		{"admin", testAdmin, map[string]interface{}{"authenticated": true, "is_admin": true, "is_shopper": false, "home": "/admin"}},
		{"shopper", testShopper, map[string]interface{}{"authenticated": true, "is_admin": false, "is_shopper": true, "home": "/home"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupAuthRouter(&mockAuthService{}, tt.user, "")
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/me", nil)
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			var got map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			for k, v := range tt.want {
				assert.Equal(t, v, got[k], k)
			}
		})
	}
}

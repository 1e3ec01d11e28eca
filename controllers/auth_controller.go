package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tebele-dev/tailor-made-couture/middleware"
	"github.com/tebele-dev/tailor-made-couture/models"
	"github.com/tebele-dev/tailor-made-couture/services"
)

// AuthController signs visitors in and out and reports the current identity.
type AuthController struct {
	auth         services.AuthService
	cookieMaxAge int
	secureCookie bool
}

func NewAuthController(auth services.AuthService, tokenTTL time.Duration, secureCookie bool) *AuthController {
	return &AuthController{
		auth:         auth,
		cookieMaxAge: int(tokenTTL / time.Second),
		secureCookie: secureCookie,
	}
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	ac.setToken(c, resp.Token, ac.cookieMaxAge)
	c.JSON(http.StatusOK, resp)
}

// Signup handles POST /api/auth/signup.
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := ac.auth.Signup(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	ac.setToken(c, resp.Token, ac.cookieMaxAge)
	c.JSON(http.StatusCreated, resp)
}

// Logout handles POST /api/auth/logout. It succeeds for anonymous visitors too.
func (ac *AuthController) Logout(c *gin.Context) {
	if sid := middleware.SessionID(c); sid != "" {
		ac.auth.Logout(c.Request.Context(), sid)
	}
	ac.setToken(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": "/login"})
}

// Me handles GET /api/auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !user.IsAuthenticated() {
		c.JSON(http.StatusOK, gin.H{"authenticated": false, "home": models.ShopperHomeRoute})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          user,
		"is_admin":      user.IsAdmin(),
		"is_shopper":    user.IsShopper(),
		"home":          user.HomeRoute(),
	})
}

func (ac *AuthController) setToken(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", ac.secureCookie, true)
}

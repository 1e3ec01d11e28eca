package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleShopper Role = "shopper"
)

const (
	AdminHomeRoute   = "/admin"
	ShopperHomeRoute = "/home"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Session is the persisted identity for one signed-in client.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// The predicates below are nil-safe; a nil *User is an anonymous visitor.

func (u *User) IsAuthenticated() bool {
	return u != nil && u.ID != ""
}

func (u *User) HasRole(role Role) bool {
	return u.IsAuthenticated() && u.Role == role
}

func (u *User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

func (u *User) IsShopper() bool {
	return u.HasRole(RoleShopper)
}

// HomeRoute is the landing path for the identity.
func (u *User) HomeRoute() string {
	if u.IsAdmin() {
		return AdminHomeRoute
	}
	return ShopperHomeRoute
}

// AccountKey identifies the account across sessions. Carts, address books and
// order history are keyed by it.
func (u *User) AccountKey() string {
	if u == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(u.Email))
}

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	User      User   `json:"user"`
	Redirect  string `json:"redirect"`
}

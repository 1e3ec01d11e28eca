package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/tebele-dev/tailor-made-couture/models"
)

const accessTokenType = "access"

// SessionClaims is the identity carried by a session token.
type SessionClaims struct {
	SessionID string
	UserID    string
	Email     string
	Role      models.Role
}

type TokenService interface {
	Issue(session models.Session) (string, error)
	Parse(tokenStr string) (*SessionClaims, error)
}

type tokenServiceImpl struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) TokenService {
	return &tokenServiceImpl{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *tokenServiceImpl) Issue(session models.Session) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   session.User.ID,
		"sid":   session.ID,
		"email": session.User.Email,
		"role":  string(session.User.Role),
		"typ":   accessTokenType,
		"exp":   now.Add(s.ttl).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates the signature, expiry and token type.
func (s *tokenServiceImpl) Parse(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if typ, _ := claims["typ"].(string); typ != accessTokenType {
		return nil, fmt.Errorf("invalid token type")
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return nil, fmt.Errorf("invalid token: session (sid) claim is missing")
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &SessionClaims{
		SessionID: sid,
		UserID:    sub,
		Email:     email,
		Role:      models.Role(role),
	}, nil
}

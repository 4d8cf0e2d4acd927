package security

import (
	"context"
	"errors"
	"time"

	"contacts_api/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenService issues and verifies the signed session tokens used for
// authentication. One instance is shared by the login path and the router's
// verifier so both sides always use the same secret.
type TokenService struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
	now  func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{
		auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Auth exposes the underlying JWTAuth for the router's jwtauth.Verifier.
func (s *TokenService) Auth() *jwtauth.JWTAuth {
	return s.auth
}

// Issue signs a token carrying the user's identity, expiring TTL from now.
func (s *TokenService) Issue(user *model.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	}
	_, tokenString, err := s.auth.Encode(claims)
	return tokenString, err
}

// Verify validates signature and expiry and returns the embedded identity.
// An expired but correctly signed token always reports ErrTokenExpired,
// never a signature failure.
func (s *TokenService) Verify(tokenString string) (model.AuthUser, error) {
	token, err := jwtauth.VerifyToken(s.auth, tokenString)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return model.AuthUser{}, ErrTokenExpired
		}
		return model.AuthUser{}, ErrTokenInvalid
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return model.AuthUser{}, ErrTokenInvalid
	}
	user, err := UserFromClaims(claims)
	if err != nil {
		return model.AuthUser{}, ErrTokenInvalid
	}
	return user, nil
}

// UserFromClaims extracts the authenticated identity from decoded claims.
func UserFromClaims(claims map[string]interface{}) (model.AuthUser, error) {
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return model.AuthUser{}, errors.New("id claim is missing or not a string")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return model.AuthUser{}, errors.New("username claim is missing or not a string")
	}
	email, ok := claims["email"].(string)
	if !ok {
		return model.AuthUser{}, errors.New("email claim is missing or not a string")
	}
	return model.AuthUser{ID: id, Username: username, Email: email}, nil
}

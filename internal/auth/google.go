package auth

import (
	"fmt"
	"sync"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"
	googleIssuer  = "https://accounts.google.com"
)

// GoogleProfile is the subset of Google ID-token claims the service needs.
type GoogleProfile struct {
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier validates Google Sign-In ID tokens against Google's JWKS.
type GoogleVerifier struct {
	jwks     *keyfunc.JWKS
	clientID string
	mu       sync.RWMutex
}

func NewGoogleVerifier(clientID string) (*GoogleVerifier, error) {
	jwks, err := keyfunc.Get(googleJWKSURL, keyfunc.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to get Google JWKS: %w", err)
	}

	return &GoogleVerifier{
		jwks:     jwks,
		clientID: clientID,
	}, nil
}

func (v *GoogleVerifier) VerifyIDToken(tokenString string) (*GoogleProfile, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	token, err := jwt.Parse(tokenString, v.jwks.Keyfunc,
		jwt.WithAudience(v.clientID),
		jwt.WithIssuer(googleIssuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMissingClaims
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrMissingClaims)
	}

	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)

	return &GoogleProfile{
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}

func (v *GoogleVerifier) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.jwks != nil {
		v.jwks.EndBackground()
	}
}

package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// requireAuth guards a handler with bearer-token validation. With no secret
// configured the endpoint is open, matching single-operator deployments.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authSecret == "" {
			next(w, r)
			return
		}

		token, err := bearerToken(r)
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}

		if err := validateToken(token, s.authSecret); err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			return
		}

		next(w, r)
	}
}

// bearerToken extracts the token from an Authorization: Bearer header
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing Authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("malformed Authorization header")
	}
	return parts[1], nil
}

// validateToken checks an HS256-signed JWT against the configured secret
func validateToken(tokenString, secret string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("token is not valid")
	}
	return nil
}

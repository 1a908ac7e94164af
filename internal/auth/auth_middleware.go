package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success":    false,
		"statusCode": status,
		"message":    message,
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", false
	}
	return token, true
}

// JWTAccessTokenMiddleware rejects requests without a valid access
// token and stores the authenticated user ID in the request context.
func JWTAccessTokenMiddleware(jwtManager JWTManagerInterface, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "Authorization header missing or invalid")
			return
		}

		userID, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, ErrExpiredJWTToken) {
				writeJSONError(w, http.StatusUnauthorized, "Access token expired")
				return
			}
			writeJSONError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		ctx := context.WithValue(r.Context(), "userID", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// JWTOptionalAccessTokenMiddleware attaches the user ID when a valid
// token is present but lets unauthenticated requests through. Used for
// endpoints that can resolve the owner from the request payload.
func JWTOptionalAccessTokenMiddleware(jwtManager JWTManagerInterface, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, ErrExpiredJWTToken) {
				writeJSONError(w, http.StatusUnauthorized, "Access token expired")
				return
			}
			writeJSONError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		ctx := context.WithValue(r.Context(), "userID", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// JWTRefreshTokenMiddleware validates the refresh_token cookie and
// stores the user ID in the request context for token renewal.
func JWTRefreshTokenMiddleware(jwtManager JWTManagerInterface, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("refresh_token")
		if err != nil || cookie.Value == "" {
			writeJSONError(w, http.StatusUnauthorized, "Refresh token missing")
			return
		}

		userID, err := jwtManager.ExtractUserIDFromRefreshToken(cookie.Value)
		if err != nil {
			if errors.Is(err, ErrExpiredJWTToken) {
				writeJSONError(w, http.StatusUnauthorized, "Refresh token expired")
				return
			}
			writeJSONError(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}

		ctx := context.WithValue(r.Context(), "userID", userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// internal/middleware/jwt.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// JWT secret key for signing tokens
	// In production, this should be loaded from environment variables or a secure vault
	defaultJWTSecret = "kisanai_secret_key_should_be_loaded_from_env"

	// Token expiration time - 24 hours
	tokenExpiration = 24 * time.Hour
)

var jwtSecret = defaultJWTSecret

// SetSecret overrides the signing secret. Called once at startup with the
// configured value.
func SetSecret(secret string) {
	if secret != "" {
		jwtSecret = secret
	}
}

// Claims represents the JWT claims for our application
type Claims struct {
	FarmerID uuid.UUID `json:"farmer_id"`
	jwt.RegisteredClaims
}

// UnprotectedRoutes defines routes that don't require JWT authentication
var UnprotectedRoutes = map[string]bool{
	"/health":          true,
	"/farmer/register": true,
	"/farmer/login":    true,
}

// GenerateToken creates a new JWT token for the given farmer ID
func GenerateToken(farmerID uuid.UUID) (string, error) {
	expirationTime := time.Now().Add(tokenExpiration)

	claims := &Claims{
		FarmerID: farmerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "kisan-ai-api",
			Subject:   farmerID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates the provided JWT token
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		},
	)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ApplyJWTMiddleware wraps a handler function with JWT authentication
func ApplyJWTMiddleware(handler http.HandlerFunc, path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip JWT validation for unprotected routes
		if UnprotectedRoutes[path] {
			handler(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT Error: %v", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if time.Now().After(claims.ExpiresAt.Time) {
			http.Error(w, "Token expired", http.StatusUnauthorized)
			return
		}

		ctx := SetFarmerIDInContext(r.Context(), claims.FarmerID)
		handler(w, r.WithContext(ctx))
	}
}

// Define a custom context key type to avoid collisions
type contextKey string

// FarmerIDKey is the key used to store the farmer ID in the context
const FarmerIDKey contextKey = "farmer_id"

// SetFarmerIDInContext saves the farmer ID in the request context
func SetFarmerIDInContext(ctx context.Context, farmerID uuid.UUID) context.Context {
	return context.WithValue(ctx, FarmerIDKey, farmerID)
}

// GetFarmerIDFromContext retrieves the farmer ID from the context
func GetFarmerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	farmerID, ok := ctx.Value(FarmerIDKey).(uuid.UUID)
	return farmerID, ok
}

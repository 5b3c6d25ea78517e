package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	farmerID := uuid.New()

	token, err := GenerateToken(farmerID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, farmerID, claims.FarmerID)
	assert.Equal(t, "kisan-ai-api", claims.Issuer)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	handler := ApplyJWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, "/posts")

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewarePassesFarmerIDToHandler(t *testing.T) {
	farmerID := uuid.New()
	token, err := GenerateToken(farmerID)
	assert.NoError(t, err)

	var gotID uuid.UUID
	handler := ApplyJWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetFarmerIDFromContext(r.Context())
		assert.True(t, ok)
		gotID = id
		w.WriteHeader(http.StatusOK)
	}, "/posts")

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, farmerID, gotID)
}

func TestMiddlewareSkipsUnprotectedRoutes(t *testing.T) {
	handler := ApplyJWTMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, "/farmer/login")

	req := httptest.NewRequest(http.MethodPost, "/farmer/login", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

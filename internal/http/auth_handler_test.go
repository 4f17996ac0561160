package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cart-api/internal/domain"
	"cart-api/internal/repository"
	"cart-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type authServiceMock struct {
	userID string
	user   *domain.User
	err    error
}

func (a *authServiceMock) Register(_ context.Context, email, password, name string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	return a.userID, nil
}

func (a *authServiceMock) Login(_ context.Context, email, password string) (*domain.User, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.user, nil
}

func newAuthTestRouter(svc *authServiceMock) http.Handler {
	cartHandler := NewCartHandler(&cartServiceMock{}, 5*time.Second)
	authHandler := NewAuthHandler(svc, 5*time.Second)
	return NewRouter(cartHandler, authHandler, 5*time.Second)
}

func TestRegister_OK(t *testing.T) {
	router := newAuthTestRouter(&authServiceMock{userID: "64f0c2"})

	body := bytes.NewBufferString(`{"email":"a@b.c","password":"secret","name":"Alice"}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/auth/register", body))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response RegisterResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, "64f0c2", response.UserID)
}

func TestRegister_EmailTaken(t *testing.T) {
	router := newAuthTestRouter(&authServiceMock{err: repository.ErrEmailTaken})

	body := bytes.NewBufferString(`{"email":"a@b.c","password":"secret"}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/auth/register", body))

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.False(t, response.Success)
	assert.Equal(t, "email already registered", response.Message)
}

func TestLogin_OK(t *testing.T) {
	id := primitive.NewObjectID()
	router := newAuthTestRouter(&authServiceMock{user: &domain.User{
		ID:       id,
		Email:    "a@b.c",
		Name:     "Alice",
		Password: "secret",
	}})

	body := bytes.NewBufferString(`{"email":"a@b.c","password":"secret"}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/auth/login", body))

	require.Equal(t, http.StatusOK, recorder.Code)

	raw := recorder.Body.String()
	// the password must never be echoed back
	assert.NotContains(t, raw, "secret")

	var response LoginResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &response))
	assert.True(t, response.Success)
	assert.Equal(t, id.Hex(), response.User.ID)
	assert.Equal(t, "a@b.c", response.User.Email)
	assert.Equal(t, "Alice", response.User.Name)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := newAuthTestRouter(&authServiceMock{err: service.ErrInvalidCredentials})

	body := bytes.NewBufferString(`{"email":"a@b.c","password":"wrong"}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/auth/login", body))

	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.False(t, response.Success)
}

func TestRegister_StorageFailure(t *testing.T) {
	router := newAuthTestRouter(&authServiceMock{err: assert.AnError})

	body := bytes.NewBufferString(`{"email":"a@b.c","password":"secret"}`)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/api/auth/register", body))

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
}

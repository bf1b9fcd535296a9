package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"vendor-service/internal/model"
	"vendor-service/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- Mock store ---

type mockUserStore struct {
	user      *model.User
	getErr    error
	createErr error
	lastEmail string
	lastHash  string
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.lastEmail = email
	return m.user, m.getErr
}

func (m *mockUserStore) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	m.lastEmail = email
	m.lastHash = passwordHash
	return m.user, m.createErr
}

// --- Tests ---

func TestRegister(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "admin@example.com"}
	mock := &mockUserStore{user: user}
	h := NewAuthHandler(mock)

	c, rec := newVendorContext(http.MethodPost, "/auth/register", `{"email":"admin@example.com","password":"s3cret"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "admin@example.com", mock.lastEmail)

	// The stored credential is a bcrypt hash of the submitted password, never
	// the plaintext
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(mock.lastHash), []byte("s3cret")))
}

func TestRegisterMissingFields(t *testing.T) {
	h := NewAuthHandler(&mockUserStore{})

	c, rec := newVendorContext(http.MethodPost, "/auth/register", `{"email":"admin@example.com"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mock := &mockUserStore{createErr: store.ErrConflict}
	h := NewAuthHandler(mock)

	c, rec := newVendorContext(http.MethodPost, "/auth/register", `{"email":"admin@example.com","password":"s3cret"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Email: "admin@example.com", Password: string(hash)}
	mock := &mockUserStore{user: user}
	h := NewAuthHandler(mock)

	c, rec := newVendorContext(http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"s3cret"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Email: "admin@example.com", Password: string(hash)}
	mock := &mockUserStore{user: user}
	h := NewAuthHandler(mock)

	c, rec := newVendorContext(http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	mock := &mockUserStore{getErr: store.ErrNotFound}
	h := NewAuthHandler(mock)

	c, rec := newVendorContext(http.MethodPost, "/auth/login", `{"email":"nobody@example.com","password":"s3cret"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

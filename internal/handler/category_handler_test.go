package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vendor-service/internal/model"
	"vendor-service/internal/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock store ---

type mockCategoryStore struct {
	categories []model.Category
	category   *model.Category
	err        error
	lastName   string
	lastID     uuid.UUID
}

func (m *mockCategoryStore) List(ctx context.Context) ([]model.Category, error) {
	return m.categories, m.err
}

func (m *mockCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	m.lastID = id
	return m.category, m.err
}

func (m *mockCategoryStore) Create(ctx context.Context, name string) (*model.Category, error) {
	m.lastName = name
	return m.category, m.err
}

func (m *mockCategoryStore) Update(ctx context.Context, id uuid.UUID, name string) (*model.Category, error) {
	m.lastID = id
	m.lastName = name
	return m.category, m.err
}

func (m *mockCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.lastID = id
	return m.err
}

func newCategoryContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- Tests ---

func TestCategoryList(t *testing.T) {
	mock := &mockCategoryStore{categories: []model.Category{
		{ID: uuid.New(), Name: "Luxury Hotel"},
		{ID: uuid.New(), Name: "Tour Operator"},
	}}
	h := NewCategoryHandler(mock)

	c, rec := newCategoryContext(http.MethodGet, "/api/categories", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []model.Category
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Luxury Hotel", resp[0].Name)
}

func TestCategoryListStoreError(t *testing.T) {
	mock := &mockCategoryStore{err: store.ErrStore}
	h := NewCategoryHandler(mock)

	c, rec := newCategoryContext(http.MethodGet, "/api/categories", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "operation failed", resp["error"])
}

func TestCategoryGetInvalidID(t *testing.T) {
	h := NewCategoryHandler(&mockCategoryStore{})

	c, rec := newCategoryContext(http.MethodGet, "/api/categories/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryGetNotFound(t *testing.T) {
	mock := &mockCategoryStore{err: store.ErrNotFound}
	h := NewCategoryHandler(mock)

	id := uuid.New()
	c, rec := newCategoryContext(http.MethodGet, "/api/categories/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, id, mock.lastID)
}

func TestCategoryCreate(t *testing.T) {
	created := &model.Category{ID: uuid.New(), Name: "Luxury Hotel"}
	mock := &mockCategoryStore{category: created}
	h := NewCategoryHandler(mock)

	c, rec := newCategoryContext(http.MethodPost, "/api/categories", `{"name":"Luxury Hotel"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Luxury Hotel", mock.lastName)

	var resp model.Category
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, created.ID, resp.ID)
}

func TestCategoryCreateConflict(t *testing.T) {
	mock := &mockCategoryStore{err: store.ErrConflict}
	h := NewCategoryHandler(mock)

	c, rec := newCategoryContext(http.MethodPost, "/api/categories", `{"name":"Tour Operator"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCategoryCreateInvalidInput(t *testing.T) {
	mock := &mockCategoryStore{err: store.ErrInvalidInput}
	h := NewCategoryHandler(mock)

	c, rec := newCategoryContext(http.MethodPost, "/api/categories", `{"name":""}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryUpdate(t *testing.T) {
	updated := &model.Category{ID: uuid.New(), Name: "Boutique Hostel"}
	mock := &mockCategoryStore{category: updated}
	h := NewCategoryHandler(mock)

	c, rec := newCategoryContext(http.MethodPut, "/api/categories/"+updated.ID.String(), `{"name":"Boutique Hostel"}`)
	c.SetParamNames("id")
	c.SetParamValues(updated.ID.String())
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, updated.ID, mock.lastID)
	assert.Equal(t, "Boutique Hostel", mock.lastName)
}

func TestCategoryDelete(t *testing.T) {
	mock := &mockCategoryStore{}
	h := NewCategoryHandler(mock)

	id := uuid.New()
	c, rec := newCategoryContext(http.MethodDelete, "/api/categories/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, mock.lastID)
}

func TestCategoryDeleteNotFound(t *testing.T) {
	mock := &mockCategoryStore{err: store.ErrNotFound}
	h := NewCategoryHandler(mock)

	id := uuid.New()
	c, rec := newCategoryContext(http.MethodDelete, "/api/categories/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

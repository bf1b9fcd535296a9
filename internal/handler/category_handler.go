package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"vendor-service/internal/model"
	"vendor-service/internal/store"
	"vendor-service/pkg/logger"
	"vendor-service/prometheus"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryProvider is the slice of the category store the handler depends on
type CategoryProvider interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, name string) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryHandler struct {
	store CategoryProvider
}

func NewCategoryHandler(store CategoryProvider) *CategoryHandler {
	return &CategoryHandler{store: store}
}

// List retrieves all categories sorted by name
func (h *CategoryHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	categories, err := h.store.List(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return storeErrorResponse(c, err, "category")
	}

	log.Info("Categories retrieved successfully", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// Get retrieves a specific category by ID
func (h *CategoryHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("Invalid category ID", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	category, err := h.store.GetByID(c.Request().Context(), id)
	if err != nil {
		log.Warn("Category not found", zap.String("category_id", id.String()), zap.Error(err))
		return storeErrorResponse(c, err, "category")
	}

	return c.JSON(http.StatusOK, category)
}

// Create adds a new category
func (h *CategoryHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("create")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	log.Info("Category creation request", zap.String("name", req.Name))

	defer prometheus.TrackDBOperation("insert")(time.Now())
	category, err := h.store.Create(c.Request().Context(), req.Name)
	if err != nil {
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		return storeErrorResponse(c, err, "category")
	}

	log.Info("Category created successfully",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// Update renames an existing category
func (h *CategoryHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("Invalid category ID", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	category, err := h.store.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		log.Error("Failed to update category",
			zap.String("category_id", id.String()),
			zap.Error(err))
		return storeErrorResponse(c, err, "category")
	}

	log.Info("Category updated successfully",
		zap.String("category_id", category.ID.String()),
		zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// Delete removes a category and all of its vendor associations
func (h *CategoryHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCategoryOperation("delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("Invalid category ID", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete category",
			zap.String("category_id", id.String()),
			zap.Error(err))
		return storeErrorResponse(c, err, "category")
	}

	log.Info("Category deleted successfully", zap.String("category_id", id.String()))
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}

// storeErrorResponse maps store error kinds to HTTP responses. Store failures
// surface a generic message; internals stay in the logs.
func storeErrorResponse(c echo.Context, err error, entity string) error {
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": entity + " not found"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": entity + " already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
	}
}

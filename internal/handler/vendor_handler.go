package handler

import (
	"context"
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

// VendorRequest defines the structure for vendor creation requests
type VendorRequest struct {
	Name        string   `json:"name" validate:"required"`
	City        string   `json:"city" validate:"required"`
	CategoryIDs []string `json:"category_ids" validate:"required"`
}

// VendorUpdateRequest defines the structure for vendor update requests. Nil
// fields were absent from the request body; an absent category_ids keeps the
// current associations, while an empty list clears them.
type VendorUpdateRequest struct {
	Name        *string   `json:"name"`
	City        *string   `json:"city"`
	CategoryIDs *[]string `json:"category_ids"`
}

// VendorProvider is the slice of the vendor store the handler depends on
type VendorProvider interface {
	List(ctx context.Context, filter store.VendorFilter) ([]model.Vendor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	Create(ctx context.Context, input store.CreateVendorInput) (*model.Vendor, error)
	Update(ctx context.Context, id uuid.UUID, input store.UpdateVendorInput) (*model.Vendor, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountsByCategory(ctx context.Context) ([]store.CategoryVendorCount, error)
}

type VendorHandler struct {
	store VendorProvider
}

func NewVendorHandler(store VendorProvider) *VendorHandler {
	return &VendorHandler{store: store}
}

// List retrieves vendors sorted by name, optionally filtered by city
// substring and category membership
func (h *VendorHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("list")

	filter := store.VendorFilter{City: c.QueryParam("city")}
	if raw := c.QueryParam("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("Invalid category_id filter", zap.String("category_id", raw))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category_id filter"})
		}
		filter.CategoryID = &categoryID
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	vendors, err := h.store.List(c.Request().Context(), filter)
	if err != nil {
		log.Error("Failed to retrieve vendors", zap.Error(err))
		return storeErrorResponse(c, err, "vendor")
	}

	log.Info("Vendors retrieved successfully",
		zap.Int("count", len(vendors)),
		zap.String("city_filter", filter.City))
	return c.JSON(http.StatusOK, vendors)
}

// Get retrieves a vendor by ID with its categories populated
func (h *VendorHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("Invalid vendor ID", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid vendor ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	vendor, err := h.store.GetByID(c.Request().Context(), id)
	if err != nil {
		log.Warn("Vendor not found", zap.String("vendor_id", id.String()), zap.Error(err))
		return storeErrorResponse(c, err, "vendor")
	}

	return c.JSON(http.StatusOK, vendor)
}

// Create adds a new vendor with its initial category associations
func (h *VendorHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("create")

	var req VendorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if len(req.CategoryIDs) == 0 {
		log.Warn("Vendor creation without categories", zap.String("name", req.Name))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one category is required"})
	}

	categoryIDs, err := parseCategoryIDs(req.CategoryIDs)
	if err != nil {
		log.Warn("Invalid category ID in request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
	}

	log.Info("Vendor creation request",
		zap.String("name", req.Name),
		zap.String("city", req.City),
		zap.Int("categories", len(categoryIDs)))

	defer prometheus.TrackDBOperation("insert")(time.Now())
	vendor, err := h.store.Create(c.Request().Context(), store.CreateVendorInput{
		Name:        req.Name,
		City:        req.City,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		log.Error("Failed to create vendor", zap.String("name", req.Name), zap.Error(err))
		return storeErrorResponse(c, err, "vendor")
	}

	// Update catalog gauges
	go h.refreshVendorGauges()

	log.Info("Vendor created successfully",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("name", vendor.Name),
		zap.String("city", vendor.City))
	return c.JSON(http.StatusCreated, vendor)
}

// Update applies a partial update to a vendor; a supplied category_ids list
// replaces the association set wholesale
func (h *VendorHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("update")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("Invalid vendor ID", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid vendor ID"})
	}

	var req VendorUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	input := store.UpdateVendorInput{Name: req.Name, City: req.City}
	if req.CategoryIDs != nil {
		categoryIDs, err := parseCategoryIDs(*req.CategoryIDs)
		if err != nil {
			log.Warn("Invalid category ID in request", zap.Error(err))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid category ID"})
		}
		input.CategoryIDs = &categoryIDs
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	vendor, err := h.store.Update(c.Request().Context(), id, input)
	if err != nil {
		log.Error("Failed to update vendor", zap.String("vendor_id", id.String()), zap.Error(err))
		return storeErrorResponse(c, err, "vendor")
	}

	// Update catalog gauges
	go h.refreshVendorGauges()

	log.Info("Vendor updated successfully",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("name", vendor.Name))
	return c.JSON(http.StatusOK, vendor)
}

// Delete removes a vendor and its category associations; the categories
// themselves are untouched
func (h *VendorHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordVendorOperation("delete")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		log.Warn("Invalid vendor ID", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid vendor ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		log.Error("Failed to delete vendor", zap.String("vendor_id", id.String()), zap.Error(err))
		return storeErrorResponse(c, err, "vendor")
	}

	// Update catalog gauges
	go h.refreshVendorGauges()

	log.Info("Vendor deleted successfully", zap.String("vendor_id", id.String()))
	return c.JSON(http.StatusOK, echo.Map{"message": "Vendor deleted successfully"})
}

// refreshVendorGauges recomputes the catalog size gauges after a mutation
func (h *VendorHandler) refreshVendorGauges() {
	ctx := context.Background()

	if total, err := h.store.Count(ctx); err == nil {
		prometheus.UpdateTotalVendors(int(total))
	}

	counts, err := h.store.CountsByCategory(ctx)
	if err != nil {
		return
	}
	for _, cc := range counts {
		prometheus.UpdateVendorsPerCategory(cc.CategoryID.String(), cc.CategoryName, int(cc.VendorCount))
	}
}

// parseCategoryIDs converts the request's string ids into UUIDs
func parseCategoryIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

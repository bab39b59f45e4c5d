package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"foodmanager/models"
	"foodmanager/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FoodController struct {
	Foods *services.FoodService
	log   *zap.Logger
	// exposeErrors adds the underlying error text to 500 responses.
	exposeErrors bool
}

func NewFoodController(foods *services.FoodService, log *zap.Logger, production bool) *FoodController {
	return &FoodController{Foods: foods, log: log.Named("foods"), exposeErrors: !production}
}

// GET /api/foods?type=uph&search=rice&limit=20&offset=40
func (fc *FoodController) ListFoods(c *gin.Context) {
	page, err := fc.Foods.List(c.Request.Context(), ParseFoodFilter(c))
	if err != nil {
		fc.respondError(c, err, "Failed to fetch foods", "")
		return
	}
	c.JSON(http.StatusOK, page)
}

// ParseFoodFilter reads the list query. Malformed numbers fall back to the
// defaults; an unknown type is dropped by the service.
func ParseFoodFilter(c *gin.Context) models.FoodFilter {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = services.DefaultPageLimit
	}
	offset, err := strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return models.FoodFilter{
		Type:   models.FoodType(c.Query("type")),
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
}

// POST /api/foods
func (fc *FoodController) CreateFood(c *gin.Context) {
	var in models.FoodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	food, err := fc.Foods.Create(c.Request.Context(), in)
	if err != nil {
		fc.respondError(c, err, "Failed to create food", "")
		return
	}
	c.JSON(http.StatusCreated, food)
}

// GET /api/foods/:id
func (fc *FoodController) GetFood(c *gin.Context) {
	id := c.Param("id")
	food, err := fc.Foods.Get(c.Request.Context(), id)
	if err != nil {
		fc.respondError(c, err, "Failed to fetch food", id)
		return
	}
	c.JSON(http.StatusOK, food)
}

// PUT /api/foods/:id
func (fc *FoodController) UpdateFood(c *gin.Context) {
	id := c.Param("id")
	var in models.FoodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	food, err := fc.Foods.Update(c.Request.Context(), id, in)
	if err != nil {
		fc.respondError(c, err, "Failed to update food", id)
		return
	}
	c.JSON(http.StatusOK, food)
}

// DELETE /api/foods/:id
func (fc *FoodController) DeleteFood(c *gin.Context) {
	id := c.Param("id")
	if err := fc.Foods.Delete(c.Request.Context(), id); err != nil {
		fc.respondError(c, err, "Failed to delete food", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted successfully"})
}

// respondError maps service errors onto the API error bodies. Anything that
// is not a validation or not-found error is a store failure.
func (fc *FoodController) respondError(c *gin.Context, err error, failure, id string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, validationBody(verr))
	case errors.Is(err, services.ErrFoodNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
	default:
		_ = c.Error(err)
		fc.log.Error(failure, zap.String("id", id), zap.Error(err))
		body := gin.H{"error": failure}
		if fc.exposeErrors {
			body["message"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

func validationBody(e *services.ValidationError) gin.H {
	switch e.Kind {
	case services.MissingFields:
		return gin.H{
			"error":    "Missing required fields",
			"required": e.Missing,
			"received": e.Present,
		}
	case services.InvalidEnum:
		return gin.H{
			"error":      "Invalid food type",
			"validTypes": e.ValidTypes,
			"received":   e.Received,
		}
	case services.InvalidImageURL:
		return gin.H{
			"error":    "Invalid image URL",
			"received": e.Received,
		}
	}
	return gin.H{"error": e.Error()}
}

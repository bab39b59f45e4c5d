package controllers

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"foodmanager/models"
	"foodmanager/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageController renders the HTML pages. Writes go through the JSON API
// from the browser, so pages only read.
type PageController struct {
	Foods *services.FoodService
	log   *zap.Logger
}

func NewPageController(foods *services.FoodService, log *zap.Logger) *PageController {
	return &PageController{Foods: foods, log: log.Named("pages")}
}

// GET /
func (pc *PageController) Home(c *gin.Context) {
	filter := ParseFoodFilter(c)
	page, err := pc.Foods.List(c.Request.Context(), filter)
	if err != nil {
		pc.log.Error("list foods for home page", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to fetch foods")
		return
	}

	prev := filter.Offset - filter.Limit
	if prev < 0 {
		prev = 0
	}
	c.HTML(http.StatusOK, "list.html", gin.H{
		"Title":   "Foods",
		"Types":   models.ValidFoodTypes,
		"Filter":  filter,
		"Page":    page,
		"HasPrev": filter.Offset > 0,
		"PrevURL": listURL(filter, prev),
		"NextURL": listURL(filter, nextOffset(filter)),
	})
}

// nextOffset saturates instead of wrapping for client-chosen limits.
func nextOffset(f models.FoodFilter) int {
	if f.Offset > math.MaxInt-f.Limit {
		return math.MaxInt
	}
	return f.Offset + f.Limit
}

func listURL(f models.FoodFilter, offset int) string {
	q := url.Values{}
	if f.Type.Valid() {
		q.Set("type", string(f.Type))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Limit != services.DefaultPageLimit {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// GET /create
func (pc *PageController) CreatePage(c *gin.Context) {
	c.HTML(http.StatusOK, "create.html", gin.H{
		"Title":        "Add food",
		"Types":        models.ValidFoodTypes,
		"SelectedType": models.FoodTypeUPH,
	})
}

// GET /foods/:id
func (pc *PageController) FoodPage(c *gin.Context) {
	food, err := pc.Foods.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrFoodNotFound) {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{"Title": "Not found"})
		return
	}
	if err != nil {
		pc.log.Error("load food page", zap.String("id", c.Param("id")), zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to fetch food")
		return
	}

	c.HTML(http.StatusOK, "detail.html", gin.H{
		"Title":        food.Name,
		"Types":        models.ValidFoodTypes,
		"SelectedType": food.Type,
		"Food":         food,
	})
}

// GET /login
func (pc *PageController) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Login", "HideNav": true})
}

// GET /favicon.ico
func (pc *PageController) Favicon(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

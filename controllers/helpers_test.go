package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodmanager/config"
	"foodmanager/services"
	"foodmanager/web"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), config.GormConfig(zap.NewNop()))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, config.Migrate(db))
	return db
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), config.GormConfig(zap.NewNop()))
	require.NoError(t, err)
	return db, mock
}

// foodRouter mounts the food endpoints the same way routes.SetupRouter does.
func foodRouter(svc *services.FoodService, production bool) *gin.Engine {
	fc := NewFoodController(svc, zap.NewNop(), production)
	r := gin.New()
	foods := r.Group("/api/foods")
	foods.GET("", fc.ListFoods)
	foods.POST("", fc.CreateFood)
	foods.GET("/:id", fc.GetFood)
	foods.PUT("/:id", fc.UpdateFood)
	foods.DELETE("/:id", fc.DeleteFood)
	return r
}

func pageRouter(svc *services.FoodService) *gin.Engine {
	pc := NewPageController(svc, zap.NewNop())
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	r.GET("/", pc.Home)
	r.GET("/create", pc.CreatePage)
	r.GET("/foods/:id", pc.FoodPage)
	r.GET("/login", pc.LoginPage)
	r.GET("/favicon.ico", pc.Favicon)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

package routes

import (
	"net/http"

	"foodmanager/config"
	"foodmanager/controllers"
	"foodmanager/middlewares"
	"foodmanager/services"
	"foodmanager/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	Foods    *services.FoodService
	Events   *services.FoodEvents
	Sessions *services.SessionManager
	// Uploader is nil when S3 is not configured.
	Uploader controllers.ImageUploader
}

func SetupRouter(d Deps) *gin.Engine {
	production := d.Config.IsProduction()
	validSession := middlewares.TokenValidator(d.Sessions.Valid)

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(d.Log), middlewares.AuthGate(validSession))
	r.SetHTMLTemplate(web.Templates())
	r.StaticFS("/static", http.FS(web.Static()))

	foodCtl := controllers.NewFoodController(d.Foods, d.Log, production)
	authCtl := controllers.NewAuthController(d.Sessions, d.Log, production)
	uploadCtl := controllers.NewUploadController(d.Uploader, d.Log)
	realtimeCtl := controllers.NewRealtimeController(d.Events)
	pageCtl := controllers.NewPageController(d.Foods, d.Log)

	api := r.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.POST("/logout", authCtl.Logout)
	}

	// Food resource; session checked here only when API_AUTH_REQUIRED is set
	foods := api.Group("/foods")
	uploads := api.Group("/uploads")
	if d.Config.APIAuthRequired {
		foods.Use(middlewares.RequireSession(validSession))
		uploads.Use(middlewares.RequireSession(validSession))
	}
	{
		foods.GET("", foodCtl.ListFoods)
		foods.POST("", foodCtl.CreateFood)
		foods.GET("/events", realtimeCtl.FoodEventsWS)
		foods.GET("/:id", foodCtl.GetFood)
		foods.PUT("/:id", foodCtl.UpdateFood)
		foods.DELETE("/:id", foodCtl.DeleteFood)

		uploads.POST("/images", uploadCtl.UploadImage)
	}

	// Pages, behind the auth gate
	r.GET("/", pageCtl.Home)
	r.GET("/create", pageCtl.CreatePage)
	r.GET("/foods/:id", pageCtl.FoodPage)
	r.GET(middlewares.LoginPath, pageCtl.LoginPage)
	r.GET("/favicon.ico", pageCtl.Favicon)

	return r
}

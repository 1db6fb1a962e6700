package router

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/brew-bliss-cafe/controllers"
	"github.com/yeremiapane/brew-bliss-cafe/middlewares"
	"github.com/yeremiapane/brew-bliss-cafe/utils"
)

// SetupRouter wires middlewares, the public reservation API, the static
// marketing site and the auth/admin surface. staticDir may be empty (in
// tests) to skip static serving.
func SetupRouter(db *gorm.DB, staticDir string) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// 50 requests per second per IP across the whole API
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	if staticDir != "" {
		if _, err := os.Stat(staticDir); os.IsNotExist(err) {
			utils.ErrorLogger.Printf("Static dir not found: %s", staticDir)
		} else {
			r.Static("/site", staticDir)
			r.GET("/", func(c *gin.Context) {
				c.Redirect(http.StatusMovedPermanently, "/site/index.html")
			})
		}
	}

	reservationCtrl := controllers.NewReservationController(db)
	userCtrl := controllers.NewUserController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	{
		api.GET("/health", controllers.HealthCheck)

		// phone route is registered before :id so "phone" never binds
		// as a reservation id
		api.POST("/reservations", reservationCtrl.CreateReservation)
		api.GET("/reservations", reservationCtrl.GetAllReservations)
		api.GET("/reservations/phone/:phone", reservationCtrl.GetReservationsByPhone)
		api.GET("/reservations/:id", reservationCtrl.GetReservationByID)
		api.PUT("/reservations/:id", reservationCtrl.UpdateReservation)
		api.DELETE("/reservations/:id", reservationCtrl.DeleteReservation)
	}

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.GET("/users", userCtrl.GetAllUsers)
		auth.GET("/reservations/stats", adminCtrl.GetReservationStats)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/dashboard", controllers.DashboardHandler)
	}

	return r
}

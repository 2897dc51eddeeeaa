package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/config"
	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/hub"
	"github.com/yeremiapane/restaurant-reservations/metrics"
	"github.com/yeremiapane/restaurant-reservations/middlewares"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
)

// SetupRouter wires services, controllers and middleware onto a new engine.
// floor and m may be nil, in which case the websocket endpoint or the
// metrics collectors are left out.
func SetupRouter(db *gorm.DB, cfg *config.Config, floor *hub.Hub, m *metrics.Metrics) (*gin.Engine, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	limiter := middlewares.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	r.Use(middlewares.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigins))
	r.Use(limiter.RateLimit())
	if m != nil {
		r.Use(m.Middleware())
	}
	r.Use(middlewares.ErrorHandler())

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(utils.NotFound("Path not found: %s", c.Request.URL.Path))
	})
	r.NoMethod(func(c *gin.Context) {
		_ = c.Error(utils.NewAPIError(http.StatusMethodNotAllowed, "%s not allowed for %s", c.Request.Method, c.Request.URL.Path))
	})

	// Every change is fanned out to the floor hub and the event counter
	var events hub.Fanout
	if floor != nil {
		events = append(events, floor)
	}
	if m != nil {
		events = append(events, m)
	}

	reservationSvc := services.NewReservationService(db)
	tableSvc := services.NewTableService(db, reservationSvc)

	reservationCtrl := controllers.NewReservationController(reservationSvc, policy, events)
	tableCtrl := controllers.NewTableController(tableSvc, reservationSvc, events)

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			utils.ErrorLogger.Printf("Health check failed: %v", err)
			utils.RespondError(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		utils.RespondJSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if floor != nil {
		floorCtrl := controllers.NewFloorController(floor, cfg.CORSOrigins)
		r.GET("/ws/floor", floorCtrl.FloorHandler)
	}

	reservations := r.Group("/reservations")
	{
		reservations.GET("", reservationCtrl.ListReservations)
		reservations.POST("", reservationCtrl.CreateReservation)
		reservations.GET("/:reservation_id", reservationCtrl.GetReservation)
		reservations.PUT("/:reservation_id", reservationCtrl.UpdateReservation)
		reservations.PUT("/:reservation_id/status", reservationCtrl.UpdateReservationStatus)
	}

	tables := r.Group("/tables")
	{
		tables.GET("", tableCtrl.GetAllTables)
		tables.POST("", tableCtrl.CreateTable)
		tables.GET("/:table_id", tableCtrl.GetTable)
		tables.PUT("/:table_id/seat", tableCtrl.SeatTable)
		tables.DELETE("/:table_id/seat", tableCtrl.FinishTable)
	}

	return r, nil
}

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/reservation-app/controllers"
	"github.com/yeremiapane/reservation-app/middlewares"
	"github.com/yeremiapane/reservation-app/notifier"
	"github.com/yeremiapane/reservation-app/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, monitor *services.StatsMonitor) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi service inti
	registry := services.NewTableRegistry(db)
	sequencer := services.NewQueueSequencer(db)
	schedule := services.NewScheduleService(db)
	dispatcher := notifier.NewDispatcher(db)
	reservationSvc := services.NewReservationService(db, registry, sequencer, schedule, dispatcher)

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	customerCtrl := controllers.NewCustomerController(db)
	reservationCtrl := controllers.NewReservationController(db, reservationSvc)
	waitlistCtrl := controllers.NewWaitlistController(db, reservationSvc)
	scheduleCtrl := controllers.NewScheduleController(db, schedule)
	notificationCtrl := controllers.NewNotificationController(db)
	adminCtrl := controllers.NewAdminController(db, monitor)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- CUSTOMER (Tanpa Auth) --
	// Tamu bisa membuat reservasi dan melihat meja tanpa login
	r.POST("/reservations", reservationCtrl.CreateReservation)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/queue", reservationCtrl.GetQueue)
	r.GET("/is-open", scheduleCtrl.IsOpen)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	// Profil user (Admin/Staff)
	auth.GET("/profile", userCtrl.GetProfile)
	auth.GET("/users", userCtrl.GetAllUsers)

	// RESERVATIONS (staff/admin)
	auth.GET("/reservations", reservationCtrl.GetAllReservations)
	auth.POST("/reservations", reservationCtrl.CreateReservation)
	auth.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
	auth.POST("/reservations/:reservation_id/assign", reservationCtrl.AssignTable)
	auth.POST("/reservations/:reservation_id/complete", reservationCtrl.CompleteReservation)
	auth.POST("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)
	auth.POST("/reservations/:reservation_id/no-show", reservationCtrl.MarkNoShow)
	auth.GET("/queue", reservationCtrl.GetQueue)

	// WAITLIST (staff/admin)
	auth.GET("/waitlist", waitlistCtrl.GetWaitlist)
	auth.POST("/waitlist", waitlistCtrl.AddToWaitlist)
	auth.POST("/waitlist/promote", waitlistCtrl.Promote)
	auth.POST("/waitlist/:waitlist_id/call", waitlistCtrl.CallEntry)
	auth.POST("/waitlist/:waitlist_id/seat", waitlistCtrl.SeatEntry)
	auth.POST("/waitlist/:waitlist_id/cancel", waitlistCtrl.CancelEntry)
	auth.POST("/waitlist/:waitlist_id/vacate", waitlistCtrl.VacateEntry)
	auth.PATCH("/waitlist/:waitlist_id", waitlistCtrl.UpdateEntry)
	auth.DELETE("/waitlist/:waitlist_id", waitlistCtrl.DeleteEntry)

	// TABLES (staff/admin)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", tableCtrl.CreateTable)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	auth.PATCH("/tables/:table_id/capacity", tableCtrl.UpdateCapacity)
	auth.PATCH("/tables/:table_id/occupancy", tableCtrl.UpdateOccupancy)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// CUSTOMERS (staff/admin)
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)
	auth.GET("/customers/:customer_id/reservations", customerCtrl.GetCustomerReservations)

	// OPERATING HOURS & HOLIDAYS (admin)
	auth.GET("/operating-hours", scheduleCtrl.GetOperatingHours)
	auth.PUT("/operating-hours", middlewares.RequireAdmin(), scheduleCtrl.UpsertOperatingHours)
	auth.GET("/holidays", scheduleCtrl.GetHolidays)
	auth.POST("/holidays", middlewares.RequireAdmin(), scheduleCtrl.CreateHoliday)
	auth.DELETE("/holidays/:holiday_id", middlewares.RequireAdmin(), scheduleCtrl.DeleteHoliday)

	// NOTIFICATIONS (staff/admin)
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)
	auth.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)

	// Routes untuk Admin
	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	auth.GET("/analytics/no-show", adminCtrl.GetNoShowRate)
	auth.GET("/analytics/peak-hours", adminCtrl.GetPeakHours)
	auth.GET("/analytics/table-utilization", adminCtrl.GetTableUtilization)
	auth.GET("/analytics/waitlist", adminCtrl.GetWaitlistAnalytics)
	auth.GET("/analytics/frequent-customers", customerCtrl.GetFrequentCustomers)

	// WebSocket endpoint dengan middleware khusus
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/:role", controllers.EventsHandler)
	}

	return r
}

package routes

import (
	"net/http"

	"shopline/handlers"
	"shopline/middleware"
	"shopline/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler wired by the router.
type Handlers struct {
	Users        *handlers.UserHandler
	Shops        *handlers.ShopHandler
	TimeSlots    *handlers.TimeSlotHandler
	Availability *handlers.AvailabilityHandler
	Appointments *handlers.AppointmentHandler
	Inventory    *handlers.InventoryHandler
	Messages     *handlers.MessageHandler
	Storage      *handlers.StorageHandler
	Payments     *handlers.PaymentHandler
}

// SetupRouter builds the gin engine with middleware and all routes.
func SetupRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), utils.ErrorHandler())
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public auth routes.
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Users.Register)
		auth.POST("/login", h.Users.Login)
		auth.POST("/reset-password", h.Users.ResetPassword)
	}

	// Everything else requires a valid token.
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())

	users := protected.Group("/users")
	{
		users.GET("/me", h.Users.GetProfile)
		users.PUT("/me", h.Users.UpdateProfile)
		users.PUT("/me/fcm-token", h.Users.UpdateFCMToken)
		users.DELETE("/me", h.Users.DeleteAccount)
	}

	shops := protected.Group("/shops")
	{
		shops.POST("", h.Shops.CreateShop)
		shops.GET("", h.Shops.GetAllShops)
		shops.GET("/:id", h.Shops.GetShopByID)
		shops.PUT("/:id", h.Shops.UpdateShop)
		shops.DELETE("/:id", h.Shops.DeleteShop)
	}

	slots := protected.Group("/timeslots")
	{
		slots.POST("/:shopId/:date", h.TimeSlots.CreateTimeSlots)
		slots.GET("/:shopId/:date", h.TimeSlots.GetTimeSlots)
		slots.PUT("/:shopId/:date", h.TimeSlots.UpdateTimeSlots)
	}

	availability := protected.Group("/availability")
	{
		availability.POST("/:shopId", h.Availability.SetShopAvailability)
		availability.GET("/:shopId", h.Availability.GetShopAvailability)
		availability.DELETE("/:shopId/:availabilityId", h.Availability.DeleteAvailabilitySlot)
	}

	appointments := protected.Group("/appointments")
	{
		appointments.POST("", h.Appointments.CreateAppointment)
		appointments.GET("", h.Appointments.GetAllAppointments)
		appointments.GET("/:id", h.Appointments.GetAppointmentByID)
		appointments.PUT("/:id", h.Appointments.UpdateAppointment)
		appointments.DELETE("/:id", h.Appointments.DeleteAppointment)
	}

	inventory := protected.Group("/inventory")
	{
		inventory.GET("", h.Inventory.GetInventory)
		inventory.POST("", h.Inventory.AddInventoryItem)
		inventory.PUT("/:id", h.Inventory.UpdateInventoryItem)
		inventory.DELETE("/:id", h.Inventory.DeleteInventoryItem)
	}

	messages := protected.Group("/messages")
	{
		messages.GET("/:conversationId", h.Messages.GetMessages)
		messages.POST("/:conversationId", h.Messages.SendMessage)
		messages.PUT("/read/:messageId", h.Messages.MarkMessageRead)
	}

	// File routes are registered only when a storage backend is
	// configured; the rest of the API works without one.
	if h.Storage != nil {
		files := protected.Group("/files")
		files.POST("/upload", h.Storage.UploadFile)
		files.GET("/url", h.Storage.GetFileURL)
		files.DELETE("", h.Storage.DeleteFile)
	}

	payments := protected.Group("/payments")
	{
		payments.POST("", h.Payments.InitiatePayment)
		payments.GET("/:id", h.Payments.GetPaymentStatus)
	}

	return r
}

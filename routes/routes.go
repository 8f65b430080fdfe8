package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-frontdesk/controllers"
	"hotel-frontdesk/middleware"
	"hotel-frontdesk/models"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Rooms    *controllers.RoomController
	Billing  *controllers.BillingController
	Checkin  *controllers.CheckinController
	Bookings *controllers.BookingController
	Admin    *controllers.AdminController
	Settings *controllers.SettingsController
}

func corsConfig(origins []string) cors.Config {
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.HeaderRequestID},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// SetupRouter mounts the API. Front-desk routes accept both roles, the
// admin surface is owner only.
func SetupRouter(
	origins []string,
	log *slog.Logger,
	ctl Controllers,
	auth middleware.TokenParser,
	loginLimiter *middleware.IPRateLimiter,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))
	r.Use(cors.New(corsConfig(origins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/login", middleware.RateLimitByIP(loginLimiter), ctl.Auth.Login)

		authed := api.Group("", middleware.AuthJWT(auth))

		desk := authed.Group("", middleware.RequireRoles(models.RoleBillingDesk, models.RoleOwner))
		{
			rooms := desk.Group("/rooms")
			{
				rooms.GET("", ctl.Rooms.List)
				rooms.GET("/types", ctl.Rooms.Types)
				rooms.POST("/:id/select", ctl.Rooms.Select)
			}

			calc := desk.Group("/billing")
			{
				calc.POST("/gst", ctl.Billing.GST)
				calc.POST("/stay", ctl.Billing.Stay)
			}

			checkin := desk.Group("/checkin")
			{
				checkin.GET("/draft", ctl.Checkin.GetDraft)
				checkin.PUT("/draft", ctl.Checkin.SaveDraft)
				checkin.DELETE("/draft", ctl.Checkin.DiscardDraft)
				checkin.POST("/quote", ctl.Checkin.Quote)
				checkin.POST("", ctl.Checkin.CheckIn)
			}

			bookings := desk.Group("/bookings")
			{
				bookings.GET("", ctl.Bookings.List)
				bookings.GET("/:id", ctl.Bookings.Get)
				bookings.PUT("/:id", ctl.Bookings.Update)
				bookings.GET("/:id/bill", ctl.Bookings.Bill)
				bookings.GET("/:id/invoice", ctl.Bookings.Invoice)
				bookings.POST("/:id/checkout", ctl.Bookings.CheckoutBooking)
				bookings.POST("/:id/invoice-downloaded", ctl.Bookings.InvoiceDownloaded)
			}

			desk.GET("/settings/hotel", ctl.Settings.GetHotel)
		}

		owner := authed.Group("", middleware.RequireRoles(models.RoleOwner))
		{
			rooms := owner.Group("/rooms")
			{
				rooms.POST("", ctl.Rooms.Create)
				rooms.PUT("/:id", ctl.Rooms.Update)
				rooms.PATCH("/:id", ctl.Rooms.Update)
				rooms.DELETE("/:id", ctl.Rooms.Delete)
			}

			owner.PUT("/settings/hotel", ctl.Settings.UpdateHotel)

			admin := owner.Group("/admin")
			{
				admin.GET("/dashboard", ctl.Admin.Dashboard)
				admin.GET("/history", ctl.Admin.ListHistory)
				admin.GET("/history/export", ctl.Admin.ExportHistory)
				admin.DELETE("/history/:id", ctl.Admin.DeleteHistory)
				admin.GET("/logs", ctl.Admin.Logs)
				admin.GET("/operators", ctl.Auth.ListOperators)
				admin.POST("/operators", ctl.Auth.CreateOperator)
			}
		}
	}

	return r
}

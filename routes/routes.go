package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hotel-frontdesk/controllers"
	"hotel-frontdesk/middleware"
)

func parseCorsOrigins(configured []string) []string {
	origins := make([]string, 0, len(configured))
	for _, part := range configured {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the front-desk API onto a gin engine.
func SetupRouter(
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	pc *controllers.PaymentController,
	log *logrus.Logger,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(log))

	origins := parseCorsOrigins(corsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/summary", rc.GetSummary)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("", rc.CreateRoom)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)

			// must stay ahead of /:id
			bookings.POST("/review", bc.ReviewBookingForm)

			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.POST("/:id/repayments", pc.CreateRepayment)
		}

		api.DELETE("/payments/:id", pc.DeletePayment)
		api.GET("/revenue", pc.GetRevenue)
	}

	return r
}

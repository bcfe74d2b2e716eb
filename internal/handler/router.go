package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courtdesk/internal/domain/identity"
	"courtdesk/internal/handler/api"
	"courtdesk/internal/handler/middleware"
	"courtdesk/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	reservationHandler *api.ReservationHandler,
	calendarHandler *api.CalendarHandler,
	checkoutHandler *api.CheckoutHandler,
	cashboxHandler *api.CashboxHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, reservationHandler, calendarHandler, checkoutHandler, cashboxHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	reservationHandler *api.ReservationHandler,
	calendarHandler *api.CalendarHandler,
	checkoutHandler *api.CheckoutHandler,
	cashboxHandler *api.CashboxHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodGet, Path: "", Handler: reservationHandler.ListReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodPost, Path: "/:id/payments", Handler: reservationHandler.ApplyPayment},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.CancelReservation},
				{Method: http.MethodGet, Path: "/:id/cashbox", Handler: cashboxHandler.ByReservation},
			})
		}

		calendar := apiGroup.Group("/calendar")
		{
			addRoutes(calendar, []route{
				{Method: http.MethodGet, Path: "/day", Handler: calendarHandler.Day},
				{Method: http.MethodGet, Path: "/week", Handler: calendarHandler.Week},
				{Method: http.MethodGet, Path: "/month", Handler: calendarHandler.Month},
				{Method: http.MethodPost, Path: "/merge", Handler: calendarHandler.MergeSlots},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/checkout", Handler: checkoutHandler.Checkout},
		})

		cashbox := apiGroup.Group("/cashbox")
		cashbox.Use(authMiddleware.RequirePermission(identity.PermManageCashbox))
		{
			addRoutes(cashbox, []route{
				{Method: http.MethodGet, Path: "/activity", Handler: cashboxHandler.Activity},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}

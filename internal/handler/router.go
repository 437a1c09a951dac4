package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"escrow-market/internal/domain/trader"
	"escrow-market/internal/handler/api"
	"escrow-market/internal/handler/middleware"
	"escrow-market/internal/pkg/config"
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
	registry *prometheus.Registry,
	authHandler *api.AuthHandler,
	marketHandler *api.MarketHandler,
	provisionHandler *api.ProvisionHandler,
	eventsHandler *api.EventsHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, registry, authHandler, marketHandler, provisionHandler, eventsHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.RateLimitMiddleware(cfg.RateLimit))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	registry *prometheus.Registry,
	authHandler *api.AuthHandler,
	marketHandler *api.MarketHandler,
	provisionHandler *api.ProvisionHandler,
	eventsHandler *api.EventsHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		market := apiGroup.Group("/market")
		{
			// Read side is open; offers and counters are public state.
			addRoutes(market, []route{
				{Method: http.MethodGet, Path: "/sell-offers/:id", Handler: marketHandler.GetSellOffer},
				{Method: http.MethodGet, Path: "/buy-offers/:id", Handler: marketHandler.GetBuyOffer},
				{Method: http.MethodGet, Path: "/counters", Handler: marketHandler.GetCounters},
				{Method: http.MethodGet, Path: "/events", Handler: eventsHandler.ListEvents},
				{Method: http.MethodGet, Path: "/events/ws", Handler: eventsHandler.StreamEvents},
			})

			trading := market.Group("")
			trading.Use(authMiddleware.RequireAuth())
			addRoutes(trading, []route{
				{Method: http.MethodPost, Path: "/sell-offers", Handler: marketHandler.CreateSellOffer},
				{Method: http.MethodPost, Path: "/sell-offers/:id/accept", Handler: marketHandler.AcceptSellOffer},
				{Method: http.MethodPost, Path: "/sell-offers/:id/cancel", Handler: marketHandler.CancelSellOffer},
				{Method: http.MethodPost, Path: "/buy-offers", Handler: marketHandler.CreateBuyOffer},
				{Method: http.MethodPost, Path: "/buy-offers/:id/accept", Handler: marketHandler.AcceptBuyOffer},
				{Method: http.MethodPost, Path: "/buy-offers/:id/cancel", Handler: marketHandler.CancelBuyOffer},
			})
		}

		registryGroup := apiGroup.Group("/registry")
		registryGroup.Use(authMiddleware.RequireAuth())
		{
			addRoutes(registryGroup, []route{
				{Method: http.MethodPost, Path: "/assets", Handler: provisionHandler.MintAsset,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(trader.RoleAdmin)}},
				{Method: http.MethodPost, Path: "/approvals", Handler: provisionHandler.ApproveEngine},
			})
		}

		ledgerGroup := apiGroup.Group("/ledger")
		ledgerGroup.Use(authMiddleware.RequireAuth())
		{
			addRoutes(ledgerGroup, []route{
				{Method: http.MethodPost, Path: "/deposits", Handler: provisionHandler.Deposit,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(trader.RoleAdmin)}},
				{Method: http.MethodGet, Path: "/balance", Handler: provisionHandler.Balance},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
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

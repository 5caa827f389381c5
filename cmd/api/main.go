package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/intermediaal/e-table-reservation/internal/config"
	"github.com/intermediaal/e-table-reservation/internal/logging"
	"github.com/intermediaal/e-table-reservation/internal/middleware"
	"github.com/intermediaal/e-table-reservation/internal/modules/booking"
	"github.com/intermediaal/e-table-reservation/internal/modules/reservation"
	"github.com/intermediaal/e-table-reservation/internal/pkg/token"
	"github.com/intermediaal/e-table-reservation/internal/session"
	"github.com/intermediaal/e-table-reservation/internal/upstream"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	up := upstream.New(cfg.UpstreamBaseURL, upstream.WithLogger(logger))

	var store session.Store
	if cfg.RedisAddr != "" {
		store, err = session.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal("redis session store", zap.Error(err))
		}
		logger.Info("using redis session store", zap.String("addr", cfg.RedisAddr))
	} else {
		store = session.NewMemory()
		logger.Info("using in-memory session store")
	}

	tokens := token.New(cfg.SessionSecret, cfg.SessionTTL)

	bookingService := booking.NewService(up, store, tokens, cfg.SessionTTL, logger)
	bookingHandler := booking.NewHandler(bookingService, tokens)

	reservationService := reservation.NewService(up, cfg.DefaultSlug, logger)
	reservationHandler := reservation.NewHandler(reservationService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1/reservation")
	{
		bookingHandler.RegisterRoutes(v1)
		reservationHandler.RegisterRoutes(v1)
	}

	// Unknown paths land on the default business's booking flow, matching
	// the original front-end's catch-all route.
	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/api/v1/reservation/business/"+cfg.DefaultSlug+"/sessions")
	})

	logger.Info("listening",
		zap.String("addr", cfg.ListenAddr),
		zap.String("upstream", cfg.UpstreamBaseURL),
	)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

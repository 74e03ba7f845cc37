package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bikerental/internal/config"
	"bikerental/internal/database"
	"bikerental/internal/middleware"
	"bikerental/internal/modules/auth"
	"bikerental/internal/modules/catalog"
	"bikerental/internal/modules/pricing"
	"bikerental/internal/modules/recommend"
	"bikerental/internal/modules/rental"
	jwtsvc "bikerental/internal/pkg/jwt"
	"bikerental/internal/repository"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	bikeRepo := repository.NewBikeRepository(db)
	rentalRepo := repository.NewRentalRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(bikeRepo, rentalRepo, log)
	catalogHandler := catalog.NewHandler(catalogService)

	rentalService := rental.NewService(rentalRepo, bikeRepo, log)
	rentalHandler := rental.NewHandler(rentalService)

	recommendService := recommend.NewService(rentalRepo)
	recommendHandler := recommend.NewHandler(recommendService)

	pricingHandler := pricing.NewHandler(bikeRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		// public
		authHandler.RegisterRoutes(api)
		catalogHandler.RegisterPublicRoutes(api)

		// protected
		protected := api.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			catalogHandler.RegisterAdminRoutes(protected)
			rentalHandler.RegisterRoutes(protected)
			recommendHandler.RegisterRoutes(protected)
			pricingHandler.RegisterRoutes(protected)
		}
	}

	log.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

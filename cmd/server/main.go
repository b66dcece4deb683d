package main

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/mealora/food-ordering/internal/config"
	"github.com/mealora/food-ordering/internal/database"
	"github.com/mealora/food-ordering/internal/handler"
	"github.com/mealora/food-ordering/internal/middleware"
	"github.com/mealora/food-ordering/internal/queue"
	"github.com/mealora/food-ordering/internal/repository"
	"github.com/mealora/food-ordering/internal/router"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("migrations failed")
	}

	// Redis is optional: when unreachable the cache and rate limiter
	// degrade to pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		logrus.Warn("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	profiles := repository.NewProfileRepo(db)
	tokens := repository.NewTokenRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	menu := repository.NewMenuRepo(db)
	orders := repository.NewOrderRepo(db)

	authH := handler.NewAuthHandler(cfg, db, users, roles, profiles, tokens)
	publicH := handler.NewPublicHandler(restaurants, menu)
	customerH := handler.NewCustomerHandler(db, restaurants, menu, orders, cfg.AMQPURL)
	ownerH := handler.NewOwnerHandler(restaurants, menu, orders)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, middleware.NewResponseCache(config.LoadCacheConfig(), rdb))
	router.RegisterCustomer(e, customerH, cfg.JWTSecret)
	router.RegisterOwner(e, ownerH, cfg.JWTSecret)

	if cfg.AMQPURL != "" {
		go func() {
			if err := queue.StartOrderConsumer(cfg.AMQPURL); err != nil {
				logrus.WithError(err).Error("order consumer stopped")
			}
		}()
	}

	addr := ":" + cfg.Port
	logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("listening")
	if err := e.Start(addr); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}

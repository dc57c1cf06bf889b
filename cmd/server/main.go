package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Preethi-Heba/flight-booking-app/internal/config"
	"github.com/Preethi-Heba/flight-booking-app/internal/database"
	"github.com/Preethi-Heba/flight-booking-app/internal/handler"
	"github.com/Preethi-Heba/flight-booking-app/internal/middleware"
	"github.com/Preethi-Heba/flight-booking-app/internal/queue"
	"github.com/Preethi-Heba/flight-booking-app/internal/repository"
	"github.com/Preethi-Heba/flight-booking-app/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.SeedFlights(ctx, db); err != nil {
		log.Fatalf("seed flights: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	flights := repository.NewFlightRepo(db)
	bookings := repository.NewBookingRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	flightHandler := handler.NewFlightHandler(flights)
	bookingHandler := handler.NewBookingHandler(bookings, flights)

	// Redis is optional: with no client both middlewares are no-ops.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAPI(e, flightHandler, bookingHandler, cfg.JWTSecret,
		middleware.NewResponseCache(config.LoadCacheConfig(), rdb))

	// Background consumer mirrors confirmed bookings into logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

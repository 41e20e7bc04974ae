package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/yschan/shop-backend/internal/config"
	"github.com/yschan/shop-backend/internal/es"
	"github.com/yschan/shop-backend/internal/handlers"
	"github.com/yschan/shop-backend/internal/handlers/cart"
	"github.com/yschan/shop-backend/internal/logging"
	authgate "github.com/yschan/shop-backend/internal/middleware/auth"
	"github.com/yschan/shop-backend/internal/mykafka"
	httpserver "github.com/yschan/shop-backend/internal/transport/http"
	"github.com/yschan/shop-backend/internal/upload"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
	} else {
		logger.Warn("KAFKA_ADDRESS not set, domain events disabled")
	}

	searchHandler := &handlers.SearchHandler{Index: "product"}
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		searchHandler.ES = esClient
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	var store upload.Storage
	if configuration.FTP == "true" {
		store = &upload.FTPStorage{
			Host:     configuration.FTP_HOST,
			User:     configuration.FTP_USER,
			Password: configuration.FTP_PASS,
		}
	} else {
		store = &upload.DiskStorage{Dir: configuration.UPLOAD_DIR}
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	deps := httpserver.Deps{
		DB:             db,
		AuthGate:       &authgate.Gate{DB: db, JWTSecret: jwtSecret},
		UploadGate:     &upload.Gate{Store: store},
		UserHandler:    &handlers.UserHandler{DB: db, JWTSecret: jwtSecret, Producer: prod},
		ProductHandler: &handlers.ProductHandler{DB: db, Producer: prod},
		HomeHandler:    &handlers.HomeHandler{DB: db},
		CartHandler:    &cart.CartHandler{DB: db, Producer: prod},
		SearchHandler:  searchHandler,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}

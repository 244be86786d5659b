package app

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"auction-management-api/internal/cache"
	"auction-management-api/internal/config"
	"auction-management-api/internal/controller"
	"auction-management-api/internal/event"
	"auction-management-api/internal/repo"
	"auction-management-api/internal/service"
	"auction-management-api/pkg/http_server"
	"auction-management-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
)

func runMigrations(postgresDB *postgres.Postgres, databaseName string) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		log.Fatal(err)
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		log.Fatal(err)
	}

	if err := migrations.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("no change made by migration scripts")
		} else {
			log.Fatal(err)
		}
	}
}

func Run() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal("Error occurred while reading configuration: ", err)
	}

	log.Println("Connecting database...")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		log.Fatal("Error occurred while connecting to db: ", err)
	}
	defer postgresDB.Close()

	log.Println("Running migrations...")
	runMigrations(postgresDB, cfg.PostgresDB)

	highBid := cache.NewHighBid(cfg.RedisAddr)
	if highBid != nil {
		log.Println("High-bid cache enabled at " + cfg.RedisAddr)
		defer highBid.Close()
	}

	events, err := event.NewPublisher(cfg.NatsURL)
	if err != nil {
		log.Fatal("Error occurred while connecting to nats: ", err)
	}
	if events != nil {
		log.Println("Event publishing enabled at " + cfg.NatsURL)
		defer events.Close()
	}

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(repositories, highBid, events)
	handler := echo.New()

	log.Println("Setup routes...")
	controller.SetupRoutesHandlers(handler, services)

	log.Println("Starting server...")
	httpServer := http_server.New(handler, cfg.ServerAddress)

	log.Println("Ready to process requests...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Println("Got signal: " + s.String())
	case err = <-httpServer.Notify():
		log.Fatal("Notify error: ", err)
	}

	log.Println("Shutting down...")
	err = httpServer.Shutdown()
	if err != nil {
		log.Fatal("Shutdown error: ", err)
	} else {
		log.Println("Successful shutdown")
	}
}

package main

import (
	"net/http"

	"shanenterprises/config"
	"shanenterprises/db"
	"shanenterprises/db/mongo"
	"shanenterprises/db/postgres"
	"shanenterprises/handlers"
	"shanenterprises/repository"
	"shanenterprises/routes"
)

func main() {
	logger := config.GetLogger()

	// Load config from .env or environment
	cfg := config.LoadConfig()

	// Run migrations (for Postgres)
	db.RunMigrations()

	// Billing data always lives in Postgres; the section synchronizer
	// needs cross-table transactions.
	pg := postgres.NewPostgresDB(cfg.PostgresURL)
	if err := pg.Connect(); err != nil {
		logger.Fatalf("postgres connect failed: %v", err)
	}
	defer pg.Disconnect()

	destinationRepo := repository.NewPostgresDestinationRepo(pg.Conn)
	placeRepo := repository.NewPostgresPlaceRepo(pg.Conn)
	dealerRepo := repository.NewPostgresDealerRepo(pg.Conn)
	rateRangeRepo := repository.NewPostgresRateRangeRepo(pg.Conn)
	entryRepo := repository.NewPostgresEntryRepo(pg.Conn)
	billRepo := repository.NewPostgresServiceBillRepo(pg.Conn)

	// Users and the company profile can live in either store.
	var userRepo repository.UserRepository
	var profileRepo repository.ProfileRepository

	switch db.DBType(cfg.AuthDBType) {
	case db.Postgres:
		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		profileRepo = repository.NewPostgresProfileRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			logger.Fatalf("mongo connect failed: %v", err)
		}
		defer mg.Disconnect()

		userRepo = repository.NewMongoUserRepo(mg.Client)
		profileRepo = repository.NewMongoProfileRepo(mg.Client)

	default:
		logger.Fatalf("AUTH_DB_TYPE %q not supported", cfg.AuthDBType)
	}

	// Handlers
	userHandler := &handlers.UserHandler{Repo: userRepo}
	destinationHandler := &handlers.DestinationHandler{Repo: destinationRepo, PlaceRepo: placeRepo}
	dealerHandler := &handlers.DealerHandler{Repo: dealerRepo}
	rateRangeHandler := &handlers.RateRangeHandler{Repo: rateRangeRepo}
	entryHandler := &handlers.EntryHandler{Repo: entryRepo, RateRepo: rateRangeRepo, DealerRepo: dealerRepo}
	billHandler := handlers.NewServiceBillHandler(billRepo)
	profileHandler := &handlers.ProfileHandler{Repo: profileRepo}

	// PDF handler with combined repository
	pdfRepo := repository.NewPDFRepository(billRepo, profileRepo)
	pdfHandler := &handlers.PDFHandler{Repo: pdfRepo, SavePath: cfg.PDFSavePath}

	routes.SetupRoutes(
		userHandler,
		destinationHandler,
		dealerHandler,
		rateRangeHandler,
		entryHandler,
		billHandler,
		profileHandler,
		pdfHandler,
	)

	logger.Infof("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}

package main

import (
	"io"
	"log"
	"os"

	"github.com/globetrotter-app/globetrotter-api/internal/config"
	"github.com/globetrotter-app/globetrotter-api/internal/logging"
	"github.com/globetrotter-app/globetrotter-api/internal/media"
	miniostore "github.com/globetrotter-app/globetrotter-api/internal/repository/minio"
	"github.com/globetrotter-app/globetrotter-api/internal/repository/postgres"
	"github.com/globetrotter-app/globetrotter-api/internal/service"
	transport "github.com/globetrotter-app/globetrotter-api/internal/transport/http"
	"github.com/globetrotter-app/globetrotter-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	minioClient, err := miniostore.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatalf("connect to minio: %v", err)
	}
	storage := miniostore.NewStorage(minioClient, cfg.MinIOPublicURL, cfg.MinIOUseSSL)

	users := postgres.NewUserRepo(db)
	sessions := postgres.NewSessionRepo(db)
	trips := postgres.NewTripRepo(db)
	stops := postgres.NewStopRepo(db)
	cities := postgres.NewCityRepo(db)
	activities := postgres.NewActivityRepo(db)
	expenses := postgres.NewExpenseRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	processor := media.NewFFMPEGProcessor(cfg.FFMPEGPath, cfg.ProfileImageMaxDimension)

	authService := service.NewAuthService(users, sessions, jwtManager, cfg.GoogleAudience)
	tripService := service.NewTripService(trips, stops, cities, activities, expenses)
	userService := service.NewUserService(users, storage, processor, service.UserServiceConfig{
		ProfileBucket:     cfg.MinIOBucketProfile,
		ImageMaxBytes:     cfg.ProfileImageMaxBytes,
		ImageMaxDimension: cfg.ProfileImageMaxDimension,
	})

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterAuth(e, authService)
	transport.RegisterTrips(e, authService, tripService)
	transport.RegisterUsers(e, authService, userService)
	transport.RegisterPublic(e, tripService)
	transport.RegisterAdmin(e, authService, userService)
	transport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

package app

import (
	"harborcrm/internal/auth"
	"harborcrm/internal/importer"
	"harborcrm/internal/repo"
	"harborcrm/internal/services"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Services holds all application services
type Services struct {
	DB             *gorm.DB
	Stores         *repo.Stores
	UserRepo       *repo.UserRepository
	AuthService    *auth.Service
	StorageService *services.StorageService
	SessionService *services.ImportSessionService
	BatchProcessor *importer.BatchProcessor
}

// NewServices creates a new services container
func NewServices(db *gorm.DB) *Services {
	stores := repo.NewStores(db)
	userRepo := repo.NewUserRepository(db)

	authService := auth.NewService(userRepo)

	// S3 archiving is optional; imports work without it
	storageService, err := services.NewStorageService()
	if err != nil {
		log.Warn().Err(err).Msg("S3 storage not configured, import files will not be archived")
		storageService = nil
	}

	var archive services.ImportArchive
	if storageService != nil {
		archive = storageService
	}

	sessionService := services.NewImportSessionService(stores.Sessions(), archive)
	batchProcessor := importer.NewBatchProcessor(stores)

	return &Services{
		DB:             db,
		Stores:         stores,
		UserRepo:       userRepo,
		AuthService:    authService,
		StorageService: storageService,
		SessionService: sessionService,
		BatchProcessor: batchProcessor,
	}
}

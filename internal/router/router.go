package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/quillhub/quill/backend/internal/cache"
	"github.com/quillhub/quill/backend/internal/handlers"
	"github.com/quillhub/quill/backend/internal/middleware"
	"github.com/quillhub/quill/backend/internal/models"
	"github.com/quillhub/quill/backend/internal/repositories"
	"github.com/quillhub/quill/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects
// dependencies. mongoDB and redisClient may be nil; image uploads and
// the follow-set cache degrade gracefully without them.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mongoDB *mongo.Database, redisClient *redis.Client, cfg *config.Config) {
	if err := pgdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Operational endpoints - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	groupRepo := repositories.NewPostgresGroupRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	var mediaRepo repositories.MediaRepository
	if mongoDB != nil {
		mediaRepo = repositories.NewMongoMediaRepository(mongoDB)
	}
	followCache := cache.NewFollowSetCache(redisClient)

	requireAuth := middleware.RequireAuth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)

	// Auth routes
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	// Media route
	mediaHandler := handlers.NewMediaHandler(mediaRepo)
	mediaHandler.RegisterMediaRoutes(e)
	log.Println("Media routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(postRepo, followRepo, followCache, cfg.PageSize)
	feedHandler.RegisterFeedRoutes(e, optionalAuth, requireAuth)
	log.Println("Feed routes configured.")

	// Group routes
	groupHandler := handlers.NewGroupHandler(groupRepo, postRepo, cfg.PageSize)
	groupHandler.RegisterGroupRoutes(e, requireAuth)
	log.Println("Group routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, groupRepo, commentRepo, mediaRepo)
	postHandler.RegisterPostRoutes(e, optionalAuth, requireAuth)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(e, requireAuth)
	log.Println("Comment routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, followCache)
	followHandler.RegisterFollowRoutes(e, requireAuth)
	log.Println("Follow routes configured.")

	// Profile routes last: /:username/ is the widest pattern
	profileHandler := handlers.NewProfileHandler(userRepo, postRepo, followRepo, cfg.PageSize)
	profileHandler.RegisterProfileRoutes(e, optionalAuth)
	log.Println("Profile routes configured.")

	log.Println("All routes configured.")
}

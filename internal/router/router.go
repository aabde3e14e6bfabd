package router

import (
	"log"
	"net/http"

	"github.com/dsavelev/postline/internal/cache"
	"github.com/dsavelev/postline/internal/handlers"
	"github.com/dsavelev/postline/internal/middleware"
	"github.com/dsavelev/postline/internal/models"
	"github.com/dsavelev/postline/internal/repositories"
	"github.com/dsavelev/postline/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CSRFWithConfig(eMiddleware.CSRFConfig{
		TokenLookup: "form:csrf_token",
		CookiePath:  "/",
		ErrorHandler: func(err error, c echo.Context) error {
			return echo.NewHTTPError(http.StatusForbidden, "CSRF verification failed")
		},
	}))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	groupRepo := repositories.NewPostgresGroupRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	imageRepo := repositories.NewMongoImageRepository(mgClient.Database(cfg.MongoDatabase))

	// Session loading applies to every route; gating is per-route.
	e.Use(middleware.LoadUser(userRepo, cfg.JWTSecret))

	// Rendered-page cache for the index listing.
	pageCache := cache.New(cache.IndexTTL)

	// Static and health pages
	staticHandler := handlers.NewStaticHandler()
	staticHandler.RegisterStaticRoutes(e)
	log.Println("Static routes configured.")

	// Auth pages
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(e.Group("/auth"))
	log.Println("Auth routes configured.")

	// Listing pages
	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, groupRepo, followRepo)
	feedHandler.RegisterFeedRoutes(e, pageCache)
	log.Println("Feed routes configured.")

	// Post detail, create and edit
	postHandler := handlers.NewPostHandler(postRepo, groupRepo, commentRepo, imageRepo)
	postHandler.RegisterPostRoutes(e)
	log.Println("Post routes configured.")

	// Comment submission
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(e)
	log.Println("Comment routes configured.")

	// Follow/unfollow toggles
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(e)
	log.Println("Follow routes configured.")

	// Uploaded images
	mediaHandler := handlers.NewMediaHandler(imageRepo)
	mediaHandler.RegisterMediaRoutes(e)
	log.Println("Media routes configured.")

	// Staff-only admin console
	adminHandler := handlers.NewAdminHandler(postRepo, groupRepo, userRepo, commentRepo, followRepo)
	adminHandler.RegisterAdminRoutes(e.Group("/admin", middleware.RequireStaff))
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}

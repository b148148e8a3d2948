package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorhub_backend/internal/config"
	"tutorhub_backend/internal/controller"
	"tutorhub_backend/internal/repository"
	"tutorhub_backend/internal/service"
	"tutorhub_backend/pkg/configwatcher"
	"tutorhub_backend/pkg/database"
	"tutorhub_backend/pkg/logger"
	"tutorhub_backend/pkg/monitoring"
	"tutorhub_backend/pkg/security"
	"tutorhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user          *repository.UserRepository
	subject       *repository.SubjectRepository
	tutorSubject  *repository.TutorSubjectRepository
	lessonRequest *repository.LessonRequestRepository
	tokens        *repository.RefreshTokenStore
}

type services struct {
	auth          *service.AuthService
	user          *service.UserService
	subject       *service.SubjectService
	tutor         *service.TutorService
	lessonRequest *service.LessonRequestService
	storage       *service.StorageService
}

type controllers struct {
	auth          *controller.AuthController
	user          *controller.UserController
	subject       *controller.SubjectController
	tutor         *controller.TutorController
	lessonRequest *controller.LessonRequestController
	health        *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		subject:       repository.NewSubjectRepository(db),
		tutorSubject:  repository.NewTutorSubjectRepository(db),
		lessonRequest: repository.NewLessonRequestRepository(db),
		tokens:        repository.NewRefreshTokenStore(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	return &services{
		auth:          service.NewAuthService(repos.user, repos.tokens, cfg),
		user:          service.NewUserService(repos.user),
		subject:       service.NewSubjectService(repos.subject),
		tutor:         service.NewTutorService(repos.user, repos.subject, repos.tutorSubject),
		lessonRequest: service.NewLessonRequestService(repos.lessonRequest, repos.user, repos.subject),
		storage:       storage,
	}, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth, s.user),
		user:          controller.NewUserController(s.auth, s.user, s.storage),
		subject:       controller.NewSubjectController(s.subject),
		tutor:         controller.NewTutorController(s.auth, s.tutor),
		lessonRequest: controller.NewLessonRequestController(s.auth, s.lessonRequest),
		health:        controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		log.Println("Database migration completed")
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	app.Redis = rdb

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("tutorhub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "" || cfg.Storage.Type == "local" {
		if cfg.Storage.LocalPath != "" {
			if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
				os.MkdirAll(cfg.Storage.LocalPath, 0755)
			}
			router.Static("/uploads", cfg.Storage.LocalPath)
		}
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config reloaded")
		app.Config = newCfg
	})

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	}
	return gin.DebugMode
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

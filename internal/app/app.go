package app

import (
	"bkt_predictor/internal/config"
	"bkt_predictor/internal/controller"
	"bkt_predictor/internal/repository"
	"bkt_predictor/internal/service"
	"bkt_predictor/pkg/configwatcher"
	"bkt_predictor/pkg/database"
	"bkt_predictor/pkg/logger"
	"bkt_predictor/pkg/monitoring"
	"bkt_predictor/pkg/security"
	"bkt_predictor/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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

	services *services
}

type repositories struct {
	prediction  *repository.PredictionLogRepository
	observation *repository.ObservationLogRepository
}

type services struct {
	params  *service.ParamsService
	bkt     *service.BKTService
	mastery *service.MasteryService
	auth    *service.AuthService
}

type controllers struct {
	bkt    *controller.BKTController
	params *controller.ParamsController
	auth   *controller.AuthController
	logs   *controller.LogController
	health *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	if db == nil {
		return &repositories{}
	}
	return &repositories{
		prediction:  repository.NewPredictionLogRepository(db),
		observation: repository.NewObservationLogRepository(db),
	}
}

func (a *App) initServices(cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.params = service.NewParamsService(cfg)
	if err := s.params.Load(); err != nil {
		logger.Log.Fatal("Failed to load trained BKT params", zap.Error(err))
	}

	s.bkt = service.NewBKTService(s.params, cfg)
	s.mastery = service.NewMasteryService(rdb)
	s.auth = service.NewAuthService(cfg)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		bkt:    controller.NewBKTController(s.bkt, s.mastery, repos.prediction, repos.observation),
		params: controller.NewParamsController(s.params),
		auth:   controller.NewAuthController(s.auth),
		logs:   controller.NewLogController(repos.prediction, repos.observation),
		health: controller.NewHealthController(db, s.params),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	// Pick up republished trained params without a restart.
	if path := s.params.FilePath(); path != "" {
		go configwatcher.WatchFile(path, func() {
			if err := s.params.Reload(); err != nil {
				logger.Log.Error("trained params reload failed", zap.Error(err))
			}
		})
	}
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	var db *gorm.DB
	if cfg.Database.Enabled {
		var err error
		db, err = database.InitDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		}
	} else {
		logger.Log.Info("Database disabled, request logs will not be persisted")
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		var err error
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	} else {
		logger.Log.Info("Redis disabled, theme mastery cache is off")
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("bkt-predictor", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	app.startBackgroundTasks(services)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
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

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"quizforge/internal/adapter"
	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/database"
	"quizforge/internal/extractor"
	"quizforge/internal/generator"
	"quizforge/internal/handler"
	"quizforge/internal/logger"
	"quizforge/internal/middleware"
	"quizforge/internal/repository"
	"quizforge/internal/service"
	"quizforge/internal/validation"
)

// requestLogger logs every HTTP request with method, path, status and latency.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Database
	db, err := database.NewSQLXPostgresDB(cfg.Database.DSN)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// LLM
	llmClient, err := generator.NewLLMClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	quizGenerator := generator.NewQuizGenerator(llmClient)
	titleTagGenerator := generator.NewTitleTagGenerator(llmClient)

	// Extractors
	urlExtractor := extractor.NewURLExtractor(cfg.Extractor.FetchTimeout)
	fileExtractor := extractor.NewFileExtractor(cfg.Upload.MaxFileSize)

	// Repositories
	quizRecordRepository := repository.NewSQLXQuizRecordRepository(db)
	favoriteRepository := repository.NewSQLXFavoriteRepository(db)
	wrongAnswerRepository := repository.NewSQLXWrongAnswerRepository(db)
	inquiryRepository := repository.NewSQLXInquiryRepository(db)
	userRepository := repository.NewSQLXUserRepository(db)

	// Services
	quizService := service.NewQuizService(
		validation.NewContentValidator(),
		urlExtractor,
		fileExtractor,
		quizGenerator,
		titleTagGenerator,
		quizRecordRepository,
		cacheAdapter,
		cfg.Extractor.CacheTTL,
	)
	libraryService := service.NewLibraryService(quizRecordRepository, favoriteRepository, wrongAnswerRepository)
	inquiryService := service.NewInquiryService(inquiryRepository)
	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Handlers
	quizHandler := handler.NewQuizHandler(quizService)
	libraryHandler := handler.NewLibraryHandler(libraryService)
	inquiryHandler := handler.NewInquiryHandler(inquiryService)
	authHandler := handler.NewAuthHandler(authService, cfg)
	healthHandler := handler.NewHealthHandler(db, cacheAdapter)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 1<<20,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/health", healthHandler.Check)

	apiGroup := app.Group("/api")

	// Generation routes accept anonymous requests; a valid token enables saving.
	apiGroup.Post("/generate-quiz", middleware.OptionalAuth(authService), quizHandler.GenerateQuiz)
	apiGroup.Post("/analyze-url", middleware.OptionalAuth(authService), quizHandler.AnalyzeURL)
	apiGroup.Post("/upload-document", middleware.OptionalAuth(authService), quizHandler.UploadDocument)

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Get("/google/login", authHandler.GoogleLogin)
	authGroup.Get("/google/callback", authHandler.GoogleCallback)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Library routes (all protected)
	historyGroup := apiGroup.Group("/quiz-history", middleware.Protected(authService))
	historyGroup.Get("/", libraryHandler.GetHistory)
	historyGroup.Get("/:id", libraryHandler.GetRecord)
	historyGroup.Delete("/:id", libraryHandler.DeleteRecord)

	favoritesGroup := apiGroup.Group("/favorites", middleware.Protected(authService))
	favoritesGroup.Get("/", libraryHandler.ListFavorites)
	favoritesGroup.Post("/", libraryHandler.AddFavorite)
	favoritesGroup.Delete("/", libraryHandler.RemoveFavorite)

	wrongAnswersGroup := apiGroup.Group("/wrong-answers", middleware.Protected(authService))
	wrongAnswersGroup.Get("/", libraryHandler.ListWrongAnswers)
	wrongAnswersGroup.Post("/", libraryHandler.SaveWrongAnswers)

	// Inquiries
	apiGroup.Post("/inquiries", inquiryHandler.CreateInquiry)
	apiGroup.Get("/inquiries", inquiryHandler.ListInquiries)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

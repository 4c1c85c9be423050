package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Edutrack/config"
	"github.com/lshigami/Edutrack/database"
	_ "github.com/lshigami/Edutrack/docs"
	adminctrl "github.com/lshigami/Edutrack/internal/controller/admin"
	userctrl "github.com/lshigami/Edutrack/internal/controller/user"
	"github.com/lshigami/Edutrack/internal/logger"
	"github.com/lshigami/Edutrack/internal/middleware"
	"github.com/lshigami/Edutrack/internal/repository"
	"github.com/lshigami/Edutrack/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Edutrack API
// @version 1.0
// @description Multi-tenant educational backend: subjects and topics, student-teacher chats, quizzes and account administration.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			database.NewRedis,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewTeacherRepository,
			repository.NewChatRepository,
			repository.NewSubjectRepository,
			repository.NewQuizRepository,
			repository.NewQuizTypeRepository,
			repository.NewQuizAnswerRepository,
			repository.NewQuestionRepository,
			repository.NewAnswerRepository,
		),

		fx.Provide(
			service.NewSubscriptionNotifier,
			service.NewAccountService,
			service.NewTeacherService,
			service.NewChatService,
			service.NewSubjectService,
			service.NewQuizService,
		),

		fx.Provide(
			middleware.NewAuth,
			adminctrl.NewAccountController,
			adminctrl.NewTeacherController,
			userctrl.NewAuthController,
			userctrl.NewSubjectController,
			userctrl.NewChatController,
			userctrl.NewQuizController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(CloseRedisOnStop),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID, _ := param.Keys[middleware.RequestIDKey].(string)
		log.Info().
			Str("request_id", requestID).
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	allowAll := len(cfg.Server.CORSOrigins) == 0 || (len(cfg.Server.CORSOrigins) == 1 && cfg.Server.CORSOrigins[0] == "*")
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	auth *middleware.Auth,
	accountCtrl *adminctrl.AccountController,
	teacherCtrl *adminctrl.TeacherController,
	authCtrl *userctrl.AuthController,
	subjectCtrl *userctrl.SubjectController,
	chatCtrl *userctrl.ChatController,
	quizCtrl *userctrl.QuizController,
) {
	api := router.Group("/api/v1")

	// Registration works anonymously; a superuser token unlocks is_superuser.
	authCtrl.RegisterRoutes(api.Group("", auth.Optional()))

	protected := api.Group("", auth.Required())
	accountCtrl.RegisterRoutes(protected)
	teacherCtrl.RegisterRoutes(protected)
	subjectCtrl.RegisterRoutes(protected)
	chatCtrl.RegisterRoutes(protected)
	quizCtrl.RegisterRoutes(protected)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Edutrack API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	return nil
}

func CloseRedisOnStop(lc fx.Lifecycle, client *redis.Client) {
	if client == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
}

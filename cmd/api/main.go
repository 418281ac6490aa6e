package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Horarios-api/internal/application/approval"
	"github.com/jhoicas/Horarios-api/internal/application/auth"
	"github.com/jhoicas/Horarios-api/internal/application/authz"
	"github.com/jhoicas/Horarios-api/internal/application/ports"
	"github.com/jhoicas/Horarios-api/internal/application/usecase"
	"github.com/jhoicas/Horarios-api/internal/domain/scheduling"
	"github.com/jhoicas/Horarios-api/internal/infrastructure/crypto"
	"github.com/jhoicas/Horarios-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Horarios-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Horarios-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Horarios-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Horarios-api/internal/interfaces/http"
	"github.com/jhoicas/Horarios-api/pkg/config"
	"github.com/jhoicas/Horarios-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	ctx := context.Background()
	checks := map[string]httpRouter.Pinger{}

	// Almacenamiento: PostgreSQL o memoria (desarrollo y demos).
	var (
		repos    ports.TxRepos
		txRunner ports.TxRunner
	)
	switch cfg.App.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		repos, txRunner = store.Repos(), store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.RunMigrations {
			if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		repos, txRunner = postgres.Repos(pool), postgres.NewTxRunner(pool)
		checks["postgres"] = httpRouter.PingFunc(pool.Ping)
	}

	// Caché de actores: opcional.
	var actorCache ports.ActorCache
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, infraredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		actorCache = infraredis.NewActorCache(rdb, cfg.Redis.TTL)
		checks["redis"] = httpRouter.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	zl := log.Zerolog()
	gate := authz.NewGate(zl)
	normalizer := scheduling.NewNormalizer(cfg.App.Location())
	allocator := usecase.NewRestaurantIDAllocator(usecase.RandomIDGenerator{}, cfg.App.RestaurantIDMaxAttempts, log.Component("restaurant_id"))
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Location())

	authUC := auth.NewAuthUseCase(auth.Deps{
		Users:       repos.Users,
		Restaurants: repos.Restaurants,
		Tx:          txRunner,
		Hasher:      crypto.NewBcryptHasher(cfg.Auth.BcryptCost),
		Cache:       actorCache,
		Allocator:   allocator,
		Gate:        gate,
		Log:         zl,
	}, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	restaurantUC := usecase.NewRestaurantUseCase(repos.Restaurants, repos.Users, allocator, gate, zl, nil)
	scheduleUC := usecase.NewScheduleUseCase(repos, pdfGenerator, gate, zl, nil)
	shiftUC := usecase.NewShiftUseCase(repos, normalizer, gate, zl, nil)
	availabilityUC := usecase.NewAvailabilityUseCase(repos.Availabilities, repos.Users, normalizer, gate, zl, nil)
	workflow := approval.NewWorkflow(txRunner, repos.Users, repos.Restaurants, actorCache, gate, zl, nil)
	userUC := usecase.NewUserUseCase(repos.Users, txRunner, actorCache, workflow, gate, zl, nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init`).
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Horarios API",
		}))
	} else {
		log.Debug().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		RestaurantUC:   restaurantUC,
		UserUC:         userUC,
		ScheduleUC:     scheduleUC,
		ShiftUC:        shiftUC,
		AvailabilityUC: availabilityUC,
		Approval:       workflow,
		Health:         httpRouter.NewHealthHandler(cfg.App.Name, checks),
		JWTSecret:      cfg.JWT.Secret,
		Log:            log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// bootstrap crea el super-admin inicial. No existe endpoint para hacerlo: el primer
// super-admin se siembra con este comando contra la base configurada.
//
// Uso: go run ./cmd/bootstrap <email> [nombre]
// La contraseña se lee de BOOTSTRAP_PASSWORD para no dejarla en el historial del shell.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Horarios-api/internal/application/auth"
	"github.com/jhoicas/Horarios-api/internal/infrastructure/crypto"
	"github.com/jhoicas/Horarios-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Horarios-api/pkg/config"
	"github.com/jhoicas/Horarios-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: bootstrap <email> [nombre]")
		os.Exit(2)
	}
	email := os.Args[1]
	name := "Super Admin"
	if len(os.Args) > 2 {
		name = os.Args[2]
	}
	password := os.Getenv("BOOTSTRAP_PASSWORD")
	if password == "" {
		fmt.Fprintln(os.Stderr, "BOOTSTRAP_PASSWORD es obligatorio")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.App.Storage != config.StoragePostgres {
		fmt.Fprintln(os.Stderr, "bootstrap requiere STORAGE_DRIVER=postgres")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "bootstrap"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	repos := postgres.Repos(pool)
	authUC := auth.NewAuthUseCase(auth.Deps{
		Users:       repos.Users,
		Restaurants: repos.Restaurants,
		Hasher:      crypto.NewBcryptHasher(cfg.Auth.BcryptCost),
		Log:         log.Zerolog(),
	}, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})

	user, created, err := authUC.BootstrapSuperAdmin(ctx, name, email, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear super-admin: %v\n", err)
		os.Exit(1)
	}
	if created {
		fmt.Printf("super-admin creado: %s (%s)\n", user.Email, user.ID)
		return
	}
	fmt.Printf("el super-admin %s ya existía (%s)\n", user.Email, user.ID)
}

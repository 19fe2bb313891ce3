package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fitcoach/backend/internal/auth"
	"github.com/fitcoach/backend/internal/config"
	"github.com/fitcoach/backend/internal/db"
	"github.com/fitcoach/backend/internal/store"
	"github.com/fitcoach/backend/pkg"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// admin_setup creates the first platform admin, after which admins are
// registered through the API.

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("env-file", ".env", "optional dotenv file with secrets")
	email := flag.String("email", "", "admin email")
	firstName := flag.String("first-name", "", "admin first name")
	lastName := flag.String("last-name", "", "admin last name")
	migrate := flag.Bool("migrate", false, "apply the db schema first")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Warnf("load env file %s: %s", *envFile, err)
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if strings.TrimSpace(*email) == "" || password == "" {
		log.Fatalln("-email flag and ADMIN_PASSWORD env var are required")
	}
	if len(password) < pkg.MinPasswordLength {
		log.Fatalf("ADMIN_PASSWORD must be at least %d characters", pkg.MinPasswordLength)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("POSTGRES_PASSWORD"),
		MaxConns:   2,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	repo := store.NewRepo(dbPool)
	if *migrate {
		if err := repo.Migrate(ctx); err != nil {
			log.Fatalf("migrate: %s", err)
		}
	}

	hash, err := pkg.HashPassword(password)
	if err != nil {
		log.Fatalf("hash password: %s", err)
	}

	admin, err := repo.CreateAdmin(ctx, auth.NewAdmin{
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: hash,
		FirstName:    optional(*firstName),
		LastName:     optional(*lastName),
	})
	if errors.Is(err, auth.ErrEmailExists) {
		log.Fatalf("admin with email %s already exists", *email)
	}
	if err != nil {
		log.Fatalf("create admin: %s", err)
	}

	fmt.Printf("admin %d created: %s\n", admin.ID, *admin.Email)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

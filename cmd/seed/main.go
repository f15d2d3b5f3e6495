package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/leadflowhq/leadflow-backend/internal/users"
	"github.com/leadflowhq/leadflow-backend/pkg/config"
	"github.com/leadflowhq/leadflow-backend/pkg/db"
	"github.com/leadflowhq/leadflow-backend/pkg/enums"
	"github.com/leadflowhq/leadflow-backend/pkg/logger"
	"github.com/leadflowhq/leadflow-backend/pkg/security"
)

// Seeds the initial admin account so a fresh deployment has a login.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	email := flag.String("email", "admin@example.com", "admin account email")
	password := flag.String("password", "admin123", "admin account password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithField(context.Background(), "email", *email)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := users.NewRepository(dbClient.DB())

	if _, err := repo.FindByEmail(ctx, *email); err == nil {
		logg.Info(ctx, "admin account already exists, nothing to do")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logg.Error(ctx, "failed to check for existing admin", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(*password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	created, err := repo.Create(ctx, users.CreateUserDTO{
		Email:        *email,
		PasswordHash: hash,
		Role:         enums.RoleAdmin,
	})
	if err != nil {
		logg.Error(ctx, "failed to create admin account", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "user_id", created.ID), "admin account created")
}

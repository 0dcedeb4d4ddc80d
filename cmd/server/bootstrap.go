package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"curator/internal/auth"
	"curator/internal/domain"
	"curator/internal/storage"
	"curator/pkg/platform/sentinel"
)

const bootstrapAdminUsername = "admin"

// bootstrapAdmin seeds the first administrator so a fresh database is usable.
// It runs below the auth service on purpose: there is no acting user yet, so
// the normal permission check and audit attribution cannot apply.
func bootstrapAdmin(ctx context.Context, users storage.UserStore) error {
	_, err := users.FindByUsername(ctx, bootstrapAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return fmt.Errorf("look up bootstrap admin: %w", err)
	}

	password := os.Getenv("CURATOR_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash bootstrap admin password: %w", err)
	}
	if _, err := users.Create(ctx, domain.User{
		Username:     bootstrapAdminUsername,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	}); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	return nil
}

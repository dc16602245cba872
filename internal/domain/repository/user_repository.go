package repository

import (
	"context"

	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
)

// UserRepository définit le port de persistance pour User (DIP).
type UserRepository interface {
	// FindByEmail renvoie (nil, nil) si aucun utilisateur ne correspond.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

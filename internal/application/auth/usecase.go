// Package auth cas d'usage d'authentification du dashboard. Pas
// d'inscription : les comptes sont provisionnés et les hashs bcrypt
// générés hors ligne.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"github.com/matrix-dsi/matrix-api/internal/application/dto"
	"github.com/matrix-dsi/matrix-api/internal/domain"
	"github.com/matrix-dsi/matrix-api/internal/domain/repository"
	"github.com/matrix-dsi/matrix-api/pkg/jwt"
)

// JWTConfig paramètres d'émission des jetons.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase cas d'usage d'authentification.
type UseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewUseCase construit le cas d'usage.
func NewUseCase(users repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{users: users, jwtCfg: jwtCfg}
}

// Login vérifie email/mot de passe et émet un JWT. ErrUserNotFound si
// l'email est inconnu, ErrUnauthorized si le mot de passe ne correspond
// pas, ErrForbidden si le compte est désactivé.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:       token,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}

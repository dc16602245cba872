package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"github.com/matrix-dsi/matrix-api/internal/application/auth"
	"github.com/matrix-dsi/matrix-api/internal/application/dto"
	"github.com/matrix-dsi/matrix-api/internal/domain"
	"github.com/matrix-dsi/matrix-api/internal/domain/entity"
	"github.com/matrix-dsi/matrix-api/pkg/jwt"
)

type memUsers struct {
	byEmail map[string]*entity.User
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.byEmail[email], nil
}

func fixtureUsers(t *testing.T) *memUsers {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("fleurs2024"), bcrypt.MinCost)
	require.NoError(t, err)
	return &memUsers{byEmail: map[string]*entity.User{
		"direction@matrix.fr": {
			ID:           "u-1",
			Email:        "direction@matrix.fr",
			PasswordHash: string(hash),
			DisplayName:  "Direction",
			Status:       "active",
			CreatedAt:    time.Now(),
		},
		"ancien@matrix.fr": {
			ID:           "u-2",
			Email:        "ancien@matrix.fr",
			PasswordHash: string(hash),
			Status:       "disabled",
		},
	}}
}

func testConfig() auth.JWTConfig {
	return auth.JWTConfig{Secret: "secret-de-test", ExpMinutes: 60, Issuer: "matrix-api"}
}

func TestLogin_Nominal(t *testing.T) {
	uc := auth.NewUseCase(fixtureUsers(t), testConfig())

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "direction@matrix.fr", Password: "fleurs2024"})
	require.NoError(t, err)
	assert.Equal(t, "direction@matrix.fr", out.Email)
	assert.Equal(t, "Direction", out.DisplayName)

	userID, email, err := jwt.Parse("secret-de-test", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "direction@matrix.fr", email)
}

func TestLogin_EmailInconnu(t *testing.T) {
	uc := auth.NewUseCase(fixtureUsers(t), testConfig())
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "inconnu@matrix.fr", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_MauvaisMotDePasse(t *testing.T) {
	uc := auth.NewUseCase(fixtureUsers(t), testConfig())
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "direction@matrix.fr", Password: "faux"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CompteDesactive(t *testing.T) {
	uc := auth.NewUseCase(fixtureUsers(t), testConfig())
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ancien@matrix.fr", Password: "fleurs2024"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

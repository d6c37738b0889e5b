package service_test

import (
	"context"
	"testing"

	"elysee/internal/config"
	"elysee/internal/dto"
	"elysee/internal/model"
	"elysee/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "secret-de-test",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DefaultRole:        model.RoleSecretaire,
	}
}

func seedUser(t *testing.T, repo *fakeUtilisateurRepo, email, password, role string) *model.Utilisateur {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Utilisateur{Email: email, FullName: "Test", PasswordHash: string(hash), Role: role, Actif: true}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func claimsOf(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte("secret-de-test"), nil })
	require.NoError(t, err)
	return parsed.Claims.(jwt.MapClaims)
}

func TestResoudreRole(t *testing.T) {
	assert.Equal(t, model.RoleAdmin, service.ResoudreRole(model.RoleAdmin, model.RoleSecretaire))
	assert.Equal(t, model.RoleCollaborateur, service.ResoudreRole("", model.RoleCollaborateur))
	assert.Equal(t, model.RoleSecretaire, service.ResoudreRole("superuser", ""))
	// a missing role never escalates to admin
	assert.Equal(t, model.RoleSecretaire, service.ResoudreRole("", model.RoleAdmin))
}

func TestLogin(t *testing.T) {
	repo := newFakeUtilisateurRepo()
	seedUser(t, repo, "gerant@elysee.tn", "motdepasse", model.RoleAdmin)
	svc := service.NewAuthService(repo, testConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "GERANT@elysee.tn", Password: "motdepasse"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	claims := claimsOf(t, resp.AccessToken)
	assert.Equal(t, model.RoleAdmin, claims["role"])
	assert.Equal(t, service.TokenAccess, claims["typ"])

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "gerant@elysee.tn", Password: "faux"})
	assert.ErrorIs(t, err, service.ErrIdentifiants)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "absent@elysee.tn", Password: "x"})
	assert.ErrorIs(t, err, service.ErrIdentifiants)
}

func TestLogin_ProfilSansRole(t *testing.T) {
	repo := newFakeUtilisateurRepo()
	seedUser(t, repo, "ancien@elysee.tn", "motdepasse", "")
	svc := service.NewAuthService(repo, testConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "ancien@elysee.tn", Password: "motdepasse"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleSecretaire, resp.User.Role)
	assert.Equal(t, model.RoleSecretaire, claimsOf(t, resp.AccessToken)["role"])
}

func TestRefresh(t *testing.T) {
	repo := newFakeUtilisateurRepo()
	u := seedUser(t, repo, "gerant@elysee.tn", "motdepasse", model.RoleCollaborateur)
	svc := service.NewAuthService(repo, testConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Email: "gerant@elysee.tn", Password: "motdepasse"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.ErrorIs(t, err, service.ErrTokenInvalide)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), refreshed.User.ID)

	require.NoError(t, svc.DesactiverUtilisateur(context.Background(), u.ID))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, service.ErrTokenInvalide)
}

func TestUtilisateurs_CRUD(t *testing.T) {
	repo := newFakeUtilisateurRepo()
	svc := service.NewAuthService(repo, testConfig())

	u, err := svc.CreerUtilisateur(context.Background(), dto.CreerUtilisateurRequest{
		Email: "Secretariat@elysee.tn", FullName: "Secrétariat", Password: "motdepasse",
	})
	require.NoError(t, err)
	assert.Equal(t, "secretariat@elysee.tn", u.Email)
	assert.Equal(t, model.RoleSecretaire, u.Role)

	_, err = svc.CreerUtilisateur(context.Background(), dto.CreerUtilisateurRequest{
		Email: "secretariat@elysee.tn", FullName: "Doublon", Password: "motdepasse",
	})
	assert.ErrorIs(t, err, service.ErrConflit)

	uid, err := uuid.Parse(u.ID)
	require.NoError(t, err)
	m, err := svc.ModifierUtilisateur(context.Background(), uid, dto.ModifierUtilisateurRequest{Role: model.RoleCollaborateur})
	require.NoError(t, err)
	assert.Equal(t, model.RoleCollaborateur, m.Role)

	list, err := svc.ListerUtilisateurs(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

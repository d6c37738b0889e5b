package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"elysee/internal/config"
	"elysee/internal/dto"
	"elysee/internal/model"
	"elysee/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Token kinds carried in the "typ" claim.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

const bcryptCost = 12

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreerUtilisateur(ctx context.Context, req dto.CreerUtilisateurRequest) (*dto.UtilisateurResponse, error)
	ListerUtilisateurs(ctx context.Context) ([]dto.UtilisateurResponse, error)
	ModifierUtilisateur(ctx context.Context, id uuid.UUID, req dto.ModifierUtilisateurRequest) (*dto.UtilisateurResponse, error)
	DesactiverUtilisateur(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.UtilisateurRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewAuthService(repo repository.UtilisateurRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg, now: time.Now}
}

// ResoudreRole returns the stored role when it is known, else defaut, else
// the least privileged role. A profile never falls back to admin.
func ResoudreRole(stocke, defaut string) string {
	if model.RoleValide(stocke) {
		return stocke
	}
	if model.RoleValide(defaut) && defaut != model.RoleAdmin {
		return defaut
	}
	return model.RoleSecretaire
}

func (s *authService) role(u *model.Utilisateur) string {
	r := ResoudreRole(u.Role, s.cfg.DefaultRole)
	if r != u.Role {
		log.Warn().Str("user_id", u.ID.String()).Str("stocke", u.Role).Str("resolu", r).Msg("rôle absent ou inconnu")
	}
	return r
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentifiants
		}
		return nil, indisponible("utilisateurs", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrIdentifiants
	}
	return s.session(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalide
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != TokenRefresh {
		return nil, ErrTokenInvalide
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrTokenInvalide
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrTokenInvalide
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Actif {
		return nil, ErrTokenInvalide
	}
	return s.session(user)
}

func (s *authService) session(user *model.Utilisateur) (*dto.LoginResponse, error) {
	role := s.role(user)
	access, err := s.generateToken(user, role, TokenAccess, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(user, role, TokenRefresh, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         toUtilisateurResponse(user, role),
	}, nil
}

func (s *authService) generateToken(user *model.Utilisateur, role, typ string, duration time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    role,
		"typ":     typ,
		"exp":     now.Add(duration).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ── Utilisateurs ──────────────────────────────────────────────────────────────

func (s *authService) CreerUtilisateur(ctx context.Context, req dto.CreerUtilisateurRequest) (*dto.UtilisateurResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &model.Utilisateur{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hash),
		Role:         ResoudreRole(req.Role, s.cfg.DefaultRole),
		Actif:        true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return nil, fmt.Errorf("%w: e-mail déjà utilisé", ErrConflit)
		}
		return nil, err
	}
	resp := toUtilisateurResponse(user, user.Role)
	return &resp, nil
}

func (s *authService) ListerUtilisateurs(ctx context.Context) ([]dto.UtilisateurResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, indisponible("utilisateurs", err)
	}
	resp := make([]dto.UtilisateurResponse, len(users))
	for i := range users {
		resp[i] = toUtilisateurResponse(&users[i], ResoudreRole(users[i].Role, s.cfg.DefaultRole))
	}
	return resp, nil
}

func (s *authService) ModifierUtilisateur(ctx context.Context, id uuid.UUID, req dto.ModifierUtilisateurRequest) (*dto.UtilisateurResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, introuvable("utilisateur", err)
	}
	if req.FullName != "" {
		user.FullName = strings.TrimSpace(req.FullName)
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Actif != nil {
		user.Actif = *req.Actif
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := toUtilisateurResponse(user, ResoudreRole(user.Role, s.cfg.DefaultRole))
	return &resp, nil
}

func (s *authService) DesactiverUtilisateur(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.SetActif(ctx, id, false)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrIntrouvable
	}
	return nil
}

package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreerUtilisateurRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Password string `json:"password"  validate:"required,min=8"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin collaborateur secretaire"`
}

type ModifierUtilisateurRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Role     string `json:"role"      validate:"omitempty,oneof=admin collaborateur secretaire"`
	Password string `json:"password"  validate:"omitempty,min=8"`
	Actif    *bool  `json:"actif"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UtilisateurResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Actif    bool   `json:"actif"`
}

type LoginResponse struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	TokenType    string              `json:"token_type"`
	ExpiresIn    int                 `json:"expires_in"` // seconds
	User         UtilisateurResponse `json:"user"`
}

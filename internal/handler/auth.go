package handler

import (
	"net/http"

	"elysee/internal/dto"
	"elysee/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Connexion par e-mail et mot de passe
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Identifiants"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Renouvelle la session à partir du refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Utilisateurs ──────────────────────────────────────────────────────────────

type UtilisateursHandler struct{ svc service.AuthService }

func NewUtilisateursHandler(svc service.AuthService) *UtilisateursHandler {
	return &UtilisateursHandler{svc: svc}
}

// Creer godoc
// @Summary Crée un compte utilisateur
// @Tags utilisateurs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreerUtilisateurRequest true "Compte"
// @Success 201 {object} dto.UtilisateurResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/utilisateurs [post]
func (h *UtilisateursHandler) Creer(c *gin.Context) {
	var req dto.CreerUtilisateurRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreerUtilisateur(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UtilisateursHandler) Lister(c *gin.Context) {
	resp, err := h.svc.ListerUtilisateurs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UtilisateursHandler) Modifier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ModifierUtilisateurRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ModifierUtilisateur(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UtilisateursHandler) Desactiver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DesactiverUtilisateur(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

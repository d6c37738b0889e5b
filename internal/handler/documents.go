package handler

import (
	"fmt"
	"net/http"

	"elysee/internal/dto"
	"elysee/internal/infra"
	"elysee/internal/service"

	"github.com/gin-gonic/gin"
)

type DocumentsHandler struct {
	svc        service.DocumentService
	parametres service.ParametresService
}

func NewDocumentsHandler(svc service.DocumentService, parametres service.ParametresService) *DocumentsHandler {
	return &DocumentsHandler{svc: svc, parametres: parametres}
}

// Facture godoc
// @Summary Facture PDF du client
// @Tags documents
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/clients/{id}/facture [get]
func (h *DocumentsHandler) Facture(c *gin.Context) { h.pdf(c, infra.DocFacture) }

// Devis godoc
// @Summary Devis PDF du client
// @Tags documents
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/clients/{id}/devis [get]
func (h *DocumentsHandler) Devis(c *gin.Context) { h.pdf(c, infra.DocDevis) }

// Contrat godoc
// @Summary Contrat PDF du client, avec un nouveau numéro
// @Tags documents
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param type query string false "location (défaut) ou options"
// @Success 200 {file} binary
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/clients/{id}/contrat [get]
func (h *DocumentsHandler) Contrat(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	data, nom, err := h.svc.Contrat(c.Request.Context(), id, c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nom))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *DocumentsHandler) pdf(c *gin.Context, typ infra.TypeDocument) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	data, nom, err := h.svc.PDF(c.Request.Context(), id, typ)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", nom))
	c.Data(http.StatusOK, "application/pdf", data)
}

// EnvoyerFacture godoc
// @Summary Envoie la facture par e-mail
// @Description Le rendu et l'envoi sont faits en tâche de fond ; un échec finit en file d'erreurs.
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param body body dto.EnvoiFactureRequest false "Adresse (sinon celle du dossier)"
// @Success 202 {object} dto.EnvoiFactureResponse
// @Failure 400 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /v1/clients/{id}/facture/envoyer [post]
func (h *DocumentsHandler) EnvoyerFacture(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.EnvoiFactureRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EnvoyerFacture(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

// ── Paramètres ────────────────────────────────────────────────────────────────

// Parametres godoc
// @Summary Coordonnées de l'entreprise imprimées sur les documents
// @Tags parametres
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ParametresResponse
// @Router /v1/parametres [get]
func (h *DocumentsHandler) Parametres(c *gin.Context) {
	resp, err := h.parametres.Obtenir(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ModifierParametres godoc
// @Summary Met à jour les paramètres de l'entreprise
// @Tags parametres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ParametresRequest true "Paramètres"
// @Success 200 {object} dto.ParametresResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/parametres [put]
func (h *DocumentsHandler) ModifierParametres(c *gin.Context) {
	var req dto.ParametresRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.parametres.Modifier(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

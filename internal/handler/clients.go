package handler

import (
	"net/http"

	"elysee/internal/dto"
	"elysee/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientsHandler struct{ svc service.ClientService }

func NewClientsHandler(svc service.ClientService) *ClientsHandler {
	return &ClientsHandler{svc: svc}
}

// Lister godoc
// @Summary Liste les dossiers clients avec leur solde
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param archived query bool false "Dossiers archivés"
// @Param statut query string false "Statut"
// @Param q query string false "Recherche (nom, prénom, e-mail, téléphone)"
// @Param impayes query bool false "Uniquement les comptes débiteurs"
// @Param mariage query string false "passe | a_venir"
// @Param tri query string false "nom | date_mariage | statut | reste"
// @Param page query int false "Page"
// @Param limit query int false "Taille de page"
// @Success 200 {object} dto.ClientListResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/clients [get]
func (h *ClientsHandler) Lister(c *gin.Context) {
	var filter dto.ClientFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Lister(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Creer godoc
// @Summary Ouvre un dossier client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ClientRequest true "Dossier"
// @Success 201 {object} dto.ClientResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/clients [post]
func (h *ClientsHandler) Creer(c *gin.Context) {
	var req dto.ClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Creer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtenir godoc
// @Summary Détail d'un dossier client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clients/{id} [get]
func (h *ClientsHandler) Obtenir(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Obtenir(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Modifier godoc
// @Summary Met à jour un dossier client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param body body dto.ClientRequest true "Dossier"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/clients/{id} [put]
func (h *ClientsHandler) Modifier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Modifier(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientsHandler) Archiver(c *gin.Context)    { h.archiver(c, true) }
func (h *ClientsHandler) Desarchiver(c *gin.Context) { h.archiver(c, false) }

func (h *ClientsHandler) archiver(c *gin.Context, archived bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Archiver(c.Request.Context(), id, archived); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Supprimer godoc
// @Summary Supprime définitivement un dossier et ses écritures
// @Tags clients
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/clients/{id} [delete]
func (h *ClientsHandler) Supprimer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Supprimer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

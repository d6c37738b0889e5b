package handler

import (
	"net/http"

	"elysee/internal/dto"
	"elysee/internal/service"

	"github.com/gin-gonic/gin"
)

// CompteHandler serves a client's account: debits, reglements and the
// payment schedule.
type CompteHandler struct {
	svc       service.CompteService
	echeances service.EcheanceService
}

func NewCompteHandler(svc service.CompteService, echeances service.EcheanceService) *CompteHandler {
	return &CompteHandler{svc: svc, echeances: echeances}
}

// Compte godoc
// @Summary Compte client : débits, règlements, totaux et état
// @Tags compte
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} dto.CompteResponse
// @Failure 404 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /v1/clients/{id}/compte [get]
func (h *CompteHandler) Compte(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Compte(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AjouterDebit godoc
// @Summary Ajoute une prestation facturée
// @Description Soit prix_unitaire_ht, soit montant_ttc (converti en HT). montant_ttc stocké est calculé par la base.
// @Tags compte
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param body body dto.DebitRequest true "Débit"
// @Success 201 {object} dto.DebitResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/clients/{id}/debits [post]
func (h *CompteHandler) AjouterDebit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.DebitRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjouterDebit(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CompteHandler) SupprimerDebit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.SupprimerDebit(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AjouterReglement godoc
// @Summary Enregistre un paiement
// @Tags compte
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param body body dto.ReglementRequest true "Règlement"
// @Success 201 {object} dto.ReglementResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/clients/{id}/reglements [post]
func (h *CompteHandler) AjouterReglement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ReglementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjouterReglement(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SupprimerReglement godoc
// @Summary Supprime un paiement
// @Description Un chèque déposé doit d'abord être retiré de la banque (409).
// @Tags compte
// @Security BearerAuth
// @Param id path string true "Règlement ID"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/reglements/{id} [delete]
func (h *CompteHandler) SupprimerReglement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.SupprimerReglement(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Échéances ─────────────────────────────────────────────────────────────────

func (h *CompteHandler) ListerEcheances(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.echeances.Lister(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CompteHandler) AjouterEcheance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.EcheanceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.echeances.Ajouter(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CompteHandler) BasculerEcheance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.echeances.BasculerPayee(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CompteHandler) SupprimerEcheance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.echeances.Supprimer(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

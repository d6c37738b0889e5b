package handler

import (
	"net/http"

	"elysee/internal/dto"
	"elysee/internal/service"

	"github.com/gin-gonic/gin"
)

type BanqueHandler struct{ svc service.BanqueService }

func NewBanqueHandler(svc service.BanqueService) *BanqueHandler { return &BanqueHandler{svc: svc} }

// Recap godoc
// @Summary Rapprochement caisse / banque sur une période
// @Tags banque
// @Produce json
// @Security BearerAuth
// @Param periode query string false "tout | annee | mois | custom"
// @Param debut query string false "AAAA-MM-JJ (custom)"
// @Param fin query string false "AAAA-MM-JJ (custom)"
// @Success 200 {object} dto.RecapResponse
// @Failure 400 {object} apierror.APIError
// @Failure 503 {object} apierror.APIError
// @Router /v1/banque [get]
func (h *BanqueHandler) Recap(c *gin.Context) {
	var q dto.PeriodeQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Recap(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeposerCheques godoc
// @Summary Dépose des chèques en banque
// @Description Chaque chèque est déposé dans sa propre transaction ; le résultat est détaillé par chèque.
// @Tags banque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.DeposerChequesRequest true "Chèques à déposer"
// @Success 200 {object} dto.DeposerChequesResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/banque/cheques/depot [post]
func (h *BanqueHandler) DeposerCheques(c *gin.Context) {
	var req dto.DeposerChequesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.DeposerCheques(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeposerEspeces godoc
// @Summary Enregistre un dépôt d'espèces
// @Tags banque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.DepotEspecesRequest true "Dépôt"
// @Success 201 {object} dto.DepotResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/banque/depots [post]
func (h *BanqueHandler) DeposerEspeces(c *gin.Context) {
	var req dto.DepotEspecesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.DeposerEspeces(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SupprimerDepot godoc
// @Summary Annule un dépôt
// @Description Un dépôt de chèque remet le chèque lié en caisse dans la même transaction.
// @Tags banque
// @Produce json
// @Security BearerAuth
// @Param id path string true "Dépôt ID"
// @Success 200 {object} dto.SuppressionDepotResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/banque/depots/{id} [delete]
func (h *BanqueHandler) SupprimerDepot(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.SupprimerDepot(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RapportComptable godoc
// @Summary Rapport comptable mensuel (HT / TVA / TTC)
// @Tags banque
// @Produce json
// @Security BearerAuth
// @Param annee query int true "Année"
// @Param mois query int true "Mois (1-12)"
// @Success 200 {object} dto.RapportComptableResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/banque/rapport [get]
func (h *BanqueHandler) RapportComptable(c *gin.Context) {
	var q dto.RapportComptableQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.RapportComptable(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

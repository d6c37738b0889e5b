package handler

import (
	"net/http"
	"strconv"

	"elysee/internal/apierror"
	"elysee/internal/dto"
	"elysee/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc      service.DashboardService
	recettes service.RecettesService
}

func NewDashboardHandler(svc service.DashboardService, recettes service.RecettesService) *DashboardHandler {
	return &DashboardHandler{svc: svc, recettes: recettes}
}

// Dashboard godoc
// @Summary Indicateurs du tableau de bord
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StatsAnnuelles godoc
// @Summary CA et mariages par mois
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param annee query int false "Année (par défaut l'année en cours)"
// @Success 200 {object} dto.StatsAnnuellesResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/dashboard/stats [get]
func (h *DashboardHandler) StatsAnnuelles(c *gin.Context) {
	annee := 0
	if s := c.Query("annee"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("année invalide"))
			return
		}
		annee = n
	}
	resp, err := h.svc.StatsAnnuelles(c.Request.Context(), annee)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recettes godoc
// @Summary Paiements reçus sur une période
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param periode query string false "tout | annee | mois | custom"
// @Param debut query string false "AAAA-MM-JJ"
// @Param fin query string false "AAAA-MM-JJ"
// @Param mode query string false "cb | virement | especes | cheque"
// @Success 200 {object} dto.RecettesResponse
// @Router /v1/recettes [get]
func (h *DashboardHandler) Recettes(c *gin.Context) {
	var f dto.RecettesFilter
	if !bindQuery(c, &f) {
		return
	}
	resp, err := h.recettes.Lister(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

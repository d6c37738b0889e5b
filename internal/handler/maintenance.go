package handler

import (
	"net/http"

	"elysee/internal/apierror"
	"elysee/internal/service"

	"github.com/gin-gonic/gin"
)

const maxImportSize = 20 << 20

type MaintenanceHandler struct{ svc service.MaintenanceService }

func NewMaintenanceHandler(svc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc}
}

// AnalyserDoublons godoc
// @Summary Liste les débits en double sans rien supprimer
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DoublonsResponse
// @Failure 503 {object} apierror.APIError
// @Router /v1/maintenance/doublons [get]
func (h *MaintenanceHandler) AnalyserDoublons(c *gin.Context) {
	resp, err := h.svc.AnalyserDoublons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// NettoyerDoublons godoc
// @Summary Supprime les débits en double
// @Description Sans confirm=true, se comporte comme l'analyse.
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Param confirm query bool false "Appliquer la suppression"
// @Success 200 {object} dto.DoublonsResponse
// @Router /v1/maintenance/doublons [post]
func (h *MaintenanceHandler) NettoyerDoublons(c *gin.Context) {
	confirm := c.Query("confirm") == "true"
	resp, err := h.svc.NettoyerDoublons(c.Request.Context(), confirm)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Importer godoc
// @Summary Importe un classeur xlsx (feuilles clients, debits, reglements)
// @Tags maintenance
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param fichier formData file true "Classeur .xlsx"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/maintenance/import [post]
func (h *MaintenanceHandler) Importer(c *gin.Context) {
	fh, err := c.FormFile("fichier")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("fichier manquant"))
		return
	}
	if fh.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("fichier trop volumineux"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("fichier illisible"))
		return
	}
	defer f.Close()

	resp, err := h.svc.Importer(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

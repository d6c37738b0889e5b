package handler

import (
	"net/http"

	"elysee/internal/dto"
	"elysee/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanningHandler struct{ svc service.PlanningService }

func NewPlanningHandler(svc service.PlanningService) *PlanningHandler {
	return &PlanningHandler{svc: svc}
}

// Lister godoc
// @Summary Événements et mariages d'une fenêtre [debut, fin)
// @Tags planning
// @Produce json
// @Security BearerAuth
// @Param debut query string true "AAAA-MM-JJ"
// @Param fin query string true "AAAA-MM-JJ (exclu)"
// @Success 200 {array} dto.EvenementResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/planning [get]
func (h *PlanningHandler) Lister(c *gin.Context) {
	var q dto.PlanningQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.Lister(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanningHandler) Creer(c *gin.Context) {
	var req dto.EvenementRequest
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

func (h *PlanningHandler) Modifier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.EvenementRequest
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

func (h *PlanningHandler) Supprimer(c *gin.Context) {
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

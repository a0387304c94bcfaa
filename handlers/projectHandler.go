package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/estates_backend/models"
	"github.com/mmdatafocus/estates_backend/utils"
)

func (h *Handler) GetProjects(c *gin.Context) {
	orgId, _ := utils.GetOrgIdFromContext(c.Request.Context())
	projects, err := utils.FetchAllModels[models.Project](c.Request.Context(), orgId, "Units")
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) CreateProject(c *gin.Context) {
	var input models.NewProject
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	project, err := models.CreateProject(c.Request.Context(), &input)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) GetUnits(c *gin.Context) {
	orgId, _ := utils.GetOrgIdFromContext(c.Request.Context())
	units, err := utils.FetchAllModels[models.Unit](c.Request.Context(), orgId)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

func (h *Handler) CreateUnit(c *gin.Context) {
	var input models.NewUnit
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	unit, err := models.CreateUnit(c.Request.Context(), &input)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, unit)
}

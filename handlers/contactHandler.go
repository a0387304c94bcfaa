package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/estates_backend/models"
	"github.com/mmdatafocus/estates_backend/utils"
)

func (h *Handler) GetContacts(c *gin.Context) {
	orgId, _ := utils.GetOrgIdFromContext(c.Request.Context())
	contacts, err := utils.FetchAllModels[models.Contact](c.Request.Context(), orgId)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *Handler) CreateContact(c *gin.Context) {
	var input models.NewContact
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	contact, err := models.CreateContact(c.Request.Context(), &input)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *Handler) UpdateContact(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid contact id"))
		return
	}

	var input models.NewContact
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	contact, err := models.UpdateContact(c.Request.Context(), id, &input)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/estates_backend/models"
	"github.com/mmdatafocus/estates_backend/state"
)

func (h *Handler) GetPlanAmenities(c *gin.Context) {
	amenities, err := models.ListActivePlanAmenities(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, amenities)
}

func (h *Handler) CreatePlanAmenity(c *gin.Context) {
	var input models.NewPlanAmenity
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	amenity, err := models.CreatePlanAmenity(c.Request.Context(), &input)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionAddPlanAmenity, Payload: *amenity})
	c.JSON(http.StatusCreated, amenity)
}

func (h *Handler) UpdatePlanAmenity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid amenity id"))
		return
	}

	var input models.NewPlanAmenity
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	amenity, err := models.UpdatePlanAmenity(c.Request.Context(), id, &input)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionUpdatePlanAmenity, Payload: *amenity})
	c.JSON(http.StatusOK, amenity)
}

// DeletePlanAmenity removes the catalog row outright. Saved plans keep
// their amenity snapshots, so their totals are unaffected.
func (h *Handler) DeletePlanAmenity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, errors.New("invalid amenity id"))
		return
	}

	amenity, err := models.DeletePlanAmenity(c.Request.Context(), id)
	if err != nil {
		badRequest(c, err)
		return
	}
	h.Store.Dispatch(state.Action{Type: state.ActionDeletePlanAmenity, Payload: amenity.ID})
	c.JSON(http.StatusOK, amenity)
}

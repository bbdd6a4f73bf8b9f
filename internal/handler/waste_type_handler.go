package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bank-sampah-api/internal/service"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
	"github.com/noah-isme/bank-sampah-api/pkg/response"
)

// WasteTypeHandler wires the catalog service to HTTP routes.
type WasteTypeHandler struct {
	wasteTypes *service.WasteTypeService
}

// NewWasteTypeHandler constructs a new WasteTypeHandler.
func NewWasteTypeHandler(wasteTypes *service.WasteTypeService) *WasteTypeHandler {
	return &WasteTypeHandler{wasteTypes: wasteTypes}
}

// List godoc
// @Summary List waste types
// @Tags WasteTypes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /waste-types [get]
func (h *WasteTypeHandler) List(c *gin.Context) {
	types, err := h.wasteTypes.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, types, nil)
}

// Get godoc
// @Summary Get waste type detail
// @Tags WasteTypes
// @Produce json
// @Param id path string true "Waste type ID"
// @Success 200 {object} response.Envelope
// @Router /waste-types/{id} [get]
func (h *WasteTypeHandler) Get(c *gin.Context) {
	wt, err := h.wasteTypes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, wt, nil)
}

// Create godoc
// @Summary Create a waste type
// @Tags WasteTypes
// @Accept json
// @Produce json
// @Param payload body service.WasteTypeRequest true "Waste type payload"
// @Success 201 {object} response.Envelope
// @Router /waste-types [post]
func (h *WasteTypeHandler) Create(c *gin.Context) {
	var req service.WasteTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid waste type payload"))
		return
	}
	wt, err := h.wasteTypes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, wt)
}

// Update godoc
// @Summary Update a waste type
// @Tags WasteTypes
// @Accept json
// @Produce json
// @Param id path string true "Waste type ID"
// @Param payload body service.WasteTypeRequest true "Waste type payload"
// @Success 200 {object} response.Envelope
// @Router /waste-types/{id} [put]
func (h *WasteTypeHandler) Update(c *gin.Context) {
	var req service.WasteTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid waste type payload"))
		return
	}
	wt, err := h.wasteTypes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, wt, nil)
}

// Delete godoc
// @Summary Delete a waste type
// @Tags WasteTypes
// @Param id path string true "Waste type ID"
// @Success 204
// @Router /waste-types/{id} [delete]
func (h *WasteTypeHandler) Delete(c *gin.Context) {
	if err := h.wasteTypes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

package handler

import (
	appstore "github.com/Fayyez/UniKhata-sub000/internal/application/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IntegrationHandler manages the integration records of a store
type IntegrationHandler struct {
	BaseHandler
	integrationService *appstore.IntegrationService
}

// NewIntegrationHandler creates a new IntegrationHandler
func NewIntegrationHandler(integrationService *appstore.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{integrationService: integrationService}
}

// scope reads the caller and the store ID. It writes the error response
// itself and reports false when the request cannot go on.
func (h *IntegrationHandler) scope(c *gin.Context) (storeID, userID uuid.UUID, ok bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}
	storeID, ok = parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid store ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return storeID, userID, true
}

func (h *IntegrationHandler) recordID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := parseUUIDParam(c, "integrationId")
	if !ok {
		h.BadRequest(c, "Invalid integration ID format")
	}
	return id, ok
}

// ListEcommerce godoc
// @Summary      List e-commerce integrations
// @Description  List the store's e-commerce integrations in the order they are pulled
// @Tags         integrations
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]appstore.EcommerceIntegrationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/integrations/ecommerce [get]
func (h *IntegrationHandler) ListEcommerce(c *gin.Context) {
	storeID, userID, ok := h.scope(c)
	if !ok {
		return
	}
	items, err := h.integrationService.ListEcommerce(c.Request.Context(), storeID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// AddEcommerce godoc
// @Summary      Add an e-commerce integration
// @Description  The provider must be registered, otherwise the request is rejected
// @Tags         integrations
// @Accept       json
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Param        request body appstore.CreateEcommerceIntegrationRequest true "Integration record"
// @Success      201 {object} dto.Response{data=appstore.EcommerceIntegrationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/integrations/ecommerce [post]
func (h *IntegrationHandler) AddEcommerce(c *gin.Context) {
	storeID, userID, ok := h.scope(c)
	if !ok {
		return
	}
	var req appstore.CreateEcommerceIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	rec, err := h.integrationService.AddEcommerce(c.Request.Context(), storeID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rec)
}

// UpdateEcommerce godoc
// @Summary      Update an e-commerce integration
// @Tags         integrations
// @Accept       json
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Param        integrationId path string true "Integration ID" format(uuid)
// @Param        request body appstore.UpdateIntegrationRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=appstore.EcommerceIntegrationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/integrations/ecommerce/{integrationId} [put]
func (h *IntegrationHandler) UpdateEcommerce(c *gin.Context) {
	storeID, userID, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.recordID(c)
	if !ok {
		return
	}
	var req appstore.UpdateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	rec, err := h.integrationService.UpdateEcommerce(c.Request.Context(), storeID, userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// RemoveEcommerce godoc
// @Summary      Remove an e-commerce integration
// @Tags         integrations
// @Param        id path string true "Store ID" format(uuid)
// @Param        integrationId path string true "Integration ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/integrations/ecommerce/{integrationId} [delete]
func (h *IntegrationHandler) RemoveEcommerce(c *gin.Context) {
	storeID, userID, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.recordID(c)
	if !ok {
		return
	}
	if err := h.integrationService.RemoveEcommerce(c.Request.Context(), storeID, userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListCourier godoc
// @Summary      List courier integrations
// @Description  The first courier integration is the one orders are dispatched to
// @Tags         integrations
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]appstore.CourierIntegrationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/integrations/courier [get]
func (h *IntegrationHandler) ListCourier(c *gin.Context) {
	storeID, userID, ok := h.scope(c)
	if !ok {
		return
	}
	items, err := h.integrationService.ListCourier(c.Request.Context(), storeID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// AddCourier godoc
// @Summary      Add a courier integration
// @Tags         integrations
// @Accept       json
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Param        request body appstore.CreateCourierIntegrationRequest true "Integration record"
// @Success      201 {object} dto.Response{data=appstore.CourierIntegrationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/integrations/courier [post]
func (h *IntegrationHandler) AddCourier(c *gin.Context) {
	storeID, userID, ok := h.scope(c)
	if !ok {
		return
	}
	var req appstore.CreateCourierIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	rec, err := h.integrationService.AddCourier(c.Request.Context(), storeID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rec)
}

// UpdateCourier godoc
// @Summary      Update a courier integration
// @Tags         integrations
// @Accept       json
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Param        integrationId path string true "Integration ID" format(uuid)
// @Param        request body appstore.UpdateIntegrationRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=appstore.CourierIntegrationResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/integrations/courier/{integrationId} [put]
func (h *IntegrationHandler) UpdateCourier(c *gin.Context) {
	storeID, userID, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.recordID(c)
	if !ok {
		return
	}
	var req appstore.UpdateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	rec, err := h.integrationService.UpdateCourier(c.Request.Context(), storeID, userID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// RemoveCourier godoc
// @Summary      Remove a courier integration
// @Tags         integrations
// @Param        id path string true "Store ID" format(uuid)
// @Param        integrationId path string true "Integration ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/integrations/courier/{integrationId} [delete]
func (h *IntegrationHandler) RemoveCourier(c *gin.Context) {
	storeID, userID, ok := h.scope(c)
	if !ok {
		return
	}
	id, ok := h.recordID(c)
	if !ok {
		return
	}
	if err := h.integrationService.RemoveCourier(c.Request.Context(), storeID, userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	appstore "github.com/Fayyez/UniKhata-sub000/internal/application/store"
	"github.com/gin-gonic/gin"
)

// StoreHandler handles store endpoints. Every call is scoped to the
// authenticated owner.
type StoreHandler struct {
	BaseHandler
	storeService *appstore.StoreService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *appstore.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// Create godoc
// @Summary      Create a store
// @Description  Create a store for the caller. The default Dummy integrations are attached when configured.
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        request body appstore.CreateStoreRequest true "Store creation request"
// @Success      201 {object} dto.Response{data=appstore.StoreResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores [post]
func (h *StoreHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appstore.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	st, err := h.storeService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, st)
}

// List godoc
// @Summary      List stores
// @Description  List the caller's stores with pagination
// @Tags         stores
// @Produce      json
// @Param        name query string false "Name contains"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        sort_by query string false "Sort field" Enums(name, created_at, updated_at)
// @Param        sort_order query string false "Sort order" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]appstore.StoreListResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter appstore.StoreListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.storeService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID godoc
// @Summary      Get store by ID
// @Description  Retrieve a store with its integration records. Tokens are never returned.
// @Tags         stores
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Success      200 {object} dto.Response{data=appstore.StoreResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id} [get]
func (h *StoreHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	storeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid store ID format")
		return
	}

	st, err := h.storeService.Get(c.Request.Context(), storeID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, st)
}

// Rename godoc
// @Summary      Rename a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Param        request body appstore.RenameStoreRequest true "New name"
// @Success      200 {object} dto.Response{data=appstore.StoreResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id} [put]
func (h *StoreHandler) Rename(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	storeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid store ID format")
		return
	}

	var req appstore.RenameStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	st, err := h.storeService.Rename(c.Request.Context(), storeID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, st)
}

// Delete godoc
// @Summary      Delete a store
// @Description  Soft-delete a store. Its orders and products are kept.
// @Tags         stores
// @Param        id path string true "Store ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id} [delete]
func (h *StoreHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	storeID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid store ID format")
		return
	}

	if err := h.storeService.Delete(c.Request.Context(), storeID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	"context"

	appintegration "github.com/Fayyez/UniKhata-sub000/internal/application/integration"
	apptrade "github.com/Fayyez/UniKhata-sub000/internal/application/trade"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderSyncer is the integration side used by OrderHandler
type OrderSyncer interface {
	PullNewOrders(ctx context.Context, storeID, actorID uuid.UUID) (*appintegration.PullResult, error)
	DispatchOrder(ctx context.Context, storeID, orderID uuid.UUID) (*appintegration.DispatchOutcome, error)
}

// OrderHandler serves the orders of one store. Routes sit behind
// StoreAccess, so the store is already loaded and owned by the caller.
type OrderHandler struct {
	BaseHandler
	orderService *apptrade.OrderService
	syncer       OrderSyncer
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apptrade.OrderService, syncer OrderSyncer) *OrderHandler {
	return &OrderHandler{orderService: orderService, syncer: syncer}
}

// Pull godoc
// @Summary      Pull new orders
// @Description  Sync products and then orders from every e-commerce integration of the store.
// @Description  Orders already imported are skipped. Only one pull per store runs at a time.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Success      200 {object} dto.Response{data=appintegration.PullResult}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/orders/pull [post]
func (h *OrderHandler) Pull(c *gin.Context) {
	st := middleware.GetStore(c)
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.syncer.PullNewOrders(c.Request.Context(), st.ID, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Param        status query string false "Order status" Enums(pending, dispatched, processing, completed, cancelled, returned)
// @Param        search query string false "Remote order ID or address contains"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        sort_by query string false "Sort field"
// @Param        sort_order query string false "Sort order" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]apptrade.OrderResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	st := middleware.GetStore(c)

	var filter apptrade.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.orderService.List(c.Request.Context(), st.ID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID godoc
// @Summary      Get order by ID
// @Tags         orders
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Param        orderId path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=apptrade.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/orders/{orderId} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	st := middleware.GetStore(c)
	orderID, ok := parseUUIDParam(c, "orderId")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), st.ID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Dispatch godoc
// @Summary      Dispatch an order
// @Description  Hand a pending order to the store's first courier integration.
// @Description  If the courier refuses, the order stays pending.
// @Tags         orders
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Param        orderId path string true "Order ID" format(uuid)
// @Success      200 {object} dto.Response{data=appintegration.DispatchOutcome}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/orders/{orderId}/dispatch [post]
func (h *OrderHandler) Dispatch(c *gin.Context) {
	st := middleware.GetStore(c)
	orderID, ok := parseUUIDParam(c, "orderId")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	outcome, err := h.syncer.DispatchOrder(c.Request.Context(), st.ID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, outcome)
}

// ChangeStatus godoc
// @Summary      Change order status
// @Description  Move an order along the status state machine. Terminal orders cannot move.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Param        orderId path string true "Order ID" format(uuid)
// @Param        request body apptrade.ChangeOrderStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=apptrade.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/orders/{orderId}/status [put]
func (h *OrderHandler) ChangeStatus(c *gin.Context) {
	st := middleware.GetStore(c)
	orderID, ok := parseUUIDParam(c, "orderId")
	if !ok {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req apptrade.ChangeOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.ChangeStatus(c.Request.Context(), st.ID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

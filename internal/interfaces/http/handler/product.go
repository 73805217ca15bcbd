package handler

import (
	appcatalog "github.com/Fayyez/UniKhata-sub000/internal/application/catalog"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ProductHandler lists the products a store has synced
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List godoc
// @Summary      List products
// @Description  Products are created by pulls. Each carries the tags of the integrations it was seen on.
// @Tags         products
// @Produce      json
// @Param        id path string true "Store ID" format(uuid)
// @Param        search query string false "Name or brand contains"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        sort_by query string false "Sort field" Enums(name, local_product_id, price, stock, brand, created_at, updated_at)
// @Param        sort_order query string false "Sort order" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]appcatalog.ProductResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{id}/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	st := middleware.GetStore(c)

	var filter appcatalog.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.productService.List(c.Request.Context(), st.ID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

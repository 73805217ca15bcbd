package handler

import (
	appintegration "github.com/Fayyez/UniKhata-sub000/internal/application/integration"
	"github.com/gin-gonic/gin"
)

// CourierTokenHeader carries the integration token on courier callbacks
const CourierTokenHeader = "X-Courier-Token"

// CourierCallbackHandler receives shipment updates from couriers. The route
// is outside JWT auth; the courier proves itself with the integration token.
type CourierCallbackHandler struct {
	BaseHandler
	callbackService *appintegration.CourierCallbackService
}

// NewCourierCallbackHandler creates a new CourierCallbackHandler
func NewCourierCallbackHandler(callbackService *appintegration.CourierCallbackService) *CourierCallbackHandler {
	return &CourierCallbackHandler{callbackService: callbackService}
}

// Status godoc
// @Summary      Courier status callback
// @Description  DELIVERED completes the order, RETURNED and CANCELLED move it accordingly.
// @Description  IN_TRANSIT and PENDING are acknowledged without change.
// @Tags         callbacks
// @Accept       json
// @Produce      json
// @Param        integrationId path string true "Courier integration ID" format(uuid)
// @Param        X-Courier-Token header string true "Integration token"
// @Param        request body appintegration.CourierCallbackRequest true "Shipment update"
// @Success      200 {object} dto.Response{data=appintegration.CourierCallbackResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /callbacks/couriers/{integrationId}/status [post]
func (h *CourierCallbackHandler) Status(c *gin.Context) {
	integrationID, ok := parseUUIDParam(c, "integrationId")
	if !ok {
		h.BadRequest(c, "Invalid integration ID format")
		return
	}
	token := c.GetHeader(CourierTokenHeader)
	if token == "" {
		h.Unauthorized(c, "Courier token required")
		return
	}

	var req appintegration.CourierCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.callbackService.HandleStatus(c.Request.Context(), integrationID, token, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

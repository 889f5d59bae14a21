package http

import (
	"github.com/gin-gonic/gin"
	authhttp "github.com/wyfcoding/storefront/internal/auth/interfaces/http"
	"github.com/wyfcoding/storefront/internal/order/application"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/response"
	"github.com/wyfcoding/storefront/pkg/utils"
)

// Handler 订单 HTTP 处理器
type Handler struct {
	checkout *application.CheckoutService
	query    *application.OrderQueryService
}

// NewHandler 创建 HTTP 处理器
func NewHandler(checkout *application.CheckoutService, query *application.OrderQueryService) *Handler {
	return &Handler{checkout: checkout, query: query}
}

// RegisterRoutes 注册路由，全部需要认证
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	g := r.Group("/orders/me", auth)
	g.POST("", h.Checkout)
	g.GET("", h.ListOrders)
	g.GET("/:id", h.GetOrder)
}

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	ShippingDetail struct {
		Address string `json:"address" binding:"required"`
	} `json:"shipping_detail"`
	PaymentDetail struct {
		CardNumber string `json:"card_number" binding:"required"`
		CVV        string `json:"cvv" binding:"required"`
	} `json:"payment_detail"`
}

// Checkout 以当前购物车下单
func (h *Handler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errorsx.Validation(err.Error()))
		return
	}

	summary, err := h.checkout.Checkout(c.Request.Context(), application.CheckoutCommand{
		UserID:     authhttp.CurrentUserID(c),
		Address:    req.ShippingDetail.Address,
		CardNumber: req.PaymentDetail.CardNumber,
		CVV:        req.PaymentDetail.CVV,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, summary)
}

// ListOrders 当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.query.ListUserOrders(c.Request.Context(), authhttp.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, orders)
}

// GetOrder 当前用户的单个订单
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	order, err := h.query.GetOrder(c.Request.Context(), authhttp.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}

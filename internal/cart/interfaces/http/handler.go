package http

import (
	"github.com/gin-gonic/gin"
	authhttp "github.com/wyfcoding/storefront/internal/auth/interfaces/http"
	"github.com/wyfcoding/storefront/internal/cart/application"
	"github.com/wyfcoding/storefront/pkg/response"
	"github.com/wyfcoding/storefront/pkg/utils"
)

// Handler 购物车 HTTP 处理器
type Handler struct {
	cmd   *application.CartCommandService
	query *application.CartQueryService
}

// NewHandler 创建 HTTP 处理器
func NewHandler(cmd *application.CartCommandService, query *application.CartQueryService) *Handler {
	return &Handler{cmd: cmd, query: query}
}

// RegisterRoutes 注册路由，全部需要认证
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	g := r.Group("/carts", auth)
	g.GET("/me", h.GetCart)
	g.PATCH("/:item_id", h.UpdateQty)
	g.DELETE("", h.Clear)
}

// UpdateQty 调整商品数量
func (h *Handler) UpdateQty(c *gin.Context) {
	itemID, err := utils.ParseID(c.Param("item_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	qty, err := utils.ParseQty(c.GetQuery("qty"))
	if err != nil {
		response.Error(c, err)
		return
	}

	line, err := h.cmd.UpdateQty(c.Request.Context(), application.UpdateCartCommand{
		UserID: authhttp.CurrentUserID(c),
		ItemID: itemID,
		Qty:    qty,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, line)
}

// Clear 清空购物车
func (h *Handler) Clear(c *gin.Context) {
	if err := h.cmd.ClearCart(c.Request.Context(), authhttp.CurrentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetCart 当前用户购物车
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.query.GetCart(c.Request.Context(), authhttp.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, cart)
}

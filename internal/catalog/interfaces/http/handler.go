package http

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/storefront/internal/catalog/application"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/response"
	"github.com/wyfcoding/storefront/pkg/utils"
)

// Handler 商品目录 HTTP 处理器
type Handler struct {
	cmd   *application.CatalogCommandService
	query *application.CatalogQueryService
}

// NewHandler 创建 HTTP 处理器
func NewHandler(cmd *application.CatalogCommandService, query *application.CatalogQueryService) *Handler {
	return &Handler{cmd: cmd, query: query}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/items")
	g.POST("", h.RegisterItem)
	g.GET("", h.ListItems)
	g.GET("/:id", h.GetItem)
	g.DELETE("/:id", h.DeleteItem)
	g.PATCH("/:id", h.AdjustStock)
	g.GET("/category/:category", h.ListByCategory)
	g.POST("/ratings", h.RateItem)
	g.GET("/:id/ratings", h.ListRatings)
}

type registerItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category" binding:"required"`
	Qty      int             `json:"qty"`
}

// RegisterItem 上架商品
func (h *Handler) RegisterItem(c *gin.Context) {
	var req registerItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errorsx.Validation(err.Error()))
		return
	}

	item, err := h.cmd.RegisterItem(c.Request.Context(), application.RegisterItemCommand{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Qty:      req.Qty,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// ListItems 分页列出商品
func (h *Handler) ListItems(c *gin.Context) {
	page, err := utils.ParseIntDefault(c.Query("page"), "page", 1)
	if err != nil {
		response.Error(c, err)
		return
	}
	pageSize, err := utils.ParseIntDefault(c.Query("page_size"), "page_size", 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.query.ListItems(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetItem 获取商品
func (h *Handler) GetItem(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.query.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteItem 删除商品
func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.cmd.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// AdjustStock 调整库存，qty 为有符号整数
func (h *Handler) AdjustStock(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	delta, err := utils.ParseQty(c.GetQuery("qty"))
	if err != nil {
		response.Error(c, err)
		return
	}

	item, err := h.cmd.AdjustStock(c.Request.Context(), application.AdjustStockCommand{ItemID: id, Delta: delta})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// ListByCategory 按分类列出商品
func (h *Handler) ListByCategory(c *gin.Context) {
	items, err := h.query.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

type rateItemRequest struct {
	ItemID uint `json:"item_id" binding:"required"`
	Rating int  `json:"rating"`
}

// RateItem 商品评分
func (h *Handler) RateItem(c *gin.Context) {
	var req rateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errorsx.Validation(err.Error()))
		return
	}
	rating, err := h.cmd.RateItem(c.Request.Context(), application.RateItemCommand{
		ItemID: req.ItemID,
		Rating: req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rating)
}

// ListRatings 列出商品评分
func (h *Handler) ListRatings(c *gin.Context) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	ratings, err := h.query.ListRatings(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ratings)
}

package http

import (
	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/internal/auth/application"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/response"
)

// Handler 认证 HTTP 处理器
type Handler struct {
	svc *application.AuthService
}

// NewHandler 创建 HTTP 处理器
func NewHandler(svc *application.AuthService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/auth")
	g.POST("/sign-in", h.SignIn)
	g.POST("/sign-out", h.SignOut)
}

type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignIn 登录并返回访问令牌
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errorsx.Validation(err.Error()))
		return
	}
	token, err := h.svc.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

// SignOut 吊销当前令牌
func (h *Handler) SignOut(c *gin.Context) {
	raw, ok := BearerToken(c)
	if !ok {
		response.Error(c, errNotAuthenticated)
		return
	}
	if err := h.svc.SignOut(c.Request.Context(), raw); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

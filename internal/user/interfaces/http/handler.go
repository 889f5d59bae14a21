package http

import (
	"github.com/gin-gonic/gin"
	authhttp "github.com/wyfcoding/storefront/internal/auth/interfaces/http"
	"github.com/wyfcoding/storefront/internal/user/application"
	"github.com/wyfcoding/storefront/pkg/errorsx"
	"github.com/wyfcoding/storefront/pkg/response"
)

// Handler 用户 HTTP 处理器
type Handler struct {
	cmd   *application.UserCommandService
	query *application.UserQueryService
}

// NewHandler 创建 HTTP 处理器
func NewHandler(cmd *application.UserCommandService, query *application.UserQueryService) *Handler {
	return &Handler{cmd: cmd, query: query}
}

// RegisterRoutes 注册路由，auth 为认证中间件
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	g := r.Group("/users")
	g.POST("", h.Register)

	me := g.Group("/me", auth)
	me.GET("", h.Me)
	me.PATCH("/password", h.ResetPassword)
	me.DELETE("", h.Delete)
}

type credentialRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errorsx.Validation(err.Error()))
		return
	}
	user, err := h.cmd.Register(c.Request.Context(), application.RegisterCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Me 当前用户信息
func (h *Handler) Me(c *gin.Context) {
	user, err := h.query.GetUser(c.Request.Context(), authhttp.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

type resetPasswordRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword 重置密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errorsx.Validation(err.Error()))
		return
	}
	err := h.cmd.ResetPassword(c.Request.Context(), application.ResetPasswordCommand{
		UserID:      authhttp.CurrentUserID(c),
		Password:    req.Password,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

// Delete 注销账户
func (h *Handler) Delete(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errorsx.Validation(err.Error()))
		return
	}
	err := h.cmd.DeleteUser(c.Request.Context(), application.DeleteUserCommand{
		UserID:   authhttp.CurrentUserID(c),
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

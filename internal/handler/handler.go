package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/cinedb/internal/config"
	"github.com/user/cinedb/internal/repository"
	"github.com/user/cinedb/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos  *repository.Repositories
	Config *config.Config
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:  repos,
		Config: cfg,
	}
}

// pathInt 解析路径中的整数参数，失败时返回 400
func pathInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		utils.BadRequest(c, "invalid path param: "+name)
		return 0, false
	}
	return v, true
}

// queryInt 解析必填的整数查询参数，失败时返回 400
func queryInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		utils.BadRequest(c, "invalid query param: "+name)
		return 0, false
	}
	return v, true
}

// optionalQueryInt 解析可缺省的整数查询参数，缺省时返回 nil
func optionalQueryInt(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		utils.BadRequest(c, "invalid query param: "+name)
		return nil, false
	}
	return &v, true
}

// bindError 将请求体绑定/校验错误转换为 400 响应
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		utils.BadRequest(c, verrs.Error())
		return
	}
	utils.BadRequest(c, err.Error())
}

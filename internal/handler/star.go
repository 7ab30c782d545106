package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/cinedb/internal/model"
	"github.com/user/cinedb/internal/utils"
)

// 聚合统计的默认数量下限
const defaultStatsMinCount = 10

// CreateStar 创建明星，请求体不含 ID，返回带新 ID 的记录
func (h *Handler) CreateStar(c *gin.Context) {
	var payload model.StarCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	star, err := h.Repos.Star.Create(&payload)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, star)
}

// ListStars 分页列出明星，skip 默认 0，limit 默认 100
func (h *Handler) ListStars(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		utils.BadRequest(c, "invalid query param: skip")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		utils.BadRequest(c, "invalid query param: limit")
		return
	}

	stars, err := h.Repos.Star.List(skip, limit)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, stars)
}

// GetStar 明星详情
func (h *Handler) GetStar(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	star, err := h.Repos.Star.FindByID(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if star == nil {
		utils.NotFound(c, "Star to read not found")
		return
	}
	c.JSON(http.StatusOK, star)
}

// GetStarsByName 姓名精确匹配
func (h *Handler) GetStarsByName(c *gin.Context) {
	stars, err := h.Repos.Star.FindByName(c.Query("n"))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, stars)
}

// GetStarsByEndname 姓名后缀匹配
func (h *Handler) GetStarsByEndname(c *gin.Context) {
	stars, err := h.Repos.Star.FindByEndname(c.Query("n"))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, stars)
}

// GetStarsByBirthyear 按出生年份过滤
func (h *Handler) GetStarsByBirthyear(c *gin.Context) {
	year, ok := pathInt(c, "year")
	if !ok {
		return
	}

	stars, err := h.Repos.Star.FindByBirthyear(year)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, stars)
}

// GetStarsCount 明星总数
func (h *Handler) GetStarsCount(c *gin.Context) {
	count, err := h.Repos.Star.Count()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, count)
}

// GetStarDirectorOfMovie 某部电影的导演。
// 电影没有导演（正常）和电影不存在（错误）都返回 null，无法区分。
func (h *Handler) GetStarDirectorOfMovie(c *gin.Context) {
	movieID, ok := pathInt(c, "movie_id")
	if !ok {
		return
	}

	star, err := h.Repos.Star.DirectorOfMovie(movieID)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, star)
}

// GetStarsDirectorByMovieTitle 标题匹配的所有电影的导演
func (h *Handler) GetStarsDirectorByMovieTitle(c *gin.Context) {
	stars, err := h.Repos.Star.DirectorsByMovieTitle(c.Query("t"))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, stars)
}

// GetActorsByMovieTitle 标题匹配的每部电影的演员列表
func (h *Handler) GetActorsByMovieTitle(c *gin.Context) {
	lists, err := h.Repos.Star.ActorsByMovieTitle(c.Query("t"))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, lists)
}

// GetStatsMovieByDirector 按导演聚合的电影统计，mc 为数量下限（默认 10）
func (h *Handler) GetStatsMovieByDirector(c *gin.Context) {
	minCount, err := strconv.Atoi(c.DefaultQuery("mc", strconv.Itoa(defaultStatsMinCount)))
	if err != nil {
		utils.BadRequest(c, "invalid query param: mc")
		return
	}

	rows, err := h.Repos.Star.StatsByDirector(minCount)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetStatsMovieByActor 按演员聚合的电影统计，mc 为数量下限（默认 10）
func (h *Handler) GetStatsMovieByActor(c *gin.Context) {
	minCount, err := strconv.Atoi(c.DefaultQuery("mc", strconv.Itoa(defaultStatsMinCount)))
	if err != nil {
		utils.BadRequest(c, "invalid query param: mc")
		return
	}

	rows, err := h.Repos.Star.StatsByActor(minCount)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, rows)
}

// UpdateStar 全量替换明星字段（按 ID 定位）
func (h *Handler) UpdateStar(c *gin.Context) {
	var payload model.Star
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	star, err := h.Repos.Star.Update(&payload)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if star == nil {
		utils.NotFound(c, "Star to update not found")
		return
	}
	c.JSON(http.StatusOK, star)
}

// DeleteStar 删除明星，返回被删除的记录
func (h *Handler) DeleteStar(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	star, err := h.Repos.Star.Delete(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if star == nil {
		utils.NotFound(c, "Star to delete not found")
		return
	}
	c.JSON(http.StatusOK, star)
}

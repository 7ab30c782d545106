package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/cinedb/internal/model"
	"github.com/user/cinedb/internal/repository"
	"github.com/user/cinedb/internal/utils"
)

// CreateMovie 创建电影，请求体不含 ID，返回带新 ID 的记录
func (h *Handler) CreateMovie(c *gin.Context) {
	var payload model.MovieCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	movie, err := h.Repos.Movie.Create(&payload)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, movie)
}

// UpdateMovieDirector 设置电影导演
// mid（查询参数）: 电影 ID；sid（查询参数）: 导演的明星 ID
func (h *Handler) UpdateMovieDirector(c *gin.Context) {
	mid, ok := queryInt(c, "mid")
	if !ok {
		return
	}
	sid, ok := queryInt(c, "sid")
	if !ok {
		return
	}

	detail, err := h.Repos.Movie.SetDirector(mid, sid)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if detail == nil {
		utils.NotFound(c, "Movie or Star not found")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// AddMovieActor 向电影追加一个演员
// mid（查询参数）: 电影 ID；sid（查询参数）: 要加入 movie.actors 的明星 ID
func (h *Handler) AddMovieActor(c *gin.Context) {
	mid, ok := queryInt(c, "mid")
	if !ok {
		return
	}
	sid, ok := queryInt(c, "sid")
	if !ok {
		return
	}

	detail, err := h.Repos.Movie.AddActor(mid, sid)
	if errors.Is(err, repository.ErrDuplicateActor) {
		utils.NotFound(c, "Star already in actors")
		return
	}
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if detail == nil {
		utils.NotFound(c, "Movie or Star not found")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateMovieActors 整体替换电影的演员列表
// mid（查询参数）: 电影 ID；请求体: 明星 ID 数组
func (h *Handler) UpdateMovieActors(c *gin.Context) {
	mid, ok := queryInt(c, "mid")
	if !ok {
		return
	}

	var sids []int
	if err := c.ShouldBindJSON(&sids); err != nil {
		bindError(c, err)
		return
	}

	detail, err := h.Repos.Movie.ReplaceActors(mid, sids)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if detail == nil {
		utils.NotFound(c, "Movie or Star not found")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListMovies 分页列出电影，skip 默认 0，limit 默认 100
func (h *Handler) ListMovies(c *gin.Context) {
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

	movies, err := h.Repos.Movie.List(skip, limit)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, movies)
}

// GetMovie 电影详情
func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	detail, err := h.Repos.Movie.Detail(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if detail == nil {
		utils.NotFound(c, "Movie to read not found")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetMoviesByTitle 标题精确匹配
func (h *Handler) GetMoviesByTitle(c *gin.Context) {
	movies, err := h.Repos.Movie.FindByTitle(c.Query("t"))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, movies)
}

// GetMoviesByTitlePart 标题子串匹配
func (h *Handler) GetMoviesByTitlePart(c *gin.Context) {
	movies, err := h.Repos.Movie.FindByTitlePart(c.Query("t"))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, movies)
}

// GetMoviesByYear 按年份过滤
func (h *Handler) GetMoviesByYear(c *gin.Context) {
	year, ok := pathInt(c, "year")
	if !ok {
		return
	}

	movies, err := h.Repos.Movie.FindByYear(year)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, movies)
}

// GetMoviesByRangeYear 按年份闭区间过滤，ymin/ymax 可缺省
func (h *Handler) GetMoviesByRangeYear(c *gin.Context) {
	yearMin, ok := optionalQueryInt(c, "ymin")
	if !ok {
		return
	}
	yearMax, ok := optionalQueryInt(c, "ymax")
	if !ok {
		return
	}

	movies, err := h.Repos.Movie.FindByRangeYear(yearMin, yearMax)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, movies)
}

// GetMoviesByTitleYear 标题与年份合取过滤
func (h *Handler) GetMoviesByTitleYear(c *gin.Context) {
	year, ok := queryInt(c, "y")
	if !ok {
		return
	}

	movies, err := h.Repos.Movie.FindByTitleYear(c.Query("t"), year)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, movies)
}

// GetMoviesCount 电影总数
func (h *Handler) GetMoviesCount(c *gin.Context) {
	count, err := h.Repos.Movie.Count()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, count)
}

// GetMoviesCountYear 某一年份的电影数量
func (h *Handler) GetMoviesCountYear(c *gin.Context) {
	year, ok := pathInt(c, "year")
	if !ok {
		return
	}

	count, err := h.Repos.Movie.CountByYear(year)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, count)
}

// GetMoviesCountByYear 每个年份的电影数量
func (h *Handler) GetMoviesCountByYear(c *gin.Context) {
	rows, err := h.Repos.Movie.CountGroupByYear()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetMoviesStatsTimeByYear 按年份的时长聚合
func (h *Handler) GetMoviesStatsTimeByYear(c *gin.Context) {
	rows, err := h.Repos.Movie.StatsTimeByYear()
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetMoviesByDirector 导演姓名后缀匹配
func (h *Handler) GetMoviesByDirector(c *gin.Context) {
	movies, err := h.Repos.Movie.FindByDirectorEndname(c.Query("n"))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, movies)
}

// GetMoviesByActor 演员姓名后缀匹配
func (h *Handler) GetMoviesByActor(c *gin.Context) {
	movies, err := h.Repos.Movie.FindByActorEndname(c.Query("n"))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, movies)
}

// UpdateMovie 全量替换电影字段（按 ID 定位）
func (h *Handler) UpdateMovie(c *gin.Context) {
	var payload model.Movie
	if err := c.ShouldBindJSON(&payload); err != nil {
		bindError(c, err)
		return
	}

	movie, err := h.Repos.Movie.Update(&payload)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if movie == nil {
		utils.NotFound(c, "Movie to update not found")
		return
	}
	c.JSON(http.StatusOK, movie)
}

// DeleteMovie 删除电影，返回被删除的记录
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	movie, err := h.Repos.Movie.Delete(id)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	if movie == nil {
		utils.NotFound(c, "Movie to delete not found")
		return
	}
	c.JSON(http.StatusOK, movie)
}

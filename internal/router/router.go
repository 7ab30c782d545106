package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/cinedb/internal/handler"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 电影 ====================
	movies := r.Group("/movies")
	{
		movies.POST("/", h.CreateMovie)
		movies.PUT("/director/", h.UpdateMovieDirector)
		movies.POST("/actor/", h.AddMovieActor)
		movies.PUT("/actors/", h.UpdateMovieActors)

		movies.GET("/", h.ListMovies)
		movies.GET("/by_id/:id", h.GetMovie)
		movies.GET("/by_title", h.GetMoviesByTitle)
		movies.GET("/by_title_part", h.GetMoviesByTitlePart)
		movies.GET("/by_year/:year", h.GetMoviesByYear)
		movies.GET("/by_range_year", h.GetMoviesByRangeYear)
		movies.GET("/by_title_year", h.GetMoviesByTitleYear)
		movies.GET("/by_director", h.GetMoviesByDirector)
		movies.GET("/by_actor", h.GetMoviesByActor)
		movies.GET("/count", h.GetMoviesCount)
		movies.GET("/count/:year", h.GetMoviesCountYear)
		movies.GET("/count_by_year", h.GetMoviesCountByYear)
		movies.GET("/stats_time_by_year", h.GetMoviesStatsTimeByYear)

		movies.PUT("/", h.UpdateMovie)
		movies.DELETE("/:id", h.DeleteMovie)
	}

	// ==================== 明星 ====================
	stars := r.Group("/stars")
	{
		stars.GET("", h.ListStars)
		stars.GET("/by_id/:id", h.GetStar)
		stars.GET("/by_name", h.GetStarsByName)
		stars.GET("/by_endname", h.GetStarsByEndname)
		stars.GET("/by_birthyear/:year", h.GetStarsByBirthyear)
		stars.GET("/count", h.GetStarsCount)
		stars.GET("/by_movie_directed/:movie_id", h.GetStarDirectorOfMovie)
		stars.GET("/by_movie_directed_title/", h.GetStarsDirectorByMovieTitle)
		stars.GET("/actors_by_movie_title", h.GetActorsByMovieTitle)
		stars.GET("/stats_movie_by_director", h.GetStatsMovieByDirector)
		stars.GET("/stats_movie_by_actor", h.GetStatsMovieByActor)

		stars.POST("/", h.CreateStar)
		stars.PUT("/", h.UpdateStar)
		stars.DELETE("/:id", h.DeleteStar)
	}
}

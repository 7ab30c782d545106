package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinedb/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// :memory: 下每个新连接都是一个独立的空库，限制为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func intp(v int) *int {
	return &v
}

func createMovie(t *testing.T, r *MovieRepository, title string, year int, duration *int) *model.Movie {
	t.Helper()
	movie, err := r.Create(&model.MovieCreate{Title: title, Year: year, Duration: duration})
	require.NoError(t, err)
	require.NotNil(t, movie)
	return movie
}

func createStar(t *testing.T, db *gorm.DB, name string, birthyear *int) *model.Star {
	t.Helper()
	star, err := NewStarRepository(db).Create(&model.StarCreate{Name: name, Birthyear: birthyear})
	require.NoError(t, err)
	require.NotNil(t, star)
	return star
}

func TestMovieCreateAssignsStableID(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	first := createMovie(t, r, "Dune", 2021, intp(155))
	second := createMovie(t, r, "Arrival", 2016, intp(116))

	assert.NotZero(t, first.ID)
	assert.NotZero(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)

	// 再次查找返回同一条记录
	found, err := r.FindByID(first.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)
	assert.Equal(t, "Dune", found.Title)
	assert.Equal(t, 2021, found.Year)
}

func TestMovieFindByIDAbsent(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	movie, err := r.FindByID(42)
	require.NoError(t, err)
	assert.Nil(t, movie)
}

func TestMovieDelete(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	movie := createMovie(t, r, "Dune", 2021, nil)

	deleted, err := r.Delete(movie.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, movie.ID, deleted.ID)

	// 删除后查找返回缺失
	found, err := r.FindByID(movie.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// 再次删除也是缺失
	again, err := r.Delete(movie.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestMovieDeleteCascadesActors(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	movie := createMovie(t, r, "Dune", 2021, nil)
	star := createStar(t, db, "Timothee Chalamet", intp(1995))

	_, err := r.AddActor(movie.ID, star.ID)
	require.NoError(t, err)

	_, err = r.Delete(movie.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.MovieActor{}).Where("movie_id = ?", movie.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMovieListPagination(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	for i := 0; i < 5; i++ {
		createMovie(t, r, "Movie", 2000+i, nil)
	}

	all, err := r.List(0, 100)
	require.NoError(t, err)
	require.Len(t, all, 5)

	page, err := r.List(2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	// 排序稳定：分页结果与整体列表对应
	assert.Equal(t, all[2].ID, page[0].ID)
	assert.Equal(t, all[3].ID, page[1].ID)
}

func TestMovieFindByTitleAndPart(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	createMovie(t, r, "Dune", 2021, nil)
	createMovie(t, r, "Dune: Part Two", 2024, nil)
	createMovie(t, r, "Arrival", 2016, nil)

	exact, err := r.FindByTitle("Dune")
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "Dune", exact[0].Title)

	part, err := r.FindByTitlePart("Dune")
	require.NoError(t, err)
	assert.Len(t, part, 2)

	none, err := r.FindByTitle("Mulan")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMovieFindByYear(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	createMovie(t, r, "Dune", 2021, nil)
	createMovie(t, r, "The French Dispatch", 2021, nil)
	createMovie(t, r, "Arrival", 2016, nil)

	movies, err := r.FindByYear(2021)
	require.NoError(t, err)
	assert.Len(t, movies, 2)

	both, err := r.FindByTitleYear("Dune", 2021)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Dune", both[0].Title)

	mismatch, err := r.FindByTitleYear("Dune", 2016)
	require.NoError(t, err)
	assert.Empty(t, mismatch)
}

func TestMovieFindByRangeYear(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	createMovie(t, r, "Arrival", 2016, nil)
	createMovie(t, r, "Gladiator", 2000, nil)
	createMovie(t, r, "Dune", 2021, nil)

	// 两端都缺省：全部
	all, err := r.FindByRangeYear(nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// 闭区间单点
	only2000, err := r.FindByRangeYear(intp(2000), intp(2000))
	require.NoError(t, err)
	require.Len(t, only2000, 1)
	assert.Equal(t, 2000, only2000[0].Year)

	// 只有下界
	from2016, err := r.FindByRangeYear(intp(2016), nil)
	require.NoError(t, err)
	assert.Len(t, from2016, 2)

	// 只有上界
	until2016, err := r.FindByRangeYear(nil, intp(2016))
	require.NoError(t, err)
	assert.Len(t, until2016, 2)
}

func TestMovieCounts(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	createMovie(t, r, "Arrival", 2016, nil)
	createMovie(t, r, "Dune", 2021, nil)
	createMovie(t, r, "The French Dispatch", 2021, nil)

	total, err := r.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	in2021, err := r.CountByYear(2021)
	require.NoError(t, err)
	assert.Equal(t, int64(2), in2021)

	in1999, err := r.CountByYear(1999)
	require.NoError(t, err)
	assert.Zero(t, in1999)
}

func TestMovieCountGroupByYearSumsToTotal(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	createMovie(t, r, "Gladiator", 2000, nil)
	createMovie(t, r, "Arrival", 2016, nil)
	createMovie(t, r, "Dune", 2021, nil)
	createMovie(t, r, "The French Dispatch", 2021, nil)

	rows, err := r.CountGroupByYear()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// 按年份升序
	assert.Equal(t, 2000, rows[0].Year)
	assert.Equal(t, 2016, rows[1].Year)
	assert.Equal(t, 2021, rows[2].Year)
	assert.Equal(t, int64(2), rows[2].Count)

	var sum int64
	for _, row := range rows {
		sum += row.Count
	}
	total, err := r.Count()
	require.NoError(t, err)
	assert.Equal(t, total, sum)
}

func TestMovieStatsTimeByYear(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	createMovie(t, r, "Dune", 2021, intp(155))
	createMovie(t, r, "The French Dispatch", 2021, intp(107))
	createMovie(t, r, "Untimed", 1999, nil)

	rows, err := r.StatsTimeByYear()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// 该年所有时长为空时聚合字段为空
	assert.Equal(t, 1999, rows[0].Year)
	assert.Equal(t, int64(1), rows[0].Count)
	assert.Nil(t, rows[0].MinDuration)
	assert.Nil(t, rows[0].AvgDuration)

	assert.Equal(t, 2021, rows[1].Year)
	assert.Equal(t, int64(2), rows[1].Count)
	require.NotNil(t, rows[1].MinDuration)
	require.NotNil(t, rows[1].MaxDuration)
	require.NotNil(t, rows[1].AvgDuration)
	assert.Equal(t, 107, *rows[1].MinDuration)
	assert.Equal(t, 155, *rows[1].MaxDuration)
	assert.InDelta(t, 131.0, *rows[1].AvgDuration, 0.001)
}

func TestMovieUpdate(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	movie := createMovie(t, r, "Dune", 2020, nil)

	updated, err := r.Update(&model.Movie{ID: movie.ID, Title: "Dune", Year: 2021, Duration: intp(155)})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, movie.ID, updated.ID)
	assert.Equal(t, 2021, updated.Year)
	require.NotNil(t, updated.Duration)
	assert.Equal(t, 155, *updated.Duration)

	// 未知 ID 返回缺失
	missing, err := r.Update(&model.Movie{ID: 999, Title: "Nope", Year: 2022})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMovieSetDirector(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	movie := createMovie(t, r, "Dune", 2021, nil)
	villeneuve := createStar(t, db, "Denis Villeneuve", intp(1967))

	detail, err := r.SetDirector(movie.ID, villeneuve.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	require.NotNil(t, detail.Director)
	assert.Equal(t, "Denis Villeneuve", detail.Director.Name)

	// 覆盖原有导演
	nolan := createStar(t, db, "Christopher Nolan", intp(1970))
	detail, err = r.SetDirector(movie.ID, nolan.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Christopher Nolan", detail.Director.Name)

	// 电影或明星不存在
	missing, err := r.SetDirector(999, villeneuve.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = r.SetDirector(movie.ID, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMovieAddActorRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	movie := createMovie(t, r, "Dune", 2021, nil)
	star := createStar(t, db, "Denis Villeneuve", nil)

	detail, err := r.AddActor(movie.ID, star.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Len(t, detail.Actors, 1)

	// 第二次追加同一演员：返回重复信号，演员数量不变
	dup, err := r.AddActor(movie.ID, star.ID)
	assert.ErrorIs(t, err, ErrDuplicateActor)
	assert.Nil(t, dup)

	after, err := r.Detail(movie.ID)
	require.NoError(t, err)
	assert.Len(t, after.Actors, 1)

	// 电影或明星不存在
	missing, err := r.AddActor(999, star.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = r.AddActor(movie.ID, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMovieReplaceActors(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	movie := createMovie(t, r, "Dune", 2021, nil)
	first := createStar(t, db, "Timothee Chalamet", nil)
	second := createStar(t, db, "Rebecca Ferguson", nil)

	detail, err := r.ReplaceActors(movie.ID, []int{first.ID, second.ID})
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Len(t, detail.Actors, 2)

	// 任一明星不存在则整体失败
	missing, err := r.ReplaceActors(movie.ID, []int{first.ID, 999})
	require.NoError(t, err)
	assert.Nil(t, missing)

	after, err := r.Detail(movie.ID)
	require.NoError(t, err)
	assert.Len(t, after.Actors, 2)

	// 空列表清空演员
	cleared, err := r.ReplaceActors(movie.ID, []int{})
	require.NoError(t, err)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Actors)
}

func TestMovieFindByDirectorEndname(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	dune := createMovie(t, r, "Dune", 2021, nil)
	arrival := createMovie(t, r, "Arrival", 2016, nil)
	createMovie(t, r, "No Director", 2000, nil)

	villeneuve := createStar(t, db, "Denis Villeneuve", nil)
	_, err := r.SetDirector(dune.ID, villeneuve.ID)
	require.NoError(t, err)
	_, err = r.SetDirector(arrival.ID, villeneuve.ID)
	require.NoError(t, err)

	movies, err := r.FindByDirectorEndname("Villeneuve")
	require.NoError(t, err)
	assert.Len(t, movies, 2)

	none, err := r.FindByDirectorEndname("Nolan")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMovieFindByActorEndname(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	dune := createMovie(t, r, "Dune", 2021, nil)
	part2 := createMovie(t, r, "Dune: Part Two", 2024, nil)
	chalamet := createStar(t, db, "Timothee Chalamet", nil)
	ferguson := createStar(t, db, "Rebecca Ferguson", nil)

	_, err := r.AddActor(dune.ID, chalamet.ID)
	require.NoError(t, err)
	_, err = r.AddActor(dune.ID, ferguson.ID)
	require.NoError(t, err)
	_, err = r.AddActor(part2.ID, chalamet.ID)
	require.NoError(t, err)

	movies, err := r.FindByActorEndname("Chalamet")
	require.NoError(t, err)
	assert.Len(t, movies, 2)

	movies, err = r.FindByActorEndname("Ferguson")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, dune.ID, movies[0].ID)
}

func TestMovieDetailAssemblesRelations(t *testing.T) {
	db := newTestDB(t)
	r := NewMovieRepository(db)

	movie := createMovie(t, r, "Dune", 2021, intp(155))
	villeneuve := createStar(t, db, "Denis Villeneuve", nil)
	chalamet := createStar(t, db, "Timothee Chalamet", nil)

	_, err := r.SetDirector(movie.ID, villeneuve.ID)
	require.NoError(t, err)
	_, err = r.AddActor(movie.ID, chalamet.ID)
	require.NoError(t, err)

	detail, err := r.Detail(movie.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "Dune", detail.Title)
	require.NotNil(t, detail.Director)
	assert.Equal(t, "Denis Villeneuve", detail.Director.Name)
	require.Len(t, detail.Actors, 1)
	assert.Equal(t, "Timothee Chalamet", detail.Actors[0].Name)

	// 不存在的电影
	missing, err := r.Detail(999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

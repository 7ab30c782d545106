package repository

import (
	"errors"

	"github.com/user/cinedb/internal/model"
	"gorm.io/gorm"
)

// ErrDuplicateActor 演员已经在电影的演员列表中。
// 对外依然映射为 404，但内部与“不存在”区分开，方便调用方和测试判断。
var ErrDuplicateActor = errors.New("star already in actors")

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create 创建电影，ID 由数据库生成
func (r *MovieRepository) Create(payload *model.MovieCreate) (*model.Movie, error) {
	movie := &model.Movie{
		Title:    payload.Title,
		Year:     payload.Year,
		Duration: payload.Duration,
	}
	if err := r.db.Create(movie).Error; err != nil {
		return nil, err
	}
	return movie, nil
}

// FindByID 根据 ID 查找电影，不存在时返回 (nil, nil)
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

// Detail 电影详情，导演和演员通过显式 join 查询组装
func (r *MovieRepository) Detail(id int) (*model.MovieDetail, error) {
	movie, err := r.FindByID(id)
	if err != nil || movie == nil {
		return nil, err
	}

	detail := &model.MovieDetail{Movie: *movie, Actors: []model.Star{}}

	if movie.DirectorID != nil {
		var director model.Star
		err := r.db.First(&director, *movie.DirectorID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			detail.Director = &director
		}
	}

	err = r.db.Select("stars.*").
		Joins("JOIN movies_actors ON movies_actors.star_id = stars.id").
		Where("movies_actors.movie_id = ?", id).
		Order("stars.id").
		Find(&detail.Actors).Error
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// List 分页列出电影，按 ID 升序保证分页稳定
func (r *MovieRepository) List(skip, limit int) ([]model.Movie, error) {
	movies := []model.Movie{}
	err := r.db.Order("id").Offset(skip).Limit(limit).Find(&movies).Error
	return movies, err
}

// FindByTitle 标题精确匹配（区分大小写）
func (r *MovieRepository) FindByTitle(title string) ([]model.Movie, error) {
	movies := []model.Movie{}
	err := r.db.Where("title = ?", title).Order("id").Find(&movies).Error
	return movies, err
}

// FindByTitlePart 标题子串匹配（区分大小写，与 FindByTitle 规则一致）
func (r *MovieRepository) FindByTitlePart(part string) ([]model.Movie, error) {
	movies := []model.Movie{}
	err := r.db.Where("title LIKE ?", "%"+part+"%").Order("id").Find(&movies).Error
	return movies, err
}

// FindByYear 按年份精确过滤
func (r *MovieRepository) FindByYear(year int) ([]model.Movie, error) {
	movies := []model.Movie{}
	err := r.db.Where("year = ?", year).Order("id").Find(&movies).Error
	return movies, err
}

// FindByRangeYear 年份闭区间过滤，任一边界可缺省
func (r *MovieRepository) FindByRangeYear(yearMin, yearMax *int) ([]model.Movie, error) {
	query := r.db.Order("id")
	if yearMin != nil {
		query = query.Where("year >= ?", *yearMin)
	}
	if yearMax != nil {
		query = query.Where("year <= ?", *yearMax)
	}
	movies := []model.Movie{}
	err := query.Find(&movies).Error
	return movies, err
}

// FindByTitleYear 标题与年份的合取过滤
func (r *MovieRepository) FindByTitleYear(title string, year int) ([]model.Movie, error) {
	movies := []model.Movie{}
	err := r.db.Where("title = ? AND year = ?", title, year).Order("id").Find(&movies).Error
	return movies, err
}

// Count 电影总数
func (r *MovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Count(&count).Error
	return count, err
}

// CountByYear 某一年份的电影数量
func (r *MovieRepository) CountByYear(year int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Where("year = ?", year).Count(&count).Error
	return count, err
}

// CountGroupByYear 每个年份的电影数量，按年份升序
func (r *MovieRepository) CountGroupByYear() ([]model.YearCount, error) {
	rows := []model.YearCount{}
	err := r.db.Model(&model.Movie{}).
		Select("year, COUNT(*) AS count").
		Group("year").
		Order("year").
		Scan(&rows).Error
	return rows, err
}

// StatsTimeByYear 按年份的时长聚合，平均值为浮点数
func (r *MovieRepository) StatsTimeByYear() ([]model.YearTimeStats, error) {
	rows := []model.YearTimeStats{}
	err := r.db.Model(&model.Movie{}).
		Select("year, COUNT(*) AS count, " +
			"MIN(duration) AS min_duration, " +
			"MAX(duration) AS max_duration, " +
			"AVG(duration) AS avg_duration").
		Group("year").
		Order("year").
		Scan(&rows).Error
	return rows, err
}

// FindByDirectorEndname 导演姓名后缀匹配
func (r *MovieRepository) FindByDirectorEndname(endname string) ([]model.Movie, error) {
	movies := []model.Movie{}
	err := r.db.Select("movies.*").
		Joins("JOIN stars ON stars.id = movies.director_id").
		Where("stars.name LIKE ?", "%"+endname).
		Order("movies.id").
		Find(&movies).Error
	return movies, err
}

// FindByActorEndname 任一演员姓名后缀匹配
func (r *MovieRepository) FindByActorEndname(endname string) ([]model.Movie, error) {
	sub := r.db.Model(&model.MovieActor{}).
		Select("movies_actors.movie_id").
		Joins("JOIN stars ON stars.id = movies_actors.star_id").
		Where("stars.name LIKE ?", "%"+endname)

	movies := []model.Movie{}
	err := r.db.Where("id IN (?)", sub).Order("id").Find(&movies).Error
	return movies, err
}

// Update 全量替换电影的 title/year/duration，ID 不可变
func (r *MovieRepository) Update(movie *model.Movie) (*model.Movie, error) {
	existing, err := r.FindByID(movie.ID)
	if err != nil || existing == nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":    movie.Title,
		"year":     movie.Year,
		"duration": movie.Duration,
	}
	if err := r.db.Model(existing).Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.FindByID(movie.ID)
}

// SetDirector 设置电影导演，覆盖原有导演；电影或明星不存在时返回 (nil, nil)
func (r *MovieRepository) SetDirector(movieID, starID int) (*model.MovieDetail, error) {
	movie, err := r.FindByID(movieID)
	if err != nil || movie == nil {
		return nil, err
	}

	var star model.Star
	err = r.db.First(&star, starID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.Model(movie).Update("director_id", star.ID).Error; err != nil {
		return nil, err
	}

	return r.Detail(movieID)
}

// AddActor 向电影的演员列表追加一个明星。
// 已存在时返回 ErrDuplicateActor，电影或明星不存在时返回 (nil, nil)。
func (r *MovieRepository) AddActor(movieID, starID int) (*model.MovieDetail, error) {
	movie, err := r.FindByID(movieID)
	if err != nil || movie == nil {
		return nil, err
	}

	var star model.Star
	err = r.db.First(&star, starID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var count int64
	err = r.db.Model(&model.MovieActor{}).
		Where("movie_id = ? AND star_id = ?", movieID, starID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateActor
	}

	if err := r.db.Create(&model.MovieActor{MovieID: movieID, StarID: starID}).Error; err != nil {
		return nil, err
	}

	return r.Detail(movieID)
}

// ReplaceActors 原子替换电影的全部演员；电影或任一明星不存在时返回 (nil, nil)
func (r *MovieRepository) ReplaceActors(movieID int, starIDs []int) (*model.MovieDetail, error) {
	movie, err := r.FindByID(movieID)
	if err != nil || movie == nil {
		return nil, err
	}

	// 去重并保持顺序
	seen := make(map[int]bool, len(starIDs))
	unique := make([]int, 0, len(starIDs))
	for _, sid := range starIDs {
		if !seen[sid] {
			seen[sid] = true
			unique = append(unique, sid)
		}
	}

	if len(unique) > 0 {
		var count int64
		err := r.db.Model(&model.Star{}).Where("id IN ?", unique).Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count != int64(len(unique)) {
			return nil, nil
		}
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", movieID).Delete(&model.MovieActor{}).Error; err != nil {
			return err
		}
		for _, sid := range unique {
			if err := tx.Create(&model.MovieActor{MovieID: movieID, StarID: sid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.Detail(movieID)
}

// Delete 删除电影并级联删除演员关联，返回被删除的记录
func (r *MovieRepository) Delete(id int) (*model.Movie, error) {
	movie, err := r.FindByID(id)
	if err != nil || movie == nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", id).Delete(&model.MovieActor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Movie{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	return movie, nil
}

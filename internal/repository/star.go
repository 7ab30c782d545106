package repository

import (
	"errors"

	"github.com/user/cinedb/internal/model"
	"gorm.io/gorm"
)

type StarRepository struct {
	db *gorm.DB
}

func NewStarRepository(db *gorm.DB) *StarRepository {
	return &StarRepository{db: db}
}

// Create 创建明星，ID 由数据库生成
func (r *StarRepository) Create(payload *model.StarCreate) (*model.Star, error) {
	star := &model.Star{
		Name:      payload.Name,
		Birthyear: payload.Birthyear,
	}
	if err := r.db.Create(star).Error; err != nil {
		return nil, err
	}
	return star, nil
}

// FindByID 根据 ID 查找明星，不存在时返回 (nil, nil)
func (r *StarRepository) FindByID(id int) (*model.Star, error) {
	var star model.Star
	err := r.db.First(&star, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &star, nil
}

// List 分页列出明星，按 ID 升序
func (r *StarRepository) List(skip, limit int) ([]model.Star, error) {
	stars := []model.Star{}
	err := r.db.Order("id").Offset(skip).Limit(limit).Find(&stars).Error
	return stars, err
}

// FindByName 姓名精确匹配
func (r *StarRepository) FindByName(name string) ([]model.Star, error) {
	stars := []model.Star{}
	err := r.db.Where("name = ?", name).Order("id").Find(&stars).Error
	return stars, err
}

// FindByEndname 姓名后缀匹配
func (r *StarRepository) FindByEndname(endname string) ([]model.Star, error) {
	stars := []model.Star{}
	err := r.db.Where("name LIKE ?", "%"+endname).Order("id").Find(&stars).Error
	return stars, err
}

// FindByBirthyear 按出生年份过滤
func (r *StarRepository) FindByBirthyear(year int) ([]model.Star, error) {
	stars := []model.Star{}
	err := r.db.Where("birthyear = ?", year).Order("id").Find(&stars).Error
	return stars, err
}

// Count 明星总数
func (r *StarRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Star{}).Count(&count).Error
	return count, err
}

// Update 全量替换明星的 name/birthyear，ID 不可变
func (r *StarRepository) Update(star *model.Star) (*model.Star, error) {
	existing, err := r.FindByID(star.ID)
	if err != nil || existing == nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":      star.Name,
		"birthyear": star.Birthyear,
	}
	if err := r.db.Model(existing).Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.FindByID(star.ID)
}

// Delete 删除明星并级联清理：演员关联删除，相关电影的导演引用置空
func (r *StarRepository) Delete(id int) (*model.Star, error) {
	star, err := r.FindByID(id)
	if err != nil || star == nil {
		return nil, err
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("star_id = ?", id).Delete(&model.MovieActor{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Movie{}).
			Where("director_id = ?", id).
			Update("director_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Star{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	return star, nil
}

// DirectorOfMovie 某部电影的导演。
// 电影不存在和电影没有导演都返回 (nil, nil)，两种情况无法区分（沿用原有行为）。
func (r *StarRepository) DirectorOfMovie(movieID int) (*model.Star, error) {
	var movie model.Movie
	err := r.db.First(&movie, movieID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if movie.DirectorID == nil {
		return nil, nil
	}

	var star model.Star
	err = r.db.First(&star, *movie.DirectorID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &star, nil
}

// DirectorsByMovieTitle 标题匹配的所有电影的导演
func (r *StarRepository) DirectorsByMovieTitle(title string) ([]model.Star, error) {
	stars := []model.Star{}
	err := r.db.Select("stars.*").
		Joins("JOIN movies ON movies.director_id = stars.id").
		Where("movies.title = ?", title).
		Order("movies.id").
		Find(&stars).Error
	return stars, err
}

// ActorsByMovieTitle 标题匹配的每部电影的完整演员列表，每部电影一个列表
func (r *StarRepository) ActorsByMovieTitle(title string) ([][]model.Star, error) {
	movies := []model.Movie{}
	err := r.db.Where("title = ?", title).Order("id").Find(&movies).Error
	if err != nil {
		return nil, err
	}

	result := make([][]model.Star, 0, len(movies))
	for _, movie := range movies {
		actors := []model.Star{}
		err := r.db.Select("stars.*").
			Joins("JOIN movies_actors ON movies_actors.star_id = stars.id").
			Where("movies_actors.movie_id = ?", movie.ID).
			Order("stars.id").
			Find(&actors).Error
		if err != nil {
			return nil, err
		}
		result = append(result, actors)
	}
	return result, nil
}

// StatsByDirector 按导演聚合：电影数量、最早和最晚年份，只保留数量达到下限的导演
func (r *StarRepository) StatsByDirector(minCount int) ([]model.StarStats, error) {
	rows := []model.StarStats{}
	err := r.db.Model(&model.Star{}).
		Select("stars.id, stars.name, COUNT(*) AS movie_count, " +
			"MIN(movies.year) AS first_year, MAX(movies.year) AS last_year").
		Joins("JOIN movies ON movies.director_id = stars.id").
		Group("stars.id, stars.name").
		Having("COUNT(*) >= ?", minCount).
		Order("movie_count DESC, stars.id").
		Scan(&rows).Error
	return rows, err
}

// StatsByActor 按演员聚合，口径与 StatsByDirector 相同
func (r *StarRepository) StatsByActor(minCount int) ([]model.StarStats, error) {
	rows := []model.StarStats{}
	err := r.db.Model(&model.Star{}).
		Select("stars.id, stars.name, COUNT(*) AS movie_count, " +
			"MIN(movies.year) AS first_year, MAX(movies.year) AS last_year").
		Joins("JOIN movies_actors ON movies_actors.star_id = stars.id").
		Joins("JOIN movies ON movies.id = movies_actors.movie_id").
		Group("stars.id, stars.name").
		Having("COUNT(*) >= ?", minCount).
		Order("movie_count DESC, stars.id").
		Scan(&rows).Error
	return rows, err
}

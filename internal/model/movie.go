package model

// Movie 电影模型
type Movie struct {
	ID         int    `json:"id" gorm:"primaryKey"`
	Title      string `json:"title" gorm:"not null;index"`
	Year       int    `json:"year" gorm:"index"`
	Duration   *int   `json:"duration,omitempty"`
	DirectorID *int   `json:"-" gorm:"index"`
}

func (Movie) TableName() string {
	return "movies"
}

// MovieActor 电影-演员关联（多对多，联合主键保证同一演员只出现一次）
type MovieActor struct {
	MovieID int `json:"movie_id" gorm:"primaryKey;autoIncrement:false"`
	StarID  int `json:"star_id" gorm:"primaryKey;autoIncrement:false"`
}

func (MovieActor) TableName() string {
	return "movies_actors"
}

// MovieDetail 电影详情（导演和演员由显式查询组装，不做懒加载）
type MovieDetail struct {
	Movie
	Director *Star  `json:"director"`
	Actors   []Star `json:"actors"`
}

// MovieCreate 创建电影请求体（不含 ID，ID 由数据库生成）
type MovieCreate struct {
	Title    string `json:"title" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	Duration *int   `json:"duration"`
}

// YearCount 某一年份的电影数量
type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// YearTimeStats 某一年份的时长聚合（该年所有时长为空时聚合字段为 null）
type YearTimeStats struct {
	Year        int      `json:"year"`
	Count       int64    `json:"count"`
	MinDuration *int     `json:"min_duration"`
	MaxDuration *int     `json:"max_duration"`
	AvgDuration *float64 `json:"avg_duration"`
}

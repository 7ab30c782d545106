package model

// Star 明星模型（演员/导演）
type Star struct {
	ID        int    `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null;index"`
	Birthyear *int   `json:"birthyear,omitempty"`
}

func (Star) TableName() string {
	return "stars"
}

// StarCreate 创建明星请求体（不含 ID）
type StarCreate struct {
	Name      string `json:"name" binding:"required"`
	Birthyear *int   `json:"birthyear"`
}

// StarStats 按导演或演员维度的电影聚合
type StarStats struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	MovieCount int64  `json:"movie_count"`
	FirstYear  int    `json:"first_year"`
	LastYear   int    `json:"last_year"`
}

package entity

import "time"

// Todo is a single item of a user's todo list.
// A non-nil DeletedAt marks the record as soft deleted; CompletedAt is independent of it.
type Todo struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string     `json:"userId" gorm:"column:user_id;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time  `json:"updatedAt" gorm:"autoUpdateTime:false"`
	DeletedAt   *time.Time `json:"deletedAt" gorm:"index"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (Todo) TableName() string {
	return "todos"
}

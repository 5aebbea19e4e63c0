package project

import "time"

type Project struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	Status      string    `gorm:"column:status;default:active"`
	// JSON-encoded list of allowed activity types; empty means any.
	ActivityTypes string    `gorm:"column:activity_types;default:'[]'"`
	Billable      bool      `gorm:"column:billable;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}

package employee

import "time"

type Employee struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;uniqueIndex;not null"`
	UserID     *int64    `gorm:"column:user_id;uniqueIndex"`
	ManagerID  *int64    `gorm:"column:manager_id;index"`
	FirstName  string    `gorm:"column:first_name;not null"`
	LastName   string    `gorm:"column:last_name;not null"`
	Email      string    `gorm:"column:email;uniqueIndex;not null"`
	Phone      string    `gorm:"column:phone"`
	Role       string    `gorm:"column:role"`
	Department string    `gorm:"column:department"`
	HireDate   time.Time `gorm:"column:hire_date;type:date"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

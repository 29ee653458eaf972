package company

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Company struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	EmployeeIDs pq.StringArray `gorm:"column:employee_ids;type:text[];not null"`
	AdminID     *uuid.UUID     `gorm:"column:admin_id;type:uuid"`
	LogoKey     string         `gorm:"column:logo_key;not null"`
	CoverKey    string         `gorm:"column:cover_key;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Company) TableName() string {
	return "companies"
}

// HasMembers reports whether any employee id is still listed.
func (c *Company) HasMembers() bool {
	return len(c.EmployeeIDs) > 0
}

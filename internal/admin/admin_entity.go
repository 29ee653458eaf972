package admin

import (
	"time"

	"go-directory/internal/domain"

	"github.com/google/uuid"
)

type Admin struct {
	ID                uuid.UUID   `gorm:"column:id;type:uuid;primaryKey"`
	Email             string      `gorm:"column:email;not null"`
	PasswordHash      string      `gorm:"column:password_hash;not null"`
	Role              domain.Role `gorm:"column:role;type:text;not null"`
	CompanyID         *uuid.UUID  `gorm:"column:company_id;type:uuid"`
	EmployeeSeatLimit int         `gorm:"column:employee_seat_limit;not null"`
	CreatedAt         time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (Admin) TableName() string {
	return "admins"
}

// Principal is the identity carried in this admin's session token.
func (a *Admin) Principal() domain.Principal {
	return domain.Principal{SubjectID: a.ID, Role: a.Role, CompanyID: a.CompanyID}
}

package user

import (
	"time"

	"go-directory/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User is an employee record. CompanyID is the authoritative tenant link,
// CompanyName a cached copy of that company's name.
type User struct {
	ID                uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Email             string         `gorm:"column:email;not null"`
	PasswordHash      string         `gorm:"column:password_hash;not null"`
	FirstName         string         `gorm:"column:first_name;not null"`
	LastName          string         `gorm:"column:last_name"`
	Phone             string         `gorm:"column:phone;not null"`
	Position          string         `gorm:"column:position;not null"`
	CompanyName       string         `gorm:"column:company_name"`
	CompanyID         *uuid.UUID     `gorm:"column:company_id;type:uuid"`
	AvatarKey         string         `gorm:"column:avatar_key"`
	CoverKey          string         `gorm:"column:cover_key"`
	Role              domain.Role    `gorm:"column:role;type:text;not null"`
	Address           string         `gorm:"column:address"`
	Website           string         `gorm:"column:website"`
	WorkingHoursStart string         `gorm:"column:working_hours_start"`
	WorkingHoursEnd   string         `gorm:"column:working_hours_end"`
	Languages         pq.StringArray `gorm:"column:languages;type:text[]"`
	Facebook          string         `gorm:"column:facebook"`
	Instagram         string         `gorm:"column:instagram"`
	XTwitter          string         `gorm:"column:x_twitter"`
	LinkedIn          string         `gorm:"column:linked_in"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// Principal is the identity carried in this employee's session token.
func (u *User) Principal() domain.Principal {
	return domain.Principal{SubjectID: u.ID, Role: domain.RoleEmployee, CompanyID: u.CompanyID}
}

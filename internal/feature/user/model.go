package user

import (
	"time"

	"users-api/internal/domain"
)

// UserModel is the SQL row of a user record.
type UserModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(32)"`
	Name      string    `gorm:"type:text;not null"`
	Email     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index;not null"`
}

func (UserModel) TableName() string { return "users" }

func (m UserModel) ToDomain() domain.User {
	return domain.User{ID: m.ID, Name: m.Name, Email: m.Email, CreatedAt: m.CreatedAt.UTC()}
}

func FromDomain(u *domain.User) UserModel {
	return UserModel{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

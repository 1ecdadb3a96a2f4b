package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Email        string    `gorm:"size:191;not null;uniqueIndex:idx_users_email;column:email" json:"email"`
	PasswordHash string    `gorm:"size:255;not null;column:password_hash" json:"-"`
	Name         string    `gorm:"size:100;column:name" json:"name"`
	Role         string    `gorm:"size:20;not null;default:customer;column:role" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Role         Role      `json:"role" gorm:"default:user"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

package models

import "time"

// User and Admin are distinct principal kinds with overlapping shape.
// Which table a login resolves against decides the role carried in the JWT.
type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"unique;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Cart      []Item `gorm:"foreignKey:CartUserID" json:"cart"`
	Orders    []Order `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"orders"`
	CreatedAt time.Time `json:"created_at"`
}

type Admin struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

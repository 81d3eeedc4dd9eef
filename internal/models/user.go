package models

// User is a row in the users table. HashedPassword never leaves the service layer.
type User struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	Email          string `gorm:"uniqueIndex;not null"`
	HashedPassword string `gorm:"not null"`
}

func (User) TableName() string { return "users" }

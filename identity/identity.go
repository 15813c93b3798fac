package identity

import (
	"time"
)

// User is a registered account. Password always holds a bcrypt hash, never
// plaintext. The reset fields are set while a password-reset flow is pending
// and cleared once the token is consumed or a newer token replaces it.
type User struct {
	ID                   string     `bson:"_id" json:"id" gorm:"primaryKey"`
	Username             string     `bson:"username" json:"username" gorm:"uniqueIndex"`
	Email                string     `bson:"email" json:"email" gorm:"uniqueIndex"`
	Password             string     `bson:"password" json:"-"`
	ResetPasswordToken   string     `bson:"resetPasswordToken,omitempty" json:"-" gorm:"index"`
	ResetPasswordExpires *time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`
	CreatedAt            time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt            time.Time  `bson:"updatedAt" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Todo is a single task-list item owned by exactly one user.
type Todo struct {
	ID          string    `bson:"_id" json:"id" gorm:"primaryKey"`
	UserID      string    `bson:"user" json:"user" gorm:"index"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Completed   bool      `bson:"completed" json:"completed"`
	CreatedAt   time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updated_at"`
}

func (Todo) TableName() string { return "todos" }

// ErrorLog is a best-effort diagnostic record of a server-side failure.
type ErrorLog struct {
	ID      string    `bson:"_id" json:"id" gorm:"primaryKey"`
	Message string    `bson:"message" json:"message"`
	Stack   string    `bson:"stack,omitempty" json:"stack,omitempty"`
	Date    time.Time `bson:"date" json:"date"`
}

func (ErrorLog) TableName() string { return "logs" }

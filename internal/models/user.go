package models

// AdminUser is an operator allowed into the back office.
type AdminUser struct {
	BaseModel
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
}

// Session is the body returned by a successful login.
type Session struct {
	Token string    `json:"token"`
	User  AdminUser `json:"user"`
}

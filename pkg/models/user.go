package model

// User exists in the schema only; no task flow reads or writes it.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"type:text;uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:text;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

package model

import "time"

// SessionModel mirrors the 'sessions' table. The opaque token is the
// primary key; expiry is enforced by the queries, not by handlers.
type SessionModel struct {
	Token       string    `gorm:"type:varchar(64);primaryKey"`
	UserID      string    `gorm:"type:varchar(32);not null;index"`
	Username    string    `gorm:"type:varchar(100);not null"`
	Avatar      string    `gorm:"type:varchar(64)"`
	AccessToken string    `gorm:"type:varchar(255);not null"`
	ExpiresAt   time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

type ResetPassword struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Token     string    `gorm:"size:255;not null;index" json:"token"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (rp *ResetPassword) Prepare() {
	rp.Email = html.EscapeString(strings.ToLower(strings.TrimSpace(rp.Email)))
	rp.CreatedAt = time.Now()
}

func (rp *ResetPassword) SaveDetails(db *gorm.DB) (*ResetPassword, error) {
	if err := db.Create(&rp).Error; err != nil {
		return nil, err
	}
	return rp, nil
}

func (rp *ResetPassword) FindByToken(db *gorm.DB, token string) (*ResetPassword, error) {
	var details ResetPassword
	if err := db.Where("token = ?", token).Take(&details).Error; err != nil {
		return nil, err
	}
	return &details, nil
}

func (rp *ResetPassword) DeleteDetails(db *gorm.DB) (int64, error) {
	result := db.Where("id = ?", rp.ID).Delete(&ResetPassword{})
	return result.RowsAffected, result.Error
}

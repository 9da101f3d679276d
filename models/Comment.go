package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID             uint      `gorm:"primary_key;autoIncrement" json:"id"`
	PostID         uint      `gorm:"not null;index" json:"-"`
	UserID         uint      `gorm:"not null;index" json:"-"`
	AuthorUsername string    `gorm:"size:255;not null" json:"author_username"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (c *Comment) Prepare() {
	c.Body = strings.TrimSpace(c.Body)
	c.CreatedAt = time.Now()
}

func (c *Comment) Validate() map[string]string {
	errorMessages := make(map[string]string)
	if c.Body == "" {
		errorMessages["Required_body"] = "Required Comment Body"
	}
	return errorMessages
}

func (c *Comment) SaveComment(db *gorm.DB) (*Comment, error) {
	if err := db.Create(&c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func FindCommentsByPost(db *gorm.DB, postID uint) ([]Comment, error) {
	var comments []Comment
	err := db.Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// parseUintID is shared by the identifier resolvers.
func parseUintID(value string) (uint, error) {
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

package models

import (
	"errors"
	"strings"
	"time"

	"github.com/twinj/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID             uint      `gorm:"primary_key;autoIncrement" json:"-"`
	PublicID       string    `gorm:"size:36;not null;uniqueIndex;column:public_id" json:"id"`
	AuthorID       uint      `gorm:"not null;index" json:"-"`
	AuthorUsername string    `gorm:"size:255;not null" json:"author_username"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	ImageURL       string    `gorm:"size:255" json:"image_url,omitempty"`
	Location       string    `gorm:"size:255" json:"location,omitempty"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(p.PublicID) == "" {
		p.PublicID = uuid.NewV4().String()
	}
	return nil
}

func (p *Post) Prepare() {
	p.Content = strings.TrimSpace(p.Content)
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
}

func (p *Post) Validate() map[string]string {
	errorMessages := make(map[string]string)
	if p.Content == "" {
		errorMessages["Required_content"] = "Required Content"
	}
	return errorMessages
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	if err := db.Create(&p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// FindRecentPosts pages through all posts, newest first. Visibility filtering
// happens in the controller, against the viewer.
func FindRecentPosts(db *gorm.DB, offset, limit int) ([]Post, error) {
	var posts []Post
	err := db.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func FindPostsByAuthor(db *gorm.DB, authorID uint) ([]Post, error) {
	var posts []Post
	err := db.Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// FindPostByIdentifier resolves a post by public id with a numeric fallback.
func FindPostByIdentifier(db *gorm.DB, identifier string) (*Post, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var post Post
	err := db.Where("public_id = ?", trimmed).Take(&post).Error
	if err == nil {
		return &post, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	numericID, parseErr := parseUintID(trimmed)
	if parseErr != nil {
		return nil, gorm.ErrRecordNotFound
	}
	if err := db.First(&post, numericID).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

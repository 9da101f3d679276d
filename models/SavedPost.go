package models

import (
	"time"

	"gorm.io/gorm"
)

type SavedPost struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_saved_posts_unique" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_saved_posts_unique" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ToggleSave saves or unsaves a post for the user. Returns true when the post
// ends up saved.
func ToggleSave(db *gorm.DB, userID, postID uint) (bool, error) {
	saved := false
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&SavedPost{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		saved = true
		return tx.Create(&SavedPost{UserID: userID, PostID: postID}).Error
	})
	return saved, err
}

// FindSavedPosts returns the user's saved posts, most recently saved first.
func FindSavedPosts(db *gorm.DB, userID uint) ([]Post, error) {
	var posts []Post
	err := db.Table("saved_posts").
		Select("posts.*").
		Joins("JOIN posts ON posts.id = saved_posts.post_id").
		Where("saved_posts.user_id = ?", userID).
		Order("saved_posts.created_at DESC, saved_posts.id DESC").
		Scan(&posts).Error
	return posts, err
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Like struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_likes_unique" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_likes_unique" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ToggleLike likes the post if the user has not liked it, unlikes otherwise.
// Returns true when the post ends up liked.
func ToggleLike(db *gorm.DB, userID, postID uint) (bool, error) {
	liked := false
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		liked = true
		return tx.Create(&Like{UserID: userID, PostID: postID}).Error
	})
	return liked, err
}

// LikerPublicIDs returns the public ids of everyone who liked the post.
func LikerPublicIDs(db *gorm.DB, postID uint) ([]string, error) {
	var ids []string
	err := db.Table("likes").
		Select("users.public_id").
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.post_id = ?", postID).
		Order("likes.id ASC").
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

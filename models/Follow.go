package models

import (
	"time"

	"gorm.io/gorm"
)

// Follow is the single relationship edge: one row means follower follows
// followed. Follower/following lists and the feed visibility check are all
// derived from this table, so the two directions can never diverge.
type Follow struct {
	ID         uint      `gorm:"primary_key;autoIncrement" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique" json:"follower_id"`
	FollowedID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// IsFollowing reports whether follower currently follows followed.
func IsFollowing(db *gorm.DB, followerID, followedID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FollowerPublicIDs returns the public ids of everyone following the user.
func FollowerPublicIDs(db *gorm.DB, userID uint) ([]string, error) {
	var ids []string
	err := db.Table("follows").
		Select("users.public_id").
		Joins("JOIN users ON users.id = follows.follower_id").
		Where("follows.followed_id = ?", userID).
		Order("follows.id ASC").
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// FollowingPublicIDs returns the public ids of everyone the user follows.
func FollowingPublicIDs(db *gorm.DB, userID uint) ([]string, error) {
	var ids []string
	err := db.Table("follows").
		Select("users.public_id").
		Joins("JOIN users ON users.id = follows.followed_id").
		Where("follows.follower_id = ?", userID).
		Order("follows.id ASC").
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// FollowerUsers loads the follower profiles for a user, newest edge first.
func FollowerUsers(db *gorm.DB, userID uint) ([]User, error) {
	var users []User
	err := db.Table("follows").
		Select("users.*").
		Joins("JOIN users ON users.id = follows.follower_id").
		Where("follows.followed_id = ?", userID).
		Order("follows.created_at DESC, follows.id DESC").
		Scan(&users).Error
	return users, err
}

// FollowingUsers loads the profiles a user follows, newest edge first.
func FollowingUsers(db *gorm.DB, userID uint) ([]User, error) {
	var users []User
	err := db.Table("follows").
		Select("users.*").
		Joins("JOIN users ON users.id = follows.followed_id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC, follows.id DESC").
		Scan(&users).Error
	return users, err
}

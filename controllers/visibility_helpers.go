package controllers

import (
	"net/http"

	"Linkup/auth"
	"Linkup/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// optionalViewerID extracts the viewer from a bearer token when one is
// present; listings stay readable without auth, they just see less.
func optionalViewerID(c *gin.Context) (uint, bool) {
	uid, err := auth.ExtractTokenID(c.Request)
	if err != nil {
		return 0, false
	}
	return uid, true
}

// isVisibleToViewer applies the feed rule for one candidate author: public
// authors are visible to everyone, private authors only to themselves and
// their accepted followers. followerOf holds the ids of private authors the
// viewer follows, precomputed for the whole listing.
func isVisibleToViewer(author *models.User, viewerID uint, hasViewer bool, followerOf map[uint]bool) bool {
	if !author.IsPrivate {
		return true
	}
	if !hasViewer {
		return false
	}
	if viewerID == author.ID {
		return true
	}
	return followerOf[author.ID]
}

// viewerFollowSet returns, in one query, which of the given author ids the
// viewer follows. Listings call this once instead of per post.
func viewerFollowSet(db *gorm.DB, viewerID uint, authorIDs []uint) (map[uint]bool, error) {
	set := make(map[uint]bool)
	if len(authorIDs) == 0 {
		return set, nil
	}
	var followed []uint
	err := db.Table("follows").
		Select("followed_id").
		Where("follower_id = ? AND followed_id IN ?", viewerID, authorIDs).
		Scan(&followed).Error
	if err != nil {
		return nil, err
	}
	for _, id := range followed {
		set[id] = true
	}
	return set, nil
}

// canViewUserContent gates a single-owner listing (a user's posts or saved
// items) with the same rule, plus the admin bypass.
func canViewUserContent(db *gorm.DB, viewerID uint, hasViewer bool, owner *models.User, isAdmin bool) (bool, error) {
	if owner == nil {
		return false, nil
	}
	if !owner.IsPrivate || isAdmin {
		return true, nil
	}
	if !hasViewer {
		return false, nil
	}
	if viewerID == owner.ID {
		return true, nil
	}
	return models.IsFollowing(db, viewerID, owner.ID)
}

func respondVisibilityDenied(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "This content is only visible to followers"})
}

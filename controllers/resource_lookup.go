package controllers

import (
	"errors"
	"strconv"
	"strings"

	"Linkup/auth"
	"Linkup/models"
	"Linkup/utils/httpctx"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errInvalidIdentifier = errors.New("invalid identifier")

// resolveUserByIdentifier accepts either a user public id or a numeric
// internal id, public id first.
func resolveUserByIdentifier(db *gorm.DB, identifier string) (*models.User, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, errInvalidIdentifier
	}
	var user models.User
	if err := db.Where("public_id = ?", trimmed).First(&user).Error; err == nil {
		return &user, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if numericID, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
		if err := db.First(&user, uint(numericID)).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// resolveActingUser finds the user performing the request. It tries, in
// order: the identity the auth middleware stored, a bearer token on the raw
// request for routes that skip the middleware, and last the legacy
// current_user_id query/form field older clients still send.
func resolveActingUser(db *gorm.DB, c *gin.Context) (*models.User, bool, error) {
	if uid, ok := httpctx.CurrentUserID(c); ok {
		user := models.User{}
		actor, err := user.FindUserByID(db, uid)
		if err != nil {
			return nil, true, err
		}
		return actor, true, nil
	}

	if uid, err := auth.ExtractTokenID(c.Request); err == nil {
		user := models.User{}
		actor, err := user.FindUserByID(db, uid)
		if err != nil {
			return nil, true, err
		}
		return actor, true, nil
	}

	identifier := c.Query("current_user_id")
	if identifier == "" {
		identifier = c.PostForm("current_user_id")
	}
	if identifier == "" {
		return nil, false, nil
	}
	actor, err := resolveUserByIdentifier(db, identifier)
	if err != nil {
		return nil, true, err
	}
	return actor, true, nil
}

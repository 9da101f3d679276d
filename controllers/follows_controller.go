package controllers

import (
	"errors"
	"net/http"

	"Linkup/models"

	"github.com/gin-gonic/gin"
)

// FollowUser godoc
// @Summary      Follow a user
// @Description  Follow a user directly, or open a follow request when the target account is private
// @Tags         follows
// @Produce      json
// @Param        id   path      string  true  "User ID to follow"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id}/follow [post]
// @Security     BearerAuth
func (server *Server) FollowUser(c *gin.Context) {
	actor, present, err := resolveActingUser(server.DB, c)
	if !present {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Current user not found"})
		return
	}

	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User to follow not found"})
		return
	}

	outcome, err := models.RequestFollow(server.DB, actor, target)
	switch {
	case errors.Is(err, models.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot follow yourself"})
		return
	case errors.Is(err, models.ErrDuplicateRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Follow request already sent"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error following user"})
		return
	}

	// Either way the client gets the target's fresh profile, so it can render
	// the new follower list or the pending state.
	refreshed := models.User{}
	updated, err := refreshed.FindUserByID(server.DB, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading user"})
		return
	}
	dto, err := userToResponse(server.DB, updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading user"})
		return
	}

	requested := outcome == models.OutcomeRequested
	c.JSON(http.StatusOK, gin.H{
		"status":    http.StatusOK,
		"requested": requested,
		"response":  dto,
	})
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Description  Remove the follow edge and cancel any pending follow request; idempotent
// @Tags         follows
// @Produce      json
// @Param        id   path      string  true  "User ID to unfollow"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id}/unfollow [post]
// @Security     BearerAuth
func (server *Server) UnfollowUser(c *gin.Context) {
	actor, present, err := resolveActingUser(server.DB, c)
	if !present {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Current user not found"})
		return
	}

	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User to unfollow not found"})
		return
	}

	if err := models.Unfollow(server.DB, actor, target); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error unfollowing user"})
		return
	}

	refreshed := models.User{}
	updated, err := refreshed.FindUserByID(server.DB, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading user"})
		return
	}
	dto, err := userToResponse(server.DB, updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": dto})
}

// GetRelationship godoc
// @Summary      Get relationship state
// @Description  Report follow state between the authenticated user and the target, both directions, plus any open request
// @Tags         follows
// @Produce      json
// @Param        id   path      string  true  "Target User ID"
// @Success      200  {object}  RelationshipDTO
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id}/relationship [get]
// @Security     BearerAuth
func (server *Server) GetRelationship(c *gin.Context) {
	actor, present, err := resolveActingUser(server.DB, c)
	if !present {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Current user not found"})
		return
	}

	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if actor.ID == target.ID {
		c.JSON(http.StatusOK, RelationshipDTO{})
		return
	}

	following, err := models.IsFollowing(server.DB, actor.ID, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking relationship"})
		return
	}
	followedBy, err := models.IsFollowing(server.DB, target.ID, actor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking relationship"})
		return
	}
	pending, err := models.PendingRequest(server.DB, actor.ID, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking relationship"})
		return
	}

	dto := RelationshipDTO{
		Following:  following,
		FollowedBy: followedBy,
		Mutual:     following && followedBy,
	}
	if pending != nil {
		dto.Pending = true
		dto.RequestID = pending.PublicID
	}
	c.JSON(http.StatusOK, dto)
}

// GetFollowers godoc
// @Summary      List followers
// @Tags         follows
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id}/followers [get]
func (server *Server) GetFollowers(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	users, err := models.FollowerUsers(server.DB, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching followers"})
		return
	}
	dtos, err := usersToResponse(server.DB, users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching followers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": dtos})
}

// GetFollowing godoc
// @Summary      List following
// @Tags         follows
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id}/following [get]
func (server *Server) GetFollowing(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	users, err := models.FollowingUsers(server.DB, target.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching following"})
		return
	}
	dtos, err := usersToResponse(server.DB, users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching following"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": dtos})
}

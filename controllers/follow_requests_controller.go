package controllers

import (
	"errors"
	"net/http"

	"Linkup/models"

	"github.com/gin-gonic/gin"
)

// GetFollowRequest godoc
// @Summary      Look up a pending follow request
// @Description  Return the pending request from current_user_id to the target user, or null
// @Tags         follow-requests
// @Produce      json
// @Param        id               path   string  true  "Target User ID"
// @Param        current_user_id  query  string  true  "Sender User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id}/follow-request [get]
func (server *Server) GetFollowRequest(c *gin.Context) {
	sender, present, err := resolveActingUser(server.DB, c)
	if !present || err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Current user not found"})
		return
	}
	receiver, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	request, err := models.PendingRequest(server.DB, sender.ID, receiver.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching follow request"})
		return
	}
	if request == nil {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": nil})
		return
	}

	dtos, err := requestsToResponse(server.DB, []models.FollowRequest{*request})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching follow request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": dtos[0]})
}

// AcceptFollowRequest godoc
// @Summary      Accept a follow request
// @Description  Mark the request accepted and create the relationship edge; terminal requests 404
// @Tags         follow-requests
// @Produce      json
// @Param        id          path   string  true  "Receiver User ID"
// @Param        request_id  query  string  true  "Follow request ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id}/follow-request/accept [post]
// @Security     BearerAuth
func (server *Server) AcceptFollowRequest(c *gin.Context) {
	server.resolveFollowRequestTransition(c, true)
}

// RejectFollowRequest godoc
// @Summary      Reject a follow request
// @Description  Mark the request rejected; no relationship mutation; terminal requests 404
// @Tags         follow-requests
// @Produce      json
// @Param        id          path   string  true  "Receiver User ID"
// @Param        request_id  query  string  true  "Follow request ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id}/follow-request/reject [post]
// @Security     BearerAuth
func (server *Server) RejectFollowRequest(c *gin.Context) {
	server.resolveFollowRequestTransition(c, false)
}

func (server *Server) resolveFollowRequestTransition(c *gin.Context, accept bool) {
	receiver, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	request, err := models.FindRequestByIdentifier(server.DB, c.Query("request_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Follow request not found"})
		return
	}
	// A request can only be resolved through its receiver's endpoint.
	if request.ReceiverID != receiver.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Follow request not found"})
		return
	}

	var resolved *models.FollowRequest
	if accept {
		resolved, err = models.AcceptFollowRequest(server.DB, request.ID)
	} else {
		resolved, err = models.RejectFollowRequest(server.DB, request.ID)
	}
	if errors.Is(err, models.ErrRequestNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Follow request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving follow request"})
		return
	}

	dtos, err := requestsToResponse(server.DB, []models.FollowRequest{*resolved})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error resolving follow request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": dtos[0]})
}

// GetReceivedFollowRequests godoc
// @Summary      List pending follow requests received by a user
// @Tags         follow-requests
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id}/follow-requests/received [get]
func (server *Server) GetReceivedFollowRequests(c *gin.Context) {
	user, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	requests, err := models.ReceivedPending(server.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching follow requests"})
		return
	}
	dtos, err := requestsToResponse(server.DB, requests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching follow requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": dtos})
}

// GetSentFollowRequests godoc
// @Summary      List pending follow requests sent by a user
// @Tags         follow-requests
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id}/follow-requests/sent [get]
func (server *Server) GetSentFollowRequests(c *gin.Context) {
	user, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	requests, err := models.SentPending(server.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching follow requests"})
		return
	}
	dtos, err := requestsToResponse(server.DB, requests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching follow requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": dtos})
}

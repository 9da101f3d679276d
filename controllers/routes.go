package controllers

import (
	"net/http"

	"Linkup/middlewares"

	"github.com/gin-gonic/gin"
)

func (s *Server) initializeRoutes() {

	s.Router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": "Linkup API"})
	})

	// The mobile client speaks these paths unversioned.
	root := s.Router.Group("/")
	{
		root.POST("/register", middlewares.LoginRateLimitMiddleware(), s.CreateUser)
		root.POST("/login", middlewares.LoginRateLimitMiddleware(), s.Login)
		root.POST("/password/forgot", middlewares.LoginRateLimitMiddleware(), s.ForgotPassword)
		root.POST("/password/reset", middlewares.LoginRateLimitMiddleware(), s.ResetPassword)

		// Users
		root.GET("/users", s.GetUsers)
		root.GET("/users/search", s.SearchUsers)
		root.GET("/users/:id", s.GetUser)
		root.PUT("/users/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdateUser)
		root.GET("/users/:id/followers", s.GetFollowers)
		root.GET("/users/:id/following", s.GetFollowing)
		root.GET("/users/:id/saved", middlewares.TokenAuthMiddleware(s.DB), s.GetSavedPosts)

		// Follow workflow. Follow and unfollow resolve the actor themselves so
		// older clients can still pass current_user_id instead of a token.
		root.POST("/users/:id/follow", s.FollowUser)
		root.POST("/users/:id/unfollow", s.UnfollowUser)
		root.GET("/users/:id/relationship", middlewares.TokenAuthMiddleware(s.DB), s.GetRelationship)
		root.GET("/users/:id/follow-request", s.GetFollowRequest)
		root.POST("/users/:id/follow-request/accept", middlewares.TokenAuthMiddleware(s.DB), s.AcceptFollowRequest)
		root.POST("/users/:id/follow-request/reject", middlewares.TokenAuthMiddleware(s.DB), s.RejectFollowRequest)
		root.GET("/users/:id/follow-requests/received", s.GetReceivedFollowRequests)
		root.GET("/users/:id/follow-requests/sent", s.GetSentFollowRequests)

		// Posts
		root.POST("/posts", middlewares.TokenAuthMiddleware(s.DB), s.CreatePost)
		root.GET("/posts", s.GetFeed)
		root.GET("/posts/:id", s.GetUserPosts)
		root.PUT("/posts/:id/like", middlewares.TokenAuthMiddleware(s.DB), s.LikePost)
		root.POST("/posts/:id/save", middlewares.TokenAuthMiddleware(s.DB), s.SavePost)
		root.POST("/posts/:id/comments", middlewares.TokenAuthMiddleware(s.DB), s.CreateComment)
		root.GET("/posts/:id/comments", s.GetComments)

		// Messaging
		root.GET("/ws/:id", s.ChatWebSocket)
		root.GET("/messages/:chat_id", s.GetMessages)
	}
}

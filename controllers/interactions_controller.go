package controllers

import (
	"net/http"

	"Linkup/models"
	"Linkup/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// LikePost godoc
// @Summary      Toggle a like on a post
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "post id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id}/like [put]
func (server *Server) LikePost(c *gin.Context) {
	actor, present, err := resolveActingUser(server.DB, c)
	if err != nil || !present {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Unauthorized",
		})
		return
	}
	post, err := models.FindPostByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Post not found",
		})
		return
	}

	liked, err := models.ToggleLike(server.DB, actor.ID, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}
	likers, err := models.LikerPublicIDs(server.DB, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"liked": liked,
			"likes": likers,
		},
	})
}

// SavePost godoc
// @Summary      Toggle a bookmark on a post
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "post id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id}/save [post]
func (server *Server) SavePost(c *gin.Context) {
	actor, present, err := resolveActingUser(server.DB, c)
	if err != nil || !present {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Unauthorized",
		})
		return
	}
	post, err := models.FindPostByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Post not found",
		})
		return
	}

	saved, err := models.ToggleSave(server.DB, actor.ID, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"saved": saved,
		},
	})
}

// GetSavedPosts godoc
// @Summary      List the posts a user has bookmarked
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "user id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /users/{id}/saved [get]
func (server *Server) GetSavedPosts(c *gin.Context) {
	owner, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "User not found",
		})
		return
	}
	actingID, ok := httpctx.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Unauthorized",
		})
		return
	}
	// Bookmarks are private to their owner.
	if actingID != owner.ID && !httpctx.IsAdminRequest(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Unauthorized",
		})
		return
	}

	posts, err := models.FindSavedPosts(server.DB, owner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	authors := make(map[uint]string, len(posts))
	response := make([]PostDTO, 0, len(posts))
	for i := range posts {
		authorPublicID, ok := authors[posts[i].AuthorID]
		if !ok {
			var author models.User
			if err := server.DB.Select("public_id").First(&author, posts[i].AuthorID).Error; err != nil {
				continue
			}
			authorPublicID = author.PublicID
			authors[posts[i].AuthorID] = authorPublicID
		}
		dto, err := postToResponse(server.DB, &posts[i], authorPublicID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": http.StatusInternalServerError,
				"error":  err.Error(),
			})
			return
		}
		response = append(response, dto)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": response,
	})
}

type createCommentRequest struct {
	Body string `json:"body" form:"body"`
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "post id"
// @Success      201  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id}/comments [post]
func (server *Server) CreateComment(c *gin.Context) {
	actor, present, err := resolveActingUser(server.DB, c)
	if err != nil || !present {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Unauthorized",
		})
		return
	}
	post, err := models.FindPostByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Post not found",
		})
		return
	}

	payload := createCommentRequest{}
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	comment := models.Comment{
		PostID:         post.ID,
		UserID:         actor.ID,
		AuthorUsername: actor.Username,
		Body:           payload.Body,
	}
	comment.Prepare()
	errorMessages := comment.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	commentCreated, err := comment.SaveComment(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": commentToResponse(commentCreated),
	})
}

// GetComments godoc
// @Summary      List a post's comments, oldest first
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "post id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id}/comments [get]
func (server *Server) GetComments(c *gin.Context) {
	post, err := models.FindPostByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Post not found",
		})
		return
	}

	comments, err := models.FindCommentsByPost(server.DB, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	response := make([]CommentDTO, 0, len(comments))
	for i := range comments {
		response = append(response, commentToResponse(&comments[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": response,
	})
}

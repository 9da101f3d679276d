package controllers

import (
	"net/http"
	"strconv"

	"Linkup/models"
	"Linkup/utils/formaterror"
	"Linkup/utils/httpctx"

	"github.com/gin-gonic/gin"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 100
)

type createPostRequest struct {
	Content  string `json:"content" form:"content"`
	ImageURL string `json:"image_url" form:"image_url"`
	Location string `json:"location" form:"location"`
}

// CreatePost godoc
// @Summary      Publish a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /posts [post]
func (server *Server) CreatePost(c *gin.Context) {
	author, present, err := resolveActingUser(server.DB, c)
	if err != nil || !present {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Unauthorized",
		})
		return
	}

	payload := createPostRequest{}
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	post := models.Post{
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Content:        payload.Content,
		ImageURL:       payload.ImageURL,
		Location:       payload.Location,
	}
	post.Prepare()
	errorMessages := post.Validate()
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	postCreated, err := post.SavePost(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  formattedError,
		})
		return
	}

	response, err := postToResponse(server.DB, postCreated, author.PublicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": response,
	})
}

// GetFeed godoc
// @Summary      List recent posts visible to the viewer
// @Description  Posts by private accounts only appear for the author and accepted followers
// @Tags         posts
// @Produce      json
// @Param        offset  query  int  false  "pagination offset"
// @Param        limit   query  int  false  "page size"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts [get]
func (server *Server) GetFeed(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultFeedLimit)))
	if limit <= 0 || limit > maxFeedLimit {
		limit = defaultFeedLimit
	}

	posts, err := models.FindRecentPosts(server.DB, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	viewerID, hasViewer := optionalViewerID(c)

	authorIDs := make([]uint, 0, len(posts))
	seen := make(map[uint]bool, len(posts))
	for _, post := range posts {
		if !seen[post.AuthorID] {
			seen[post.AuthorID] = true
			authorIDs = append(authorIDs, post.AuthorID)
		}
	}

	authors := make(map[uint]models.User, len(authorIDs))
	if len(authorIDs) > 0 {
		var users []models.User
		if err := server.DB.Where("id IN ?", authorIDs).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": http.StatusInternalServerError,
				"error":  err.Error(),
			})
			return
		}
		for _, u := range users {
			authors[u.ID] = u
		}
	}

	var followerOf map[uint]bool
	if hasViewer {
		followerOf, err = viewerFollowSet(server.DB, viewerID, authorIDs)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": http.StatusInternalServerError,
				"error":  err.Error(),
			})
			return
		}
	}

	response := make([]PostDTO, 0, len(posts))
	for i := range posts {
		author, ok := authors[posts[i].AuthorID]
		if !ok {
			continue
		}
		if !isVisibleToViewer(&author, viewerID, hasViewer, followerOf) {
			continue
		}
		dto, err := postToResponse(server.DB, &posts[i], author.PublicID)
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

// GetUserPosts godoc
// @Summary      List a user's posts
// @Description  A private account's posts require the viewer to be the owner or a follower
// @Tags         posts
// @Produce      json
// @Param        id  path  string  true  "user id"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /posts/{id} [get]
func (server *Server) GetUserPosts(c *gin.Context) {
	owner, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "User not found",
		})
		return
	}

	viewerID, hasViewer := optionalViewerID(c)
	allowed, err := canViewUserContent(server.DB, viewerID, hasViewer, owner, httpctx.IsAdminRequest(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}
	if !allowed {
		respondVisibilityDenied(c)
		return
	}

	posts, err := models.FindPostsByAuthor(server.DB, owner.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	response := make([]PostDTO, 0, len(posts))
	for i := range posts {
		dto, err := postToResponse(server.DB, &posts[i], owner.PublicID)
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

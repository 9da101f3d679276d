package controllers

import (
	"net/http"
	"strings"

	"Linkup/models"
	"Linkup/utils/formaterror"
	"Linkup/utils/httpctx"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username  string `json:"username" form:"username"`
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	Phone     string `json:"phone" form:"phone"`
	BirthDate string `json:"birth_date" form:"birth_date"`
	IsPrivate bool   `json:"private_account" form:"private_account"`
}

// CreateUser godoc
// @Summary      Register a new account
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Router       /register [post]
func (server *Server) CreateUser(c *gin.Context) {
	payload := registerRequest{}
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user := models.User{
		Username:  payload.Username,
		Email:     payload.Email,
		Password:  payload.Password,
		Phone:     payload.Phone,
		BirthDate: payload.BirthDate,
		IsPrivate: payload.IsPrivate,
	}
	user.Prepare()
	errorMessages := user.Validate("")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	userCreated, err := user.SaveUser(server.DB)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}

	response, err := userToResponse(server.DB, userCreated)
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

// GetUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /users [get]
func (server *Server) GetUsers(c *gin.Context) {
	user := models.User{}
	users, err := user.FindAllUsers(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "No users found",
		})
		return
	}
	response, err := usersToResponse(server.DB, *users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": response,
	})
}

// SearchUsers godoc
// @Summary      Search users by username substring
// @Tags         users
// @Produce      json
// @Param        q  query  string  true  "username fragment"
// @Success      200  {object}  map[string]interface{}
// @Router       /users/search [get]
func (server *Server) SearchUsers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Required search query",
		})
		return
	}
	user := models.User{}
	users, err := user.SearchUsersByUsername(server.DB, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}
	response, err := usersToResponse(server.DB, *users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": response,
	})
}

// GetUser godoc
// @Summary      Fetch a user profile
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "user id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/{id} [get]
func (server *Server) GetUser(c *gin.Context) {
	user, err := resolveUserByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "User not found",
		})
		return
	}
	response, err := userToResponse(server.DB, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": response,
	})
}

type updateUserRequest struct {
	Email           string `json:"email" form:"email"`
	Phone           string `json:"phone" form:"phone"`
	BirthDate       string `json:"birth_date" form:"birth_date"`
	ProfileImageURL string `json:"profile_image_url" form:"profile_image_url"`
	Password        string `json:"password" form:"password"`
	IsPrivate       *bool  `json:"private_account" form:"private_account"`
}

// UpdateUser godoc
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "user id"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /users/{id} [put]
func (server *Server) UpdateUser(c *gin.Context) {
	target, err := resolveUserByIdentifier(server.DB, c.Param("id"))
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
	if actingID != target.ID && !httpctx.IsAdminRequest(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Unauthorized",
		})
		return
	}

	payload := updateUserRequest{}
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user := models.User{
		Email:           strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:           payload.Phone,
		BirthDate:       payload.BirthDate,
		ProfileImageURL: payload.ProfileImageURL,
		Password:        payload.Password,
		IsPrivate:       target.IsPrivate,
	}
	if payload.IsPrivate != nil {
		user.IsPrivate = *payload.IsPrivate
	}
	errorMessages := user.Validate("update")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	updatedUser, err := user.UpdateAUser(server.DB, target.ID)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  formattedError,
		})
		return
	}

	response, err := userToResponse(server.DB, updatedUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": response,
	})
}

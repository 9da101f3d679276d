package controllers

import (
	"net/http"
	"strings"

	"Linkup/auth"
	"Linkup/models"
	"Linkup/security"
	"Linkup/utils/formaterror"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate with username and password, returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Router       /login [post]
func (server *Server) Login(c *gin.Context) {
	payload := loginRequest{}
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}
	payload.Username = strings.ToLower(strings.TrimSpace(payload.Username))
	if payload.Username == "" || payload.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Required username and password",
		})
		return
	}

	userData, err := server.SignIn(payload.Username, payload.Password)
	if err != nil {
		formattedError := formaterror.FormatError(err.Error())
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  formattedError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": userData,
	})
}

func (server *Server) SignIn(username, password string) (map[string]interface{}, error) {
	user := models.User{}
	err := server.DB.Model(models.User{}).
		Where("lower(username) = ?", strings.ToLower(username)).
		Take(&user).Error
	if err != nil {
		return nil, err
	}
	if err = security.VerifyPassword(user.Password, password); err != nil {
		return nil, err
	}
	token, err := auth.CreateToken(&user)
	if err != nil {
		return nil, err
	}

	userData := make(map[string]interface{})
	userData["access_token"] = token
	userData["token_type"] = "bearer"
	userData["id"] = user.PublicID
	userData["username"] = user.Username
	userData["email"] = user.Email
	userData["profile_image_url"] = user.ProfileImageURL
	userData["private_account"] = user.IsPrivate
	return userData, nil
}

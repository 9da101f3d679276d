package controllers

import (
	"net/http"
	"strings"

	"Linkup/models"
	"Linkup/utils/mailer"

	"github.com/gin-gonic/gin"
	"github.com/twinj/uuid"
)

type forgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

// ForgotPassword godoc
// @Summary      Start a password reset
// @Description  Emails a single-use reset token to the account's address
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /password/forgot [post]
func (server *Server) ForgotPassword(c *gin.Context) {
	payload := forgotPasswordRequest{}
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user := models.User{Email: payload.Email}
	user.Prepare()
	errorMessages := user.Validate("forgotpassword")
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	err := server.DB.Model(models.User{}).Where("email = ?", user.Email).Take(&user).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "No account with that email",
		})
		return
	}

	details := models.ResetPassword{
		Email: user.Email,
		Token: uuid.NewV4().String(),
	}
	details.Prepare()
	if _, err := details.SaveDetails(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	if err := mailer.SendResetPassword(user.Email, details.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Unable to send reset email",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Check your email for the reset link",
	})
}

type resetPasswordRequest struct {
	Token          string `json:"token" form:"token"`
	NewPassword    string `json:"new_password" form:"new_password"`
	RetypePassword string `json:"retype_password" form:"retype_password"`
}

// ResetPassword godoc
// @Summary      Complete a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Router       /password/reset [post]
func (server *Server) ResetPassword(c *gin.Context) {
	payload := resetPasswordRequest{}
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	errorMessages := make(map[string]string)
	if strings.TrimSpace(payload.Token) == "" {
		errorMessages["Required_token"] = "Required Token"
	}
	if payload.NewPassword == "" || payload.RetypePassword == "" {
		errorMessages["Required_password"] = "Required Password"
	}
	if len(payload.NewPassword) > 0 && len(payload.NewPassword) < 6 {
		errorMessages["Invalid_password"] = "Password should be at least 6 characters"
	}
	if payload.NewPassword != payload.RetypePassword {
		errorMessages["Password_unequal"] = "Passwords provided do not match"
	}
	if len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errorMessages,
		})
		return
	}

	details, err := (&models.ResetPassword{}).FindByToken(server.DB, strings.TrimSpace(payload.Token))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Invalid or expired token",
		})
		return
	}

	user := models.User{Email: details.Email, Password: payload.NewPassword}
	if err := user.UpdatePassword(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	// Token is single use.
	if _, err := details.DeleteDetails(server.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Password updated, log in with the new password",
	})
}

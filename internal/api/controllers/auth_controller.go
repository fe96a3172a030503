package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmark/internal/models/request_models"
	"tripmark/internal/models/response_models"
	"tripmark/internal/session"
	"tripmark/pkg/utils"
)

type AuthController struct {
	sessions *session.Store
}

func NewAuthController(sessions *session.Store) *AuthController {
	return &AuthController{sessions: sessions}
}

// Register creates the account, auto-logs it in and returns a token.
func (a *AuthController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.sessions.Register(c.Request.Context(), session.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	token, err := utils.CreateToken(user.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.LoginResponse{
		Token: token,
		User:  response_models.NewUserResponse(user),
	}, "Account created successfully")
}

func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	token, err := utils.CreateToken(user.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.LoginResponse{
		Token: token,
		User:  response_models.NewUserResponse(user),
	}, "Login successful")
}

func (a *AuthController) Logout(c *gin.Context) {
	if err := a.sessions.Logout(c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Logged out")
}

func (a *AuthController) Me(c *gin.Context) {
	user, ok := a.sessions.CurrentUser()
	if !ok {
		utils.HandleServiceError(c, utils.ErrNotAuthenticated)
		return
	}
	utils.RespondSuccess(c, response_models.NewUserResponse(user), "Profile fetched")
}

func (a *AuthController) UpdateProfile(c *gin.Context) {
	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := a.sessions.UpdateProfile(c.Request.Context(), session.ProfilePatch{
		Name:         req.Name,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.NewUserResponse(user), "Profile updated")
}

func (a *AuthController) ChangePassword(c *gin.Context) {
	var req request_models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.sessions.ChangePassword(c.Request.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Password changed")
}

// Withdraw deletes the account and everything it owns.
func (a *AuthController) Withdraw(c *gin.Context) {
	if err := a.sessions.Withdraw(c.Request.Context()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Account deleted")
}

package controlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nithishkumar647397/MINDSCOPE-AI/libs"
	"github.com/Nithishkumar647397/MINDSCOPE-AI/services"
)

const internalErrorMessage = "Internal server error. Please try again later."

// Accounts is the slice of services.AuthService the handlers use.
type Accounts interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Me(ctx context.Context, userID string) (*services.Profile, error)
}

type UserController struct {
	accounts Accounts
	log      *zap.SugaredLogger
}

func NewUserController(accounts Accounts, log *zap.SugaredLogger) *UserController {
	return &UserController{accounts: accounts, log: log}
}

// CreateUser registers an account.
// its a post needs json {"name": "", "email": "", "password": ""}
func (u *UserController) CreateUser(c *gin.Context) {
	type Body struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var body Body
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := u.accounts.Register(c.Request.Context(), body.Name, body.Email, body.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, result)
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "This email address is already registered."})
	default:
		u.log.Errorw("register failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	}
}

func (u *UserController) LoginUser(c *gin.Context) {
	type Body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var body Body
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := u.accounts.Login(c.Request.Context(), body.Email, body.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	default:
		u.log.Errorw("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	}
}

// Protected routes

func (u *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString(libs.UserIDKey)

	profile, err := u.accounts.Me(c.Request.Context(), userID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, profile)
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		u.log.Errorw("profile lookup failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	}
}

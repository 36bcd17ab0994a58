package handler

import (
	"errors"
	"net/http"
	"strings"

	"taskify/internal/auth"
	"taskify/internal/models"
	"taskify/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler serves registration, login, logout and the current profile.
type AuthHandler struct {
	DB         *gorm.DB
	Sessions   *auth.Sessions
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, sessions *auth.Sessions, bcryptCost int) *AuthHandler {
	return &AuthHandler{
		DB:         db,
		Sessions:   sessions,
		BcryptCost: bcryptCost,
	}
}

type userResp struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ---------- register ----------

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		badRequest(c, "Username, email, and password are required")
		return
	}
	for _, err := range []error{
		util.ValidateUsername(req.Username),
		util.ValidatePassword(req.Password),
		util.ValidateEmail(req.Email),
	} {
		if err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	var existing models.User
	err := h.DB.WithContext(c.Request.Context()).
		Where("username = ? OR email = ?", req.Username, req.Email).
		First(&existing).Error
	switch {
	case err == nil:
		if existing.Username == req.Username {
			util.Error(c, http.StatusBadRequest, util.CodeConflict, "Username already exists")
		} else {
			util.Error(c, http.StatusBadRequest, util.CodeConflict, "Email already exists")
		}
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		serverError(c, err, "Failed to register user")
		return
	}

	hash, err := util.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		serverError(c, err, "Failed to register user")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		// lost a race against a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusBadRequest, util.CodeConflict, "Username or email already exists")
			return
		}
		serverError(c, err, "Failed to register user")
		return
	}

	util.JSON(c, http.StatusCreated, user)
}

// ---------- login ----------

type loginReq struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type loginResp struct {
	User    userResp `json:"user"`
	Message string   `json:"message"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	req.UsernameOrEmail = strings.TrimSpace(req.UsernameOrEmail)
	if req.UsernameOrEmail == "" || req.Password == "" {
		badRequest(c, "Username/email and password are required")
		return
	}

	var user models.User
	if err := h.DB.WithContext(c.Request.Context()).
		Where("username = ? OR email = ?", req.UsernameOrEmail, req.UsernameOrEmail).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Invalid credentials")
		} else {
			serverError(c, err, "Failed to login")
		}
		return
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Invalid credentials")
		return
	}

	id := auth.Identity{ID: user.ID, Username: user.Username, Email: user.Email}
	if err := h.Sessions.Issue(c.Writer, id); err != nil {
		serverError(c, err, "Failed to login")
		return
	}

	util.JSON(c, http.StatusOK, loginResp{
		User:    userResp{ID: user.ID, Username: user.Username, Email: user.Email},
		Message: "Login successful",
	})
}

// ---------- logout ----------

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.Clear(c.Writer)
	util.JSON(c, http.StatusOK, util.Message{Message: "Logout successful"})
}

// ---------- me ----------

// Me returns the caller's current profile. The token only proves who the
// caller is; the row is fetched fresh so deleted users get 404.
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := currentIdentity(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.DB.WithContext(c.Request.Context()).First(&user, id.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "User not found")
		} else {
			serverError(c, err, "Failed to get current user")
		}
		return
	}

	util.JSON(c, http.StatusOK, user)
}

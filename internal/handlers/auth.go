package handlers

import (
	"net/http"
	"strings"

	"carriertalk/internal/middleware"
	"carriertalk/internal/models"
	"carriertalk/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

type signupInput struct {
	Username string `json:"username" binding:"required,min=2,max=40"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Company  string `json:"company" binding:"max=120"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var in signupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	var existing models.User
	if err := h.db.Where("email = ?", in.Email).First(&existing).Error; err == nil {
		JSONError(c, http.StatusConflict, "email already registered")
		return
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create account")
		return
	}
	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Company:  in.Company,
	}
	if err := h.db.Create(&user).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", strings.ToLower(strings.TrimSpace(in.Email))).First(&user).Error; err != nil {
		JSONError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !utils.CheckPasswordHash(in.Password, user.Password) {
		JSONError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		JSONError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	c.JSON(http.StatusOK, user)
}

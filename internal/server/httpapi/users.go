package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wealthx/paydesk/internal/server/models"
	"github.com/wealthx/paydesk/internal/server/services"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginUser is the identity summary returned with a fresh token.
type loginUser struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func (h *handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name, a valid email and password are required")
		return
	}

	u, err := h.Users.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(c, err, "User")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    u.View(),
	})
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	token, u, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err, "User")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    loginUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
	})
}

func (h *handler) me(c *gin.Context) {
	u, err := h.Users.Me(c.Request.Context(), claimsOf(c).UserID())
	if err != nil {
		h.writeError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, u.View())
}

func (h *handler) listUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "User")
		return
	}

	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}
	c.JSON(http.StatusOK, views)
}

func (h *handler) userByEmail(c *gin.Context) {
	u, err := h.Users.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.writeError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, u.View())
}

func (h *handler) uploadImage(c *gin.Context) {
	file, closeFile, err := formFile(c, "image")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if file == nil {
		badRequest(c, "image is required")
		return
	}
	defer closeFile()

	url, err := h.Users.UploadImage(c.Request.Context(), claimsOf(c).UserID(), file)
	if err != nil {
		h.writeError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/server/mailer"
)

type contactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

func (h *handler) contactForm(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	err := h.Contact.Submit(c.Request.Context(), mailer.ContactMessage{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
	})
	if errors.Is(err, common.ErrValidation) {
		_, msg := statusFor(err, "")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
		return
	}
	if err != nil {
		h.log.Error(c.Request.Context(), "contact form delivery failed",
			"request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to send email. Please try again later.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Thank you! Your message has been sent successfully.",
	})
}

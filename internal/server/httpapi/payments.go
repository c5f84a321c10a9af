package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wealthx/paydesk/internal/server/models"
	"github.com/wealthx/paydesk/internal/server/services"
)

type submitPaymentForm struct {
	Name        string `form:"name"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	UTR         string `form:"utr"`
	Plan        string `form:"plan"`
	SubmittedAt string `form:"submittedAt"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type paymentStatusRequest struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

func (h *handler) submitPayment(c *gin.Context) {
	var form submitPaymentForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, errBadMultipart.Error())
		return
	}

	in := services.SubmitPaymentInput{
		Name:  form.Name,
		Email: form.Email,
		Phone: form.Phone,
		UTR:   form.UTR,
		Plan:  models.ParsePlan(form.Plan),
	}
	if form.SubmittedAt != "" {
		t, err := time.Parse(time.RFC3339, form.SubmittedAt)
		if err != nil {
			badRequest(c, "submittedAt must be an RFC 3339 timestamp")
			return
		}
		in.SubmittedAt = t
	}

	shot, closeFile, err := formFile(c, "screenshot")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if shot == nil {
		badRequest(c, "Screenshot is required.")
		return
	}
	defer closeFile()

	p, err := h.Payments.Submit(c.Request.Context(), claimsOf(c), in, shot)
	if err != nil {
		h.writeError(c, err, "Payment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment submitted successfully.",
		"payment": p,
	})
}

func (h *handler) listPayments(c *gin.Context) {
	list, err := h.Payments.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Request")
		return
	}
	c.JSON(http.StatusOK, list)
}

// reviewPayment handles PUT /api/admin/requests/:id.
func (h *handler) reviewPayment(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid status value")
		return
	}

	p, err := h.Payments.UpdateStatus(c.Request.Context(), c.Param("id"), parseStatus(req.Status))
	if err != nil {
		h.writeError(c, err, "Request")
		return
	}
	c.JSON(http.StatusOK, p)
}

// updatePaymentStatus handles PATCH /update-paymentstatus.
func (h *handler) updatePaymentStatus(c *gin.Context) {
	var req paymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ID and status are required")
		return
	}

	p, err := h.Payments.UpdateStatus(c.Request.Context(), req.ID, parseStatus(req.Status))
	if err != nil {
		h.writeError(c, err, "Payment")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Payment status updated successfully",
		"data":    p,
	})
}

// parseStatus accepts any letter case ("Accepted" and "accepted").
func parseStatus(s string) models.PaymentStatus {
	return models.PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
}

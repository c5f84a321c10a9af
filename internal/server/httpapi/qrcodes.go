package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/server/models"
)

type setQRRequest struct {
	QR1 string `json:"qr1"`
	QR2 string `json:"qr2"`
}

// listQRCodes is the public read; it answers 404 until codes are set.
func (h *handler) listQRCodes(c *gin.Context) {
	q, err := h.QR.Get(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "QR codes")
		return
	}
	c.JSON(http.StatusOK, []*models.QRCodes{q})
}

// getQRCodes is the admin read; missing codes come back as empty strings.
func (h *handler) getQRCodes(c *gin.Context) {
	q, err := h.QR.Get(c.Request.Context())
	if errors.Is(err, common.ErrorNotFound) {
		c.JSON(http.StatusOK, gin.H{"qr1": "", "qr2": ""})
		return
	}
	if err != nil {
		h.writeError(c, err, "QR codes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"qr1": q.QR1, "qr2": q.QR2})
}

func (h *handler) setQRCodes(c *gin.Context) {
	var req setQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "qr1 or qr2 is required")
		return
	}

	q, err := h.QR.Set(c.Request.Context(), req.QR1, req.QR2)
	if err != nil {
		h.writeError(c, err, "QR codes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "QR codes saved", "qr1": q.QR1, "qr2": q.QR2})
}

func (h *handler) uploadQRCodes(c *gin.Context) {
	qr1, close1, err := formFile(c, "qr1")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer close1()

	qr2, close2, err := formFile(c, "qr2")
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer close2()

	q, err := h.QR.Upload(c.Request.Context(), qr1, qr2)
	if err != nil {
		h.writeError(c, err, "QR codes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "QR codes updated successfully", "qr1": q.QR1, "qr2": q.QR2})
}

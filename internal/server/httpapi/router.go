// Package httpapi is the REST surface of paydesk: routing, authentication
// middleware, request binding and error mapping.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wealthx/paydesk/internal/common"
	"github.com/wealthx/paydesk/internal/logging"
	"github.com/wealthx/paydesk/internal/server/auth"
	"github.com/wealthx/paydesk/internal/server/mailer"
	"github.com/wealthx/paydesk/internal/server/media"
	"github.com/wealthx/paydesk/internal/server/models"
	"github.com/wealthx/paydesk/internal/server/services"
)

type UserAPI interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Me(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UploadImage(ctx context.Context, userID string, f *media.File) (string, error)
}

type PaymentAPI interface {
	Submit(ctx context.Context, claims *auth.Claims, in services.SubmitPaymentInput, screenshot *media.File) (*models.Payment, error)
	List(ctx context.Context) ([]*models.Payment, error)
	UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Payment, error)
}

type QRAPI interface {
	Get(ctx context.Context) (*models.QRCodes, error)
	Set(ctx context.Context, qr1, qr2 string) (*models.QRCodes, error)
	Upload(ctx context.Context, qr1, qr2 *media.File) (*models.QRCodes, error)
}

type ContactAPI interface {
	Submit(ctx context.Context, msg mailer.ContactMessage) error
}

// Deps are the collaborators the router needs.
type Deps struct {
	Users    UserAPI
	Payments PaymentAPI
	QR       QRAPI
	Contact  ContactAPI
	Tokens   TokenVerifier
	Logger   logging.Logger

	AllowedOrigins []string
	MaxUploadBytes int64
}

type handler struct {
	Deps
	log logging.Logger
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}
	h := &handler{Deps: d, log: d.Logger.With("module", "httpapi")}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(h.log))
	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", common.AuthorizationHeaderName, common.RequestIDHeaderName},
			ExposeHeaders:    []string{common.RequestIDHeaderName},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// two images plus form fields
	uploadLimit := 2*d.MaxUploadBytes + 1<<20

	authn := Authenticate(d.Tokens, h.log)
	admin := RequireRole(models.RoleAdmin, h.log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// public
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.GET("/api/qrcodes", h.listQRCodes)
	r.POST("/contact-form", h.contactForm)

	// any authenticated user
	r.GET("/me", authn, h.me)
	r.POST("/upload-image", authn, limitBody(uploadLimit), h.uploadImage)
	r.POST("/api/submit-payment", authn, limitBody(uploadLimit), h.submitPayment)

	// admin only
	r.GET("/users", authn, admin, h.listUsers)
	r.GET("/by-email/:email", authn, admin, h.userByEmail)
	r.PATCH("/update-paymentstatus", authn, admin, h.updatePaymentStatus)
	r.PATCH("/upload", authn, admin, limitBody(uploadLimit), h.uploadQRCodes)

	adminAPI := r.Group("/api/admin", authn, admin)
	adminAPI.GET("/requests", h.listPayments)
	adminAPI.PUT("/requests/:id", h.reviewPayment)
	adminAPI.GET("/qr", h.getQRCodes)
	adminAPI.POST("/qr", h.setQRCodes)

	return r
}

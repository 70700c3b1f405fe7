package enrollmentValidator

import (
	"learnhub/payment"
	"learnhub/validators"

	"github.com/gofiber/fiber/v2"
)

type InitiateRequest struct {
	CourseID uint `json:"courseId" validate:"required,gt=0"`
}

// VerifyRequest accepts the fields Razorpay Checkout and Midtrans Snap
// hand back to the client after payment.
type VerifyRequest struct {
	CourseID uint `json:"courseId" validate:"required,gt=0"`

	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`

	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	TransactionStatus string `json:"transaction_status"`
	SignatureKey      string `json:"signature_key"`
}

func (r *VerifyRequest) Proof() payment.Proof {
	if r.RazorpayOrderID != "" {
		return payment.Proof{
			OrderID:   r.RazorpayOrderID,
			PaymentID: r.RazorpayPaymentID,
			Signature: r.RazorpaySignature,
		}
	}
	return payment.Proof{
		OrderID:           r.OrderID,
		PaymentID:         r.TransactionID,
		Signature:         r.SignatureKey,
		StatusCode:        r.StatusCode,
		GrossAmount:       r.GrossAmount,
		TransactionStatus: r.TransactionStatus,
	}
}

func Initiate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(InitiateRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		c.Locals("validatedInitiate", reqData)
		return c.Next()
	}
}

func Verify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(VerifyRequest)
		if ok, err := validators.Body(c, reqData); !ok {
			return err
		}
		if reqData.RazorpayOrderID == "" && reqData.OrderID == "" {
			return validators.Fail(c, map[string]string{"orderId": "Payment order id is required!"})
		}
		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}

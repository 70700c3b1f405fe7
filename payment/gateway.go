// Package payment talks to the payment gateways that sit in front of an
// enrollment. A gateway creates an order for a course price and later
// verifies the proof the client brings back after checkout.
package payment

import (
	"context"
	"errors"
	"fmt"

	"learnhub/config"
	"learnhub/logger"
)

// ErrVerificationFailed is returned when a payment proof does not check out.
var ErrVerificationFailed = errors.New("payment verification failed")

type OrderRequest struct {
	Amount        int64 // minor currency units
	Currency      string
	Receipt       string
	CourseID      uint
	CourseTitle   string
	StudentID     uint
	CustomerName  string
	CustomerEmail string
}

type Order struct {
	ID          string
	Amount      int64
	Currency    string
	Key         string // public key the client checkout widget needs
	Token       string // midtrans snap token
	RedirectURL string
}

// Proof is what the client returns after checkout. Razorpay fills
// PaymentID and Signature, Midtrans fills StatusCode, GrossAmount,
// TransactionStatus and Signature.
type Proof struct {
	OrderID           string
	PaymentID         string
	Signature         string
	StatusCode        string
	GrossAmount       string
	TransactionStatus string
}

// Verification is a checked payment. CourseID and Amount come from the
// gateway's record of the order, never from the client.
type Verification struct {
	OrderID   string
	PaymentID string
	Signature string
	Status    string
	CourseID  uint
	Amount    int64 // minor currency units actually charged
	Raw       map[string]any
}

type Gateway interface {
	Name() string
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	Verify(ctx context.Context, proof Proof) (*Verification, error)
}

// NewFromConfig selects the gateway named by PAYMENT_GATEWAY.
func NewFromConfig(cfg *config.Config, log *logger.Logger) (Gateway, error) {
	switch cfg.PaymentGateway {
	case "razorpay":
		if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
			return nil, errors.New("razorpay gateway requires RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET")
		}
		return NewRazorpay(cfg.RazorpayAPIURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, log), nil
	case "midtrans":
		if cfg.MidtransServerKey == "" {
			return nil, errors.New("midtrans gateway requires MIDTRANS_SERVER_KEY")
		}
		return NewMidtrans(cfg.MidtransServerKey, cfg.MidtransClientKey, cfg.MidtransProduction, log), nil
	case "dev":
		if !cfg.IsDevelopment() {
			return nil, errors.New("dev payment gateway is only allowed with APP_ENV=development")
		}
		return NewDev(), nil
	default:
		return nil, fmt.Errorf("unknown payment gateway %q", cfg.PaymentGateway)
	}
}

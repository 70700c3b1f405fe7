package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"learnhub/logger"

	"github.com/go-resty/resty/v2"
)

// Razorpay creates orders over the Razorpay REST API, checks checkout
// signatures locally and reads the order back to learn what was paid for.
type Razorpay struct {
	client    *resty.Client
	keyID     string
	keySecret string
	log       *logger.Logger
}

type razorpayOrder struct {
	ID       string         `json:"id"`
	Amount   int64          `json:"amount"`
	Currency string         `json:"currency"`
	Receipt  string         `json:"receipt"`
	Status   string         `json:"status"`
	Notes    map[string]any `json:"notes"`
}

// courseID reads notes.courseId, which Razorpay hands back as a string.
func (o razorpayOrder) courseID() (uint, bool) {
	var raw string
	switch v := o.Notes["courseId"].(type) {
	case string:
		raw = v
	case float64:
		raw = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func NewRazorpay(baseURL, keyID, keySecret string, log *logger.Logger) *Razorpay {
	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(keyID, keySecret).
		SetTimeout(15*time.Second).
		SetHeader("Content-Type", "application/json")
	return &Razorpay{client: client, keyID: keyID, keySecret: keySecret, log: log.With("gateway", "razorpay")}
}

func (r *Razorpay) Name() string { return "razorpay" }

func (r *Razorpay) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var (
		order  razorpayOrder
		apiErr razorpayError
	)
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"amount":   req.Amount,
			"currency": req.Currency,
			"receipt":  req.Receipt,
			"notes": map[string]string{
				"courseId":  strconv.FormatUint(uint64(req.CourseID), 10),
				"studentId": strconv.FormatUint(uint64(req.StudentID), 10),
			},
		}).
		SetResult(&order).
		SetError(&apiErr).
		Post("/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	if resp.IsError() {
		r.log.Warn("Razorpay order rejected", "status", resp.StatusCode(), "code", apiErr.Error.Code)
		return nil, fmt.Errorf("razorpay create order: %s: %s", resp.Status(), apiErr.Error.Description)
	}
	return &Order{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Key:      r.keyID,
	}, nil
}

// Verify checks the checkout signature, HMAC-SHA256 of "order_id|payment_id"
// keyed with the account secret, then fetches the order for its amount and
// course.
func (r *Razorpay) Verify(ctx context.Context, proof Proof) (*Verification, error) {
	if proof.OrderID == "" || proof.PaymentID == "" || proof.Signature == "" {
		return nil, ErrVerificationFailed
	}
	expected := RazorpaySignature(r.keySecret, proof.OrderID, proof.PaymentID)
	if !hmac.Equal([]byte(expected), []byte(proof.Signature)) {
		return nil, ErrVerificationFailed
	}

	order, err := r.fetchOrder(ctx, proof.OrderID)
	if err != nil {
		return nil, err
	}
	courseID, ok := order.courseID()
	if !ok {
		r.log.Warn("Razorpay order has no course", "order_id", proof.OrderID)
		return nil, ErrVerificationFailed
	}
	return &Verification{
		OrderID:   proof.OrderID,
		PaymentID: proof.PaymentID,
		Signature: proof.Signature,
		Status:    "captured",
		CourseID:  courseID,
		Amount:    order.Amount,
		Raw: map[string]any{
			"razorpay_order_id":   proof.OrderID,
			"razorpay_payment_id": proof.PaymentID,
			"order_status":        order.Status,
			"amount":              order.Amount,
			"currency":            order.Currency,
		},
	}, nil
}

func (r *Razorpay) fetchOrder(ctx context.Context, orderID string) (*razorpayOrder, error) {
	var (
		order  razorpayOrder
		apiErr razorpayError
	)
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&order).
		SetError(&apiErr).
		Get("/v1/orders/" + url.PathEscape(orderID))
	if err != nil {
		return nil, fmt.Errorf("razorpay fetch order: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound || resp.StatusCode() == http.StatusBadRequest {
		return nil, ErrVerificationFailed
	}
	if resp.IsError() {
		return nil, fmt.Errorf("razorpay fetch order: %s: %s", resp.Status(), apiErr.Error.Description)
	}
	return &order, nil
}

func RazorpaySignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

package payment

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const devOrderPrefix = "order_dev_"

// Dev is a local gateway that issues fake orders and accepts any proof
// naming one of its orders. Course and amount travel in the order id.
// It refuses to start outside development.
type Dev struct{}

func NewDev() *Dev { return &Dev{} }

func (Dev) Name() string { return "dev" }

func (Dev) CreateOrder(_ context.Context, req OrderRequest) (*Order, error) {
	suffix := strconv.FormatInt(req.Amount, 10) + "-" + uuid.NewString()
	return &Order{
		ID:       courseOrderID(devOrderPrefix, req.CourseID, suffix),
		Amount:   req.Amount,
		Currency: req.Currency,
		Key:      "dev",
	}, nil
}

func (Dev) Verify(_ context.Context, proof Proof) (*Verification, error) {
	courseID, suffix, ok := parseCourseOrderID(devOrderPrefix, proof.OrderID)
	if !ok {
		return nil, ErrVerificationFailed
	}
	rawAmount, _, _ := strings.Cut(suffix, "-")
	amount, err := strconv.ParseInt(rawAmount, 10, 64)
	if err != nil || amount <= 0 {
		return nil, ErrVerificationFailed
	}
	return &Verification{
		OrderID:   proof.OrderID,
		PaymentID: proof.PaymentID,
		Status:    "captured",
		CourseID:  courseID,
		Amount:    amount,
		Raw:       map[string]any{"order_id": proof.OrderID},
	}, nil
}

package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"learnhub/logger"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

const midtransOrderPrefix = "LH-"

type snapCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// Midtrans creates Snap transactions and checks notification signatures.
// Amounts are passed in minor units and sent to Midtrans in whole units.
// The course id is carried in the order id since the signed notification
// only covers order id, status and gross amount.
type Midtrans struct {
	snap      snapCreator
	serverKey string
	clientKey string
	log       *logger.Logger
}

func NewMidtrans(serverKey, clientKey string, production bool, log *logger.Logger) *Midtrans {
	var client snap.Client
	if production {
		client.New(serverKey, midtrans.Production)
	} else {
		client.New(serverKey, midtrans.Sandbox)
	}
	return &Midtrans{snap: &client, serverKey: serverKey, clientKey: clientKey, log: log.With("gateway", "midtrans")}
}

func (m *Midtrans) Name() string { return "midtrans" }

func (m *Midtrans) CreateOrder(_ context.Context, req OrderRequest) (*Order, error) {
	orderID := courseOrderID(midtransOrderPrefix, req.CourseID, uuid.NewString())
	gross := req.Amount / 100
	if gross <= 0 {
		return nil, fmt.Errorf("midtrans create order: amount %d too small", req.Amount)
	}
	if req.Amount%100 != 0 {
		return nil, fmt.Errorf("midtrans create order: amount %d is not a whole currency unit", req.Amount)
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:       fmt.Sprintf("course-%d", req.CourseID),
			Price:    gross,
			Qty:      1,
			Name:     truncate(req.CourseTitle, 50),
			Category: "course",
		}},
		CustomField1: req.Receipt,
	}

	resp, mErr := m.snap.CreateTransaction(snapReq)
	if mErr != nil {
		m.log.Warn("Midtrans transaction rejected", "status", mErr.StatusCode, "message", mErr.Message)
		return nil, fmt.Errorf("midtrans create transaction: %s", mErr.Message)
	}
	return &Order{
		ID:          orderID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Key:         m.clientKey,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// Verify checks signature_key = SHA512(order_id + status_code + gross_amount + server_key)
// and that the transaction settled.
func (m *Midtrans) Verify(_ context.Context, proof Proof) (*Verification, error) {
	if proof.OrderID == "" || proof.Signature == "" {
		return nil, ErrVerificationFailed
	}
	want := MidtransSignature(proof.OrderID, proof.StatusCode, proof.GrossAmount, m.serverKey)
	got := strings.ToLower(proof.Signature)
	if subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
		return nil, ErrVerificationFailed
	}
	if proof.StatusCode != "200" {
		return nil, ErrVerificationFailed
	}
	switch proof.TransactionStatus {
	case "settlement", "capture":
	default:
		return nil, ErrVerificationFailed
	}
	courseID, _, ok := parseCourseOrderID(midtransOrderPrefix, proof.OrderID)
	if !ok {
		return nil, ErrVerificationFailed
	}
	amount, ok := minorUnits(proof.GrossAmount)
	if !ok {
		return nil, ErrVerificationFailed
	}
	return &Verification{
		OrderID:   proof.OrderID,
		PaymentID: proof.PaymentID,
		Signature: proof.Signature,
		Status:    proof.TransactionStatus,
		CourseID:  courseID,
		Amount:    amount,
		Raw: map[string]any{
			"order_id":           proof.OrderID,
			"status_code":        proof.StatusCode,
			"gross_amount":       proof.GrossAmount,
			"transaction_status": proof.TransactionStatus,
		},
	}, nil
}

func MidtransSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"tableside/internal/errors"
)

// Session is the gateway's transaction handle handed to the paying
// client, which later completes the flow via the signed callback.
type Session struct {
	OrderID  string
	Amount   int64
	Currency string
}

type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, receipt string) (*Session, error)
	KeyID() string
}

const currency = "INR"

type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

// CreateOrder opens a gateway session for the given amount in minor
// currency units. The SDK carries no cancellation contract, so ctx is
// accepted for interface symmetry only.
func (g *RazorpayGateway) CreateOrder(_ context.Context, amountMinor int64, receipt string) (*Session, error) {
	data := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, errors.NewUpstreamError("creating gateway order", err)
	}

	id, ok := body["id"].(string)
	if !ok {
		return nil, errors.NewUpstreamError("gateway order response missing id", nil)
	}

	session := &Session{
		OrderID:  id,
		Amount:   amountMinor,
		Currency: currency,
	}
	if c, ok := body["currency"].(string); ok {
		session.Currency = c
	}
	if a, ok := body["amount"].(float64); ok {
		session.Amount = int64(a)
	}

	return session, nil
}

// Receipt derives the gateway receipt label from the local order id.
func Receipt(orderID string) string {
	return fmt.Sprintf("order_rcpt_%s", orderID)
}

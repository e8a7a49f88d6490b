package dto

type InitiatePaymentResponse struct {
	Key      string `json:"key"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	OrderID  string `json:"orderId"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	GatewaySignature string `json:"razorpay_signature"`
	OrderID          string `json:"orderId"`
}

type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

package dto

import "time"

type TableDTO struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Token     string    `json:"token"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateTableRequest struct {
	Number int `json:"number"`
}

type TableQRResponse struct {
	DataURL string `json:"dataUrl"`
	URL     string `json:"url"`
}

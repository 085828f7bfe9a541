package model

import (
	"encoding/json"
	"time"
)

type Inquiry struct {
	ID               string    `json:"id" db:"id"`
	BuyerID          string    `json:"buyer_id" db:"buyer_id"`
	SupplierID       string    `json:"supplier_id" db:"supplier_id"`
	ProductID        *string   `json:"product_id,omitempty" db:"product_id"`
	Subject          string    `json:"subject" db:"subject"`
	Message          string    `json:"message" db:"message"`
	QuantityRequired *int      `json:"quantity_required,omitempty" db:"quantity_required"`
	TargetPrice      *string   `json:"target_price,omitempty" db:"target_price"`
	DeliveryTimeline *string   `json:"delivery_timeline,omitempty" db:"delivery_timeline"`
	Status           string    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

type InquiryResponse struct {
	ID          string          `json:"id" db:"id"`
	InquiryID   string          `json:"inquiry_id" db:"inquiry_id"`
	SenderID    string          `json:"sender_id" db:"sender_id"`
	Message     string          `json:"message" db:"message"`
	Attachments json.RawMessage `json:"attachments,omitempty" db:"attachments"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/edvin/tradelink/internal/model"
)

type InquiryService struct {
	db DB
}

func NewInquiryService(db DB) *InquiryService {
	return &InquiryService{db: db}
}

func (s *InquiryService) Create(ctx context.Context, inquiry *model.Inquiry) error {
	now := time.Now()
	inquiry.ID = uuid.NewString()
	inquiry.Status = model.InquiryStatusPending
	inquiry.CreatedAt = now
	inquiry.UpdatedAt = now

	_, err := s.db.Exec(ctx,
		`INSERT INTO inquiries (id, buyer_id, supplier_id, product_id, subject, message,
		   quantity_required, target_price, delivery_timeline, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		inquiry.ID, inquiry.BuyerID, inquiry.SupplierID, inquiry.ProductID,
		inquiry.Subject, inquiry.Message, inquiry.QuantityRequired,
		inquiry.TargetPrice, inquiry.DeliveryTimeline, inquiry.Status,
		inquiry.CreatedAt, inquiry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}
	return nil
}

func (s *InquiryService) GetByID(ctx context.Context, id string) (*model.Inquiry, error) {
	var i model.Inquiry
	err := s.db.QueryRow(ctx,
		`SELECT id, buyer_id, supplier_id, product_id, subject, message,
		   quantity_required, target_price, delivery_timeline, status, created_at, updated_at
		 FROM inquiries WHERE id = $1`, id,
	).Scan(&i.ID, &i.BuyerID, &i.SupplierID, &i.ProductID, &i.Subject, &i.Message,
		&i.QuantityRequired, &i.TargetPrice, &i.DeliveryTimeline, &i.Status,
		&i.CreatedAt, &i.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get inquiry %s: %w", id, err)
	}
	return &i, nil
}

// ListForProfile returns inquiries where the profile is buyer or supplier,
// newest first.
func (s *InquiryService) ListForProfile(ctx context.Context, profileID string) ([]model.Inquiry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, buyer_id, supplier_id, product_id, subject, message,
		   quantity_required, target_price, delivery_timeline, status, created_at, updated_at
		 FROM inquiries WHERE buyer_id = $1 OR supplier_id = $1
		 ORDER BY created_at DESC`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []model.Inquiry
	for rows.Next() {
		var i model.Inquiry
		if err := rows.Scan(&i.ID, &i.BuyerID, &i.SupplierID, &i.ProductID, &i.Subject,
			&i.Message, &i.QuantityRequired, &i.TargetPrice, &i.DeliveryTimeline,
			&i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		inquiries = append(inquiries, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiries: %w", err)
	}
	return inquiries, nil
}

// AddResponse appends a response to an inquiry. Only the buyer or the supplier
// on the thread may respond; the first supplier response marks the inquiry
// responded.
func (s *InquiryService) AddResponse(ctx context.Context, inquiry *model.Inquiry, response *model.InquiryResponse) error {
	if response.SenderID != inquiry.BuyerID && response.SenderID != inquiry.SupplierID {
		return ErrNotParticipant
	}

	response.ID = uuid.NewString()
	response.InquiryID = inquiry.ID
	response.CreatedAt = time.Now()

	_, err := s.db.Exec(ctx,
		`INSERT INTO inquiry_responses (id, inquiry_id, sender_id, message, attachments, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		response.ID, response.InquiryID, response.SenderID, response.Message,
		response.Attachments, response.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inquiry response: %w", err)
	}

	if response.SenderID == inquiry.SupplierID && inquiry.Status == model.InquiryStatusPending {
		_, err = s.db.Exec(ctx,
			`UPDATE inquiries SET status = $1, updated_at = now() WHERE id = $2`,
			model.InquiryStatusResponded, inquiry.ID)
		if err != nil {
			return fmt.Errorf("update inquiry status: %w", err)
		}
		inquiry.Status = model.InquiryStatusResponded
	}

	return nil
}

// ListResponses returns a thread's responses in chronological order. The
// caller is responsible for the participant check.
func (s *InquiryService) ListResponses(ctx context.Context, inquiryID string) ([]model.InquiryResponse, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, inquiry_id, sender_id, message, attachments, created_at
		 FROM inquiry_responses WHERE inquiry_id = $1 ORDER BY created_at`, inquiryID)
	if err != nil {
		return nil, fmt.Errorf("list inquiry responses: %w", err)
	}
	defer rows.Close()

	var responses []model.InquiryResponse
	for rows.Next() {
		var r model.InquiryResponse
		if err := rows.Scan(&r.ID, &r.InquiryID, &r.SenderID, &r.Message, &r.Attachments, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inquiry response: %w", err)
		}
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiry responses: %w", err)
	}
	return responses, nil
}

package model

// Product status constants. New products always start as pending_approval;
// the transition to active happens through moderation, outside this service.
const (
	ProductStatusActive          = "active"
	ProductStatusInactive        = "inactive"
	ProductStatusPendingApproval = "pending_approval"
)

// Inquiry status constants.
const (
	InquiryStatusPending   = "pending"
	InquiryStatusResponded = "responded"
	InquiryStatusClosed    = "closed"
	InquiryStatusCancelled = "cancelled"
)

// Profile user types.
const (
	UserTypeBuyer    = "buyer"
	UserTypeSupplier = "supplier"
	UserTypeAdmin    = "admin"
)

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EmailCategory is the AI triage classification of an inbound email
type EmailCategory string

const (
	CategoryOrder   EmailCategory = "발주"
	CategoryRequest EmailCategory = "요청"
	CategoryQuote   EmailCategory = "견적요청"
	CategoryInquiry EmailCategory = "문의"
	CategoryNotice  EmailCategory = "공지"
	CategoryMeeting EmailCategory = "미팅"
	CategoryClaim   EmailCategory = "클레임"
	CategoryOther   EmailCategory = "기타"
)

// EmailStatus tracks an email through the triage/approval flow
type EmailStatus string

const (
	EmailUnread   EmailStatus = "unread"
	EmailRead     EmailStatus = "read"
	EmailDraft    EmailStatus = "draft"
	EmailInReview EmailStatus = "in_review"
	EmailApproved EmailStatus = "approved"
	EmailRejected EmailStatus = "rejected"
	EmailSent     EmailStatus = "sent"
	EmailArchived EmailStatus = "archived"
)

// Email stores an inbound message together with its AI triage result
// and the staff-edited reply draft.
type Email struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ExternalID string `gorm:"uniqueIndex" json:"externalId"` // upstream message ID
	Subject    string `gorm:"not null" json:"subject"`
	Sender     string `gorm:"not null;index" json:"sender"`
	Recipient  string `json:"recipient"`
	Body       string `gorm:"type:text" json:"body"`
	BodyHTML   string `gorm:"type:text" json:"bodyHtml"`

	// AI classification
	Category     EmailCategory  `gorm:"default:'기타'" json:"category"`
	Priority     string         `gorm:"default:'medium'" json:"priority"` // high | medium | low
	AISummary    string         `gorm:"type:text" json:"aiSummary"`
	AIDraft      string         `gorm:"type:text" json:"aiDraft"`
	AIConfidence int            `gorm:"default:0" json:"aiConfidence"` // 0-100
	AIPayload    datatypes.JSON `json:"aiPayload,omitempty"`           // raw classifier output

	Status EmailStatus `gorm:"default:'unread';index" json:"status"`

	// Staff-edited draft
	DraftSubject  string `json:"draftSubject"`
	DraftResponse string `gorm:"type:text" json:"draftResponse"`

	ProcessedBy *string    `gorm:"type:uuid" json:"processedBy,omitempty"`
	ReceivedAt  *time.Time `json:"receivedAt,omitempty"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	SentAt      *time.Time `json:"sentAt,omitempty"`

	Attachments []EmailAttachment `gorm:"foreignKey:EmailID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Email model
func (Email) TableName() string {
	return "emails"
}

// EmailAttachment tracks a stored attachment of an inbound email
type EmailAttachment struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	EmailID     uint    `gorm:"not null;index" json:"emailId"`
	FileName    string  `gorm:"not null" json:"fileName"`
	FilePath    *string `json:"filePath,omitempty"`
	FileSize    int64   `gorm:"default:0" json:"fileSize"`
	ContentType string  `json:"contentType"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for EmailAttachment model
func (EmailAttachment) TableName() string {
	return "email_attachments"
}

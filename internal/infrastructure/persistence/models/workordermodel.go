package models

// Timestamps are epoch milliseconds, UTC. CreatedAt and UpdatedAt are owned
// by the domain layer, not by gorm auto-timestamps: a value-equal edit must
// leave updated_at untouched, so the model only ever stores what the
// aggregate says.
type WorkOrderModel struct {
	ID          uint   `gorm:"primaryKey"`
	TenantID    uint   `gorm:"not null;index"`
	UnitID      *uint  `gorm:"index"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	Location    string `gorm:"size:200"`
	Priority    string `gorm:"size:20;not null;index"`
	Status      string `gorm:"size:20;not null;index"`

	QuotedAmountCents    *int64
	QuoteNotes           string `gorm:"type:text"`
	QuoteProvidedAt      *int64
	QuoteApprovedAt      *int64
	QuoteRejectedAt      *int64
	QuoteRejectionReason string `gorm:"type:text"`

	ApprovedAt      *int64
	ApprovedBy      *uint
	RejectedAt      *int64
	RejectedBy      *uint
	RejectionReason string `gorm:"type:text"`

	StartedAt       *int64
	CompletedAt     *int64
	CompletionNotes string `gorm:"type:text"`

	SignedOffAt     *int64
	TenantSignature string `gorm:"size:200"`
	TenantFeedback  string `gorm:"type:text"`
	TenantRating    *int

	Version   int   `gorm:"not null;default:1"`
	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (WorkOrderModel) TableName() string {
	return "work_orders"
}

type PhotoModel struct {
	ID          uint   `gorm:"primaryKey"`
	WorkOrderID uint   `gorm:"not null;index"`
	UploadedBy  uint   `gorm:"not null"`
	Path        string `gorm:"size:500;not null"`
	Kind        string `gorm:"size:20;not null"`
	Caption     string `gorm:"size:500"`
	CreatedAt   int64  `gorm:"not null;index"`
}

func (PhotoModel) TableName() string {
	return "work_order_photos"
}

type CommentModel struct {
	ID          uint   `gorm:"primaryKey"`
	WorkOrderID uint   `gorm:"not null;index"`
	UserID      uint   `gorm:"not null;index"`
	Body        string `gorm:"type:text;not null"`
	IsInternal  bool   `gorm:"not null;default:false"`
	CreatedAt   int64  `gorm:"not null;index"`
}

func (CommentModel) TableName() string {
	return "work_order_comments"
}

// TenantContactModel is a read-side copy of tenant contact addresses, synced
// from the identity system that owns accounts. The portal never writes it
// except through the sync job.
type TenantContactModel struct {
	ID        uint   `gorm:"primaryKey"`
	TenantID  uint   `gorm:"uniqueIndex;not null"`
	Email     string `gorm:"size:255;not null"`
	UpdatedAt int64  `gorm:"not null"`
}

func (TenantContactModel) TableName() string {
	return "tenant_contacts"
}

type HistoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	WorkOrderID uint   `gorm:"not null;index"`
	Field       string `gorm:"size:50;not null"`
	OldValue    string `gorm:"type:text"`
	NewValue    string `gorm:"type:text"`
	ChangedBy   uint   `gorm:"not null"`
	ChangedAt   int64  `gorm:"not null;index"`
}

func (HistoryModel) TableName() string {
	return "work_order_history"
}

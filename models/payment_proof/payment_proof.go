package payment_proof

import (
	"time"

	"gorm.io/gorm"
)

// ProofRequest represents an uploaded UPI payment screenshot awaiting parsing
type ProofRequest struct {
	ID               uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID        string `json:"request_id" gorm:"type:varchar(24);uniqueIndex;not null"` // 24 character unique ID
	BookingID        string `json:"booking_id" gorm:"type:varchar(32);index;not null"`
	OriginalFileName string `json:"original_file_name" gorm:"type:varchar(255);not null"`
	SavedFileName    string `json:"saved_file_name" gorm:"type:varchar(255);not null"`
	FileHash         string `json:"file_hash" gorm:"type:varchar(128);index"` // SHA256 hash
	FilePath         string `json:"file_path" gorm:"type:varchar(500);not null"`
	FileSize         int64  `json:"file_size" gorm:"not null"`
	MimeType         string `json:"mime_type" gorm:"type:varchar(100);not null"`
	Status           string `json:"status" gorm:"type:varchar(50);not null;default:'processing';index"` // processing, success, failed
	ProcessingTimeMs int64  `json:"processing_time_ms" gorm:"default:0"`

	// Parsed data fields
	TransactionID string `json:"transaction_id" gorm:"type:varchar(100);index;default:''"`
	Amount        string `json:"amount" gorm:"type:varchar(50);default:''"`
	PaymentTime   string `json:"payment_time" gorm:"type:varchar(50);default:''"`
	PayerName     string `json:"payer_name" gorm:"type:varchar(255);default:''"`
	UPIApp        string `json:"upi_app" gorm:"type:varchar(100);default:''"`

	// Error information
	ErrorMessage string `json:"error_message" gorm:"type:text;default:''"`

	// Metadata
	IPAddress string `json:"ip_address" gorm:"type:varchar(45);index;default:''"` // Support IPv6
	UserAgent string `json:"user_agent" gorm:"type:text;default:''"`

	// Timestamps
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TableName returns the table name for ProofRequest
func (pr *ProofRequest) TableName() string {
	return "payment_proof_requests"
}

// BeforeCreate hook to set default values
func (pr *ProofRequest) BeforeCreate(tx *gorm.DB) error {
	if pr.Status == "" {
		pr.Status = "processing"
	}
	return nil
}

// IsProcessing checks if the request is still processing
func (pr *ProofRequest) IsProcessing() bool {
	return pr.Status == "processing"
}

// IsSuccess checks if the request was successful
func (pr *ProofRequest) IsSuccess() bool {
	return pr.Status == "success"
}

// IsFailed checks if the request failed
func (pr *ProofRequest) IsFailed() bool {
	return pr.Status == "failed"
}

// MarkAsSuccess marks the request as successful and saves parsed data
func (pr *ProofRequest) MarkAsSuccess(db *gorm.DB, parsedData *ProofResponse) error {
	pr.Status = "success"
	pr.TransactionID = parsedData.TransactionID
	pr.Amount = parsedData.Amount
	pr.PaymentTime = parsedData.PaymentTime
	pr.PayerName = parsedData.PayerName
	pr.UPIApp = parsedData.UPIApp
	pr.ProcessingTimeMs = parsedData.ProcessingTimeMs

	return db.Save(pr).Error
}

// MarkAsFailed marks the request as failed with error message
func (pr *ProofRequest) MarkAsFailed(db *gorm.DB, errorMsg string, processingTime int64) error {
	pr.Status = "failed"
	pr.ErrorMessage = errorMsg
	pr.ProcessingTimeMs = processingTime

	return db.Save(pr).Error
}

// ProofResponse represents the parsed screenshot data
type ProofResponse struct {
	RequestID        string `json:"request_id"`
	TransactionID    string `json:"transaction_id"`
	Amount           string `json:"amount"`
	PaymentTime      string `json:"payment_time"`
	PayerName        string `json:"payer_name"`
	UPIApp           string `json:"upi_app"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}

package payment_proof

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ticket-booking/logger"
	proofModel "ticket-booking/models/payment_proof"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProofService tracks uploaded UPI payment screenshots and their parse
// results.
type ProofService struct {
	DB        *gorm.DB
	UploadDir string
}

// NewProofService creates a new payment proof service
func NewProofService(db *gorm.DB) *ProofService {
	return &ProofService{
		DB:        db,
		UploadDir: "uploaded_proofs",
	}
}

// GenerateRequestID generates a 24 character unique request ID
func (s *ProofService) GenerateRequestID() string {
	bytes := make([]byte, 12)
	rand.Read(bytes)
	requestID := hex.EncodeToString(bytes)

	// Use last 6 characters of timestamp + 18 characters of random hex
	timestamp := time.Now().Unix()
	return fmt.Sprintf("%06x%s", timestamp&0xffffff, requestID[:18])
}

// CreateInitialRequest creates an initial request record in the database
func (s *ProofService) CreateInitialRequest(c *fiber.Ctx, requestID, bookingID, originalFileName string, fileSize int64, mimeType string) (*proofModel.ProofRequest, error) {
	ipAddress := c.IP()
	if ipAddress == "" {
		ipAddress = "unknown"
	}
	userAgent := c.Get("User-Agent")

	request := &proofModel.ProofRequest{
		RequestID:        requestID,
		BookingID:        bookingID,
		OriginalFileName: originalFileName,
		FileSize:         fileSize,
		MimeType:         mimeType,
		Status:           "processing",
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
	}

	if err := s.DB.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create initial request: %w", err)
	}

	return request, nil
}

// SaveFileAsync saves the uploaded screenshot asynchronously
func (s *ProofService) SaveFileAsync(requestID string, fileBytes []byte, originalFileName, mimeType string) {
	go func() {
		if err := s.saveFile(requestID, fileBytes, originalFileName); err != nil {
			logger.Error(fmt.Sprintf("Failed to save screenshot for request %s", requestID), err)
			s.updateRequestWithFileError(requestID, err.Error())
		}
	}()
}

func (s *ProofService) saveFile(requestID string, fileBytes []byte, originalFileName string) error {
	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	hash := sha256.Sum256(fileBytes)
	fileHash := hex.EncodeToString(hash[:])

	ext := filepath.Ext(originalFileName)
	savedFileName := fmt.Sprintf("%s_%d%s", requestID, time.Now().Unix(), ext)
	filePath := filepath.Join(s.UploadDir, savedFileName)

	if err := os.WriteFile(filePath, fileBytes, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	updates := map[string]interface{}{
		"saved_file_name": savedFileName,
		"file_hash":       fileHash,
		"file_path":       filePath,
	}

	if err := s.DB.Model(&proofModel.ProofRequest{}).Where("request_id = ?", requestID).Updates(updates).Error; err != nil {
		// If database update fails, try to clean up the file
		os.Remove(filePath)
		return fmt.Errorf("failed to update request with file info: %w", err)
	}

	return nil
}

func (s *ProofService) updateRequestWithFileError(requestID, errorMsg string) {
	updates := map[string]interface{}{
		"error_message": errorMsg,
	}
	if err := s.DB.Model(&proofModel.ProofRequest{}).Where("request_id = ?", requestID).Updates(updates).Error; err != nil {
		logger.Error(fmt.Sprintf("Failed to record file error for request %s", requestID), err)
	}
}

// SaveSuccessResultAsync marks a request successful off the request path
func (s *ProofService) SaveSuccessResultAsync(requestID string, parsed *proofModel.ProofResponse, processingTime int64) {
	go func() {
		var request proofModel.ProofRequest
		if err := s.DB.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to load request %s for success result", requestID), err)
			return
		}
		parsed.ProcessingTimeMs = processingTime
		if err := request.MarkAsSuccess(s.DB, parsed); err != nil {
			logger.Error(fmt.Sprintf("Failed to save success result for request %s", requestID), err)
		}
	}()
}

// SaveFailureResultAsync marks a request failed off the request path
func (s *ProofService) SaveFailureResultAsync(requestID, errorMsg string, processingTime int64) {
	go func() {
		var request proofModel.ProofRequest
		if err := s.DB.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			logger.Error(fmt.Sprintf("Failed to load request %s for failure result", requestID), err)
			return
		}
		if err := request.MarkAsFailed(s.DB, errorMsg, processingTime); err != nil {
			logger.Error(fmt.Sprintf("Failed to save failure result for request %s", requestID), err)
		}
	}()
}

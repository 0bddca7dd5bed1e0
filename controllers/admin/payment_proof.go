package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ticket-booking/logger"
	bookingModel "ticket-booking/models/booking"
	proofModel "ticket-booking/models/payment_proof"
	proofService "ticket-booking/services/payment_proof"
	"ticket-booking/types"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/genai"
)

// ParsePaymentProof handles a UPI payment screenshot upload, extracts the
// transaction details with Gemini Vision and compares them against the
// pending booking under review.
func (ac *AdminController) ParsePaymentProof(c *fiber.Ctx) error {
	startTime := time.Now()

	if ac.DB == nil {
		return ac.sendResponseWithLog(c, fiber.StatusServiceUnavailable, types.ApiResponse{
			Status:  fiber.StatusServiceUnavailable,
			Message: "Screenshot parsing requires a database connection",
			Data:    nil,
		})
	}

	service := proofService.NewProofService(ac.DB)
	requestID := service.GenerateRequestID()

	bookingID := c.FormValue("booking_id")
	if bookingID == "" {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "booking_id is required",
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	var booking *bookingModel.PendingBooking
	for _, b := range ac.Store.PendingBookings() {
		if b.BookingID == bookingID {
			found := b
			booking = &found
			break
		}
	}
	if booking == nil {
		return ac.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "No pending booking found with ID " + bookingID,
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		logger.Error(fmt.Sprintf("No image file provided for request %s", requestID), err)
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "No image file provided",
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	mimeType := file.Header.Get("Content-Type")
	if !isValidImageType(mimeType) {
		logger.Error(fmt.Sprintf("Invalid file type %s for request %s", mimeType, requestID),
			fmt.Errorf("invalid mime type: %s", mimeType))
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid file type. Only JPEG, JPG, PNG, and WebP files are allowed",
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	maxSize := int64(10 * 1024 * 1024) // 10MB
	if file.Size > maxSize {
		logger.Error(fmt.Sprintf("File size %d exceeds max %d for request %s", file.Size, maxSize, requestID),
			fmt.Errorf("file size %d exceeds max %d", file.Size, maxSize))
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "File size too large. Maximum size is 10MB",
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	if _, err := service.CreateInitialRequest(c, requestID, bookingID, file.Filename, file.Size, mimeType); err != nil {
		logger.Error(fmt.Sprintf("Failed to create initial request %s", requestID), err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to initialize request",
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	src, err := file.Open()
	if err != nil {
		processingTime := time.Since(startTime).Milliseconds()
		service.SaveFailureResultAsync(requestID, "Failed to open uploaded file", processingTime)
		logger.Error(fmt.Sprintf("Failed to open uploaded file for request %s", requestID), err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to process uploaded file",
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		processingTime := time.Since(startTime).Milliseconds()
		service.SaveFailureResultAsync(requestID, "Failed to read file content", processingTime)
		logger.Error(fmt.Sprintf("Failed to read file content for request %s", requestID), err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to read file content",
			Data:    map[string]interface{}{"request_id": requestID},
		})
	}

	service.SaveFileAsync(requestID, fileBytes, file.Filename, mimeType)

	result, err := parseProofWithGemini(fileBytes, mimeType)
	if err != nil {
		processingTime := time.Since(startTime).Milliseconds()
		service.SaveFailureResultAsync(requestID, fmt.Sprintf("Gemini parsing failed: %s", err.Error()), processingTime)
		logger.Error(fmt.Sprintf("Failed to parse payment screenshot for request %s", requestID), err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to parse payment screenshot",
			Data: map[string]interface{}{
				"error":      err.Error(),
				"request_id": requestID,
			},
		})
	}

	processingTime := time.Since(startTime).Milliseconds()
	result.RequestID = requestID
	service.SaveSuccessResultAsync(requestID, result, processingTime)

	logger.Success(fmt.Sprintf("Payment screenshot parsed in %dms for booking %s, Request ID: %s",
		processingTime, bookingID, requestID))

	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Payment screenshot parsed successfully",
		Data: map[string]interface{}{
			"parsed":     result,
			"comparison": compareProof(result, booking),
		},
	})
}

// compareProof checks the parsed screenshot against the booking's claimed
// transaction reference and amount.
func compareProof(parsed *proofModel.ProofResponse, booking *bookingModel.PendingBooking) map[string]interface{} {
	txnMatch := parsed.TransactionID != "" &&
		strings.EqualFold(strings.TrimSpace(parsed.TransactionID), booking.TransactionID)

	amountMatch := digitsOnly(parsed.Amount) == fmt.Sprintf("%d", booking.TotalAmount)

	return map[string]interface{}{
		"transaction_id_match": txnMatch,
		"amount_match":         amountMatch,
		"claimed_transaction":  booking.TransactionID,
		"claimed_amount":       booking.TotalAmount,
	}
}

// digitsOnly strips currency symbols, separators and decimals so "₹2,000.00"
// compares as "2000".
func digitsOnly(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseProofWithGemini uses Gemini Vision to extract structured data from a
// UPI payment screenshot.
func parseProofWithGemini(imageBytes []byte, mimeType string) (*proofModel.ProofResponse, error) {
	ctx := context.Background()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	prompt := `Analyze this UPI payment confirmation screenshot and extract the following information. Return ONLY valid JSON.

			Extract these fields from the image. If a field is missing or unclear, use an empty string.

			Required JSON format:
			{
			"transaction_id": string,   // UPI transaction ID / UTR / reference number
			"amount": string,           // Paid amount, digits and separators as shown
			"payment_time": string,     // Payment date/time as shown
			"payer_name": string,       // Name of the person who paid
			"upi_app": string           // App used (GPay, PhonePe, Paytm, BHIM, other)
			}`

	content := &genai.Content{
		Parts: []*genai.Part{
			&genai.Part{Text: prompt},
			&genai.Part{InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     imageBytes,
			}},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		"gemini-2.5-flash-lite",
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with OCR: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated by OCR")
	}

	responseText := result.Candidates[0].Content.Parts[0].Text
	if responseText == "" {
		return nil, fmt.Errorf("empty response from OCR")
	}

	jsonText := extractJSONFromMarkdown(responseText)

	var parsedData proofModel.ProofResponse
	if err := json.Unmarshal([]byte(jsonText), &parsedData); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, response: %s", err, jsonText)
	}

	return &parsedData, nil
}

// extractJSONFromMarkdown extracts JSON content from markdown code blocks
func extractJSONFromMarkdown(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			return strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	return text
}

// isValidImageType checks if the provided content type is a valid image type
func isValidImageType(contentType string) bool {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}
	return validTypes[contentType]
}

package httpServices

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"
)

// EmailClient sends transactional receipt emails through the EmailJS REST
// API. Delivery is best-effort; callers must not couple booking outcomes to
// the result.
type EmailClient struct {
	httpClient *http.Client
	baseURL    string
	serviceID  string
	templateID string
	publicKey  string
}

// NewClient reads the EmailJS credentials from the environment. An empty
// base URL falls back to the hosted API.
func NewClient(baseURL string) *EmailClient {
	if baseURL == "" {
		baseURL = "https://api.emailjs.com"
	}
	return &EmailClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:    baseURL,
		serviceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		templateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		publicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
	}
}

// SendBookingEmail posts the template params to the send endpoint.
func (c *EmailClient) SendBookingEmail(params TemplateParams) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     c.templateID,
		UserID:         c.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/api/v1.0/email/send", bytes.NewBuffer(body))
	if err != nil {
		return err
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.New("EmailJS API returned non-OK status: " + resp.Status + " " + string(detail))
	}
	return nil
}

package httpServices

// TemplateParams are the named fields the receipt template interpolates.
type TemplateParams struct {
	ToName        string `json:"to_name"`
	ToEmail       string `json:"to_email"`
	PlanName      string `json:"plan_name"`
	Tickets       int    `json:"tickets"`
	TotalAmount   string `json:"total_amount"`
	BookingID     string `json:"booking_id"`
	Phone         string `json:"phone"`
	EventDate     string `json:"event_date"`
	EventVenue    string `json:"event_venue"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams TemplateParams `json:"template_params"`
}

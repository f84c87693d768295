package models

import "time"

// Payment — неизменяемая запись о завершённой покупке курса.
// ProviderSessionID уникален, повторная верификация той же сессии
// не создаёт дубликат.
type Payment struct {
	ID                 int       `json:"id"`
	ProviderSessionID  string    `json:"provider_session_id"`
	ProviderCustomerID string    `json:"provider_customer_id"`
	UserUID            string    `json:"user_uid"`
	CourseID           string    `json:"course_id"`
	Amount             int64     `json:"amount"`
	Currency           string    `json:"currency"`
	CreatedAt          time.Time `json:"created_at"`
}

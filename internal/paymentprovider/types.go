package paymentprovider

// CreateSessionRequest описывает параметры создаваемой checkout-сессии:
// одна позиция (курс) с ценой в минорных единицах валюты, адреса редиректов
// и метаданные для последующей сверки платежа.
type CreateSessionRequest struct {
	Currency           string
	ProductName        string
	ProductDescription string
	UnitAmount         int64 // цена в минорных единицах (major * 100)
	Quantity           int
	SuccessURL         string
	CancelURL          string
	Metadata           map[string]string
}

// CheckoutSession — ответ Stripe по checkout-сессии. PaymentStatus
// принимает значения "paid", "unpaid", "no_payment_required".
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Mode          string            `json:"mode"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Customer      string            `json:"customer"`
	Metadata      map[string]string `json:"metadata"`
}

// apiError — структура ошибки Stripe API.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

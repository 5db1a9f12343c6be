package paymentprovider

// InitializeRequest — тело запроса POST /transaction/initialize.
// Ключи customization[...] — плоские, как того требует API Chapa.
type InitializeRequest struct {
	Amount                   string `json:"amount"`
	Currency                 string `json:"currency"`
	Email                    string `json:"email"`
	FirstName                string `json:"first_name"`
	LastName                 string `json:"last_name"`
	TxRef                    string `json:"tx_ref"`
	CallbackURL              string `json:"callback_url"`
	ReturnURL                string `json:"return_url"`
	CustomizationTitle       string `json:"customization[title],omitempty"`
	CustomizationDescription string `json:"customization[description],omitempty"`
}

// InitializeResponse — ответ шлюза на инициализацию платежа.
// При успехе Status == "success" и Data.CheckoutURL содержит адрес
// платёжной страницы.
type InitializeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

// VerifyResponse — ответ шлюза на проверку транзакции по её ссылке.
// Транзакция считается оплаченной только при Data.Status == "success".
type VerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
	} `json:"data"`
}

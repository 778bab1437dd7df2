package domain

// CheckoutForm is the customer input collected at checkout. Card fields are
// required by the form but never stored on the order.
type CheckoutForm struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	Zip        string `json:"zip" binding:"required"`
	CardName   string `json:"cardName" binding:"required"`
	CardNumber string `json:"cardNumber" binding:"required"`
	ExpDate    string `json:"expDate" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
}

package services

import (
	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

func CreateMockProduct(id, name, price, category string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
	}
}

func CreateMockOrder(id string, status domain.OrderStatus) domain.Order {
	return domain.Order{
		ID:           id,
		CustomerName: TestCustomerName,
		Email:        TestEmail,
		Status:       status,
	}
}

func CreateMockForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		Name:       TestCustomerName,
		Email:      TestEmail,
		Address:    "1 Test Way",
		City:       "Testville",
		Zip:        "12345",
		CardName:   TestCustomerName,
		CardNumber: "4242424242424242",
		ExpDate:    "12/30",
		CVV:        "123",
	}
}

const (
	TestCustomerName = "Test Customer"
	TestEmail        = "test@example.com"
	TestOrderToken   = "ABC123XYZ"
)

package models

// Customer is the person a bill is issued to.
//
// Customers are created the first time a bill references a new (Name, Phone)
// pair and are never updated or deleted on their own. A later bill with the
// same pair reuses the stored customer, even if Email differs.
type Customer struct {
	// ID is the store-assigned identifier.
	ID int64

	// Name is the customer's full name. Required.
	Name string

	// Email is optional. Empty when the customer gave none.
	Email string

	// Phone is required and, together with Name, identifies the customer.
	Phone string
}

package api

// ContactRequest defines the payload for creating and updating a contact.
// The fields are validated by the use cases, which own the user-facing
// validation messages.
type ContactRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// ListContactsQuery holds the query parameters of GET /api/contacts.
type ListContactsQuery struct {
	// DDD filters contacts by area code. Empty means no filter.
	DDD string `validate:"omitempty,len=2,numeric"`
}

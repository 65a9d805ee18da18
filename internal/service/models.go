package service

import "github.com/phrazzld/contacts-api/internal/domain"

// InsertContactRequest carries the raw input for creating a contact.
type InsertContactRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// UpdateContactRequest carries the raw input for replacing a contact's fields.
type UpdateContactRequest struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

// ContactResponse is the flattened view of a contact returned by every use case.
// PhoneNumber holds the normalized digits and DDD its area code.
type ContactResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	DDD         string `json:"ddd"`
}

// NewContactResponse flattens a domain contact into its response view.
func NewContactResponse(c *domain.Contact) *ContactResponse {
	return &ContactResponse{
		ID:          c.ID,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber.Value(),
		Email:       c.Email,
		DDD:         c.DDD(),
	}
}

// newContactResponses maps a slice of contacts, never returning nil.
func newContactResponses(contacts []*domain.Contact) []*ContactResponse {
	out := make([]*ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, NewContactResponse(c))
	}
	return out
}

package domain

// Contact is an entry of the contacts directory.
//
// Contact performs no validation of its own: callers must validate the name
// and email before constructing or updating it. The phone number is always
// valid because PhoneNumber can only be obtained through NewPhoneNumber.
type Contact struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	PhoneNumber PhoneNumber `json:"phone_number"`
}

// NewContact creates a contact that has not been persisted yet.
// Its ID is zero until the store assigns one.
func NewContact(name string, phone PhoneNumber, email string) *Contact {
	return &Contact{
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
	}
}

// NewContactWithID rebuilds a contact with a known identity, typically when
// loading it from storage.
func NewContactWithID(id int64, name, email string, phone PhoneNumber) *Contact {
	return &Contact{
		ID:          id,
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
	}
}

// Update replaces the name, phone number and email of the contact.
// The identity is left untouched.
func (c *Contact) Update(name string, phone PhoneNumber, email string) {
	c.Name = name
	c.PhoneNumber = phone
	c.Email = email
}

// DDD returns the area code of the contact's phone number.
func (c *Contact) DDD() string {
	return c.PhoneNumber.DDD()
}

package model

import "time"

// Party is a person that may hold employee or contractor profiles and own
// documents. SSN is stored digits-only and never serialized; list reads
// expose a masked form instead.
type Party struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	DOB           time.Time `json:"dob"`
	Gender        string    `json:"gender"`
	SSN           string    `json:"-"`
	AddressFull   string    `json:"address_full"`
	AddressCity   string    `json:"address_city"`
	AddressZip    string    `json:"address_zip"`
	AddressState  string    `json:"address_state"`
	MaritalStatus string    `json:"marital_status"`
	PhoneNumber   string    `json:"phone_number"`
	Email         string    `json:"email"`
	Dependants    int       `json:"dependants"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MaskedSSN returns the display form of the SSN, e.g. "***-**-6789".
func (p *Party) MaskedSSN() string {
	if len(p.SSN) < 4 {
		return ""
	}
	return "***-**-" + p.SSN[len(p.SSN)-4:]
}

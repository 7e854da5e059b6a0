package model

import "time"

// Compensation types for employee profiles.
const (
	CompensationHourly   = "hourly"
	CompensationSalaried = "salaried"
)

// EmployeeProfile ties a party to an employer as a salaried or hourly employee.
type EmployeeProfile struct {
	ID               int64      `json:"id"`
	PartyID          int64      `json:"party_id"`
	EmployerID       string     `json:"employer_id"`
	CompensationType string     `json:"compensation_type"`
	DateHired        time.Time  `json:"date_hired"`
	DateOffboarded   *time.Time `json:"date_offboarded,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ContractorProfile ties a party to an employer for a contract period.
type ContractorProfile struct {
	ID                int64      `json:"id"`
	PartyID           int64      `json:"party_id"`
	EmployerID        string     `json:"employer_id"`
	ContractStartDate time.Time  `json:"contract_start_date"`
	ContractEndDate   *time.Time `json:"contract_end_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

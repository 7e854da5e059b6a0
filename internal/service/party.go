package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"hrapi/internal/model"
	"hrapi/internal/repository"
)

var (
	rePhone  = regexp.MustCompile(`^\d{10}$`)
	reZip    = regexp.MustCompile(`^\d{5}$`)
	reDigits = regexp.MustCompile(`\D`)
)

// SSNs that look syntactically fine but are never issued.
var invalidSSNs = map[string]bool{
	"000000000": true,
	"111111111": true,
	"222222222": true,
	"123456789": true,
}

var validGenders = map[string]bool{"male": true, "female": true, "other": true}
var validMaritalStatuses = map[string]bool{"single": true, "married": true, "divorced": true}

var validStates = map[string]bool{}

func init() {
	for _, s := range strings.Fields(
		"AL AK AZ AR CA CO CT DE DC FL GA HI ID IL IN IA KS KY LA ME MD MA MI MN MS MO MT NE NV NH NJ NM NY NC ND OH OK OR PA RI SC SD TN TX UT VT VA WA WV WI WY") {
		validStates[s] = true
	}
}

// PartyView is a Party plus the masked SSN for display; the raw SSN never
// leaves the service layer.
type PartyView struct {
	model.Party
	SSNMasked string `json:"ssn_masked"`
}

// PartyListResult is the service-level DTO for paginated parties.
type PartyListResult struct {
	Items []PartyView `json:"data"`
	Total int         `json:"total"`
}

// CreatePartyInput carries a new party record. SSN may arrive formatted; it is
// normalized to digits before validation and storage.
type CreatePartyInput struct {
	FirstName     string
	LastName      string
	DOB           time.Time
	Gender        string
	SSN           string
	AddressFull   string
	AddressCity   string
	AddressZip    string
	AddressState  string
	MaritalStatus string
	PhoneNumber   string
	Email         string
	Dependants    int
}

// UpdatePartyInput is a partial update; SSN is immutable and absent here.
type UpdatePartyInput struct {
	FirstName     *string
	LastName      *string
	DOB           *time.Time
	AddressFull   *string
	AddressCity   *string
	AddressZip    *string
	AddressState  *string
	MaritalStatus *string
	PhoneNumber   *string
	Email         *string
	Dependants    *int
	Active        *bool
}

// PartyService defines the use cases for party records.
type PartyService interface {
	Create(ctx context.Context, in CreatePartyInput) (*PartyView, error)
	Get(ctx context.Context, id int64) (*PartyView, error)
	List(ctx context.Context, limit, offset int) (*PartyListResult, error)
	Update(ctx context.Context, id int64, in UpdatePartyInput) (*PartyView, error)
}

type partyService struct {
	repo repository.PartyRepository
	log  *zap.Logger
}

// NewPartyService constructs a new PartyService.
func NewPartyService(repo repository.PartyRepository, log *zap.Logger) PartyService {
	return &partyService{repo: repo, log: log}
}

func (s *partyService) Create(ctx context.Context, in CreatePartyInput) (*PartyView, error) {
	if err := validateName("first_name", in.FirstName); err != nil {
		return nil, err
	}
	if err := validateName("last_name", in.LastName); err != nil {
		return nil, err
	}
	if err := validateDOB(in.DOB); err != nil {
		return nil, err
	}
	if !validGenders[in.Gender] {
		return nil, invalidField("gender", "gender must be one of male, female, other")
	}
	ssn := reDigits.ReplaceAllString(in.SSN, "")
	if len(ssn) != 9 {
		return nil, invalidField("ssn", "SSN must be exactly 9 digits")
	}
	if invalidSSNs[ssn] {
		return nil, invalidField("ssn", "invalid SSN")
	}
	if len(strings.TrimSpace(in.AddressFull)) < 10 {
		return nil, invalidField("address_full", "address must be at least 10 characters")
	}
	if len(strings.TrimSpace(in.AddressCity)) < 2 {
		return nil, invalidField("address_city", "city must be at least 2 characters")
	}
	if !reZip.MatchString(in.AddressZip) {
		return nil, invalidField("address_zip", "ZIP code must be exactly 5 digits")
	}
	if !validStates[in.AddressState] {
		return nil, invalidField("address_state", "unknown state code")
	}
	marital := in.MaritalStatus
	if marital == "" {
		marital = "single"
	}
	if !validMaritalStatuses[marital] {
		return nil, invalidField("marital_status", "marital status must be one of single, married, divorced")
	}
	if !rePhone.MatchString(in.PhoneNumber) {
		return nil, invalidField("phone_number", "phone number must be exactly 10 digits")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if in.Dependants < 0 || in.Dependants > 20 {
		return nil, invalidField("dependants", "dependants must be between 0 and 20")
	}

	for field, value := range map[string]string{
		"ssn":          ssn,
		"email":        email,
		"phone_number": in.PhoneNumber,
	} {
		taken, err := s.repo.ExistsByField(ctx, field, value, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, invalidField(field, field+" already exists")
		}
	}

	p := &model.Party{
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		DOB:           in.DOB,
		Gender:        in.Gender,
		SSN:           ssn,
		AddressFull:   strings.TrimSpace(in.AddressFull),
		AddressCity:   strings.TrimSpace(in.AddressCity),
		AddressZip:    in.AddressZip,
		AddressState:  in.AddressState,
		MaritalStatus: marital,
		PhoneNumber:   in.PhoneNumber,
		Email:         email,
		Dependants:    in.Dependants,
	}
	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info("party_created", zap.Int64("party_id", stored.ID))
	return newPartyView(stored), nil
}

func (s *partyService) Get(ctx context.Context, id int64) (*PartyView, error) {
	p, err := s.findParty(ctx, id)
	if err != nil {
		return nil, err
	}
	return newPartyView(p), nil
}

func (s *partyService) List(ctx context.Context, limit, offset int) (*PartyListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	items := make([]PartyView, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, *newPartyView(&res.Items[i]))
	}
	return &PartyListResult{Items: items, Total: res.Total}, nil
}

func (s *partyService) Update(ctx context.Context, id int64, in UpdatePartyInput) (*PartyView, error) {
	if _, err := s.findParty(ctx, id); err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		if err := validateName("first_name", *in.FirstName); err != nil {
			return nil, err
		}
	}
	if in.LastName != nil {
		if err := validateName("last_name", *in.LastName); err != nil {
			return nil, err
		}
	}
	if in.DOB != nil {
		if err := validateDOB(*in.DOB); err != nil {
			return nil, err
		}
	}
	if in.AddressFull != nil && len(strings.TrimSpace(*in.AddressFull)) < 10 {
		return nil, invalidField("address_full", "address must be at least 10 characters")
	}
	if in.AddressCity != nil && len(strings.TrimSpace(*in.AddressCity)) < 2 {
		return nil, invalidField("address_city", "city must be at least 2 characters")
	}
	if in.AddressZip != nil && !reZip.MatchString(*in.AddressZip) {
		return nil, invalidField("address_zip", "ZIP code must be exactly 5 digits")
	}
	if in.AddressState != nil && !validStates[*in.AddressState] {
		return nil, invalidField("address_state", "unknown state code")
	}
	if in.MaritalStatus != nil && !validMaritalStatuses[*in.MaritalStatus] {
		return nil, invalidField("marital_status", "marital status must be one of single, married, divorced")
	}
	if in.PhoneNumber != nil {
		if !rePhone.MatchString(*in.PhoneNumber) {
			return nil, invalidField("phone_number", "phone number must be exactly 10 digits")
		}
		taken, err := s.repo.ExistsByField(ctx, "phone_number", *in.PhoneNumber, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, invalidField("phone_number", "phone_number already exists")
		}
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		taken, err := s.repo.ExistsByField(ctx, "email", email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, invalidField("email", "email already exists")
		}
		in.Email = &email
	}
	if in.Dependants != nil && (*in.Dependants < 0 || *in.Dependants > 20) {
		return nil, invalidField("dependants", "dependants must be between 0 and 20")
	}

	updated, err := s.repo.Update(ctx, id, repository.PartyUpdate{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		DOB:           in.DOB,
		AddressFull:   in.AddressFull,
		AddressCity:   in.AddressCity,
		AddressZip:    in.AddressZip,
		AddressState:  in.AddressState,
		MaritalStatus: in.MaritalStatus,
		PhoneNumber:   in.PhoneNumber,
		Email:         in.Email,
		Dependants:    in.Dependants,
		Active:        in.Active,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartyNotFound
		}
		return nil, err
	}
	return newPartyView(updated), nil
}

func (s *partyService) findParty(ctx context.Context, id int64) (*model.Party, error) {
	if id <= 0 {
		return nil, invalidField("id", "id is required")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartyNotFound
		}
		return nil, err
	}
	return p, nil
}

func newPartyView(p *model.Party) *PartyView {
	return &PartyView{Party: *p, SSNMasked: p.MaskedSSN()}
}

func validateName(field, value string) error {
	v := strings.TrimSpace(value)
	if len(v) < 2 || len(v) > 100 {
		return invalidField(field, field+" must be between 2 and 100 characters")
	}
	return nil
}

func validateDOB(dob time.Time) error {
	today := time.Now().UTC()
	if dob.After(today) {
		return invalidField("dob", "date of birth cannot be in the future")
	}
	if dob.Before(today.AddDate(-120, 0, 0)) {
		return invalidField("dob", "invalid date of birth")
	}
	if dob.After(today.AddDate(-18, 0, 0)) {
		return invalidField("dob", "must be at least 18 years old")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") || len(email) > 128 {
		return invalidField("email", "invalid email address")
	}
	return nil
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"hrapi/internal/model"
	"hrapi/internal/repository"
)

// CreateEmployeeInput carries a new employee profile for an existing party.
type CreateEmployeeInput struct {
	PartyID          int64
	EmployerID       string
	CompensationType string
	DateHired        time.Time
	DateOffboarded   *time.Time
}

// UpdateEmployeeInput is a partial employee profile update.
type UpdateEmployeeInput struct {
	CompensationType *string
	DateHired        *time.Time
	DateOffboarded   *time.Time
}

// CreateContractorInput carries a new contractor profile for an existing party.
type CreateContractorInput struct {
	PartyID           int64
	EmployerID        string
	ContractStartDate time.Time
	ContractEndDate   *time.Time
}

// UpdateContractorInput is a partial contractor profile update.
type UpdateContractorInput struct {
	ContractStartDate *time.Time
	ContractEndDate   *time.Time
}

// EmployeeListResult is the service-level DTO for paginated employee profiles.
type EmployeeListResult struct {
	Items []model.EmployeeProfile `json:"data"`
	Total int                     `json:"total"`
}

// ContractorListResult is the service-level DTO for paginated contractor profiles.
type ContractorListResult struct {
	Items []model.ContractorProfile `json:"data"`
	Total int                       `json:"total"`
}

// ProfileService defines the use cases for employee and contractor profiles.
type ProfileService interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*model.EmployeeProfile, error)
	GetEmployee(ctx context.Context, id int64) (*model.EmployeeProfile, error)
	ListEmployees(ctx context.Context, limit, offset int) (*EmployeeListResult, error)
	UpdateEmployee(ctx context.Context, id int64, in UpdateEmployeeInput) (*model.EmployeeProfile, error)

	CreateContractor(ctx context.Context, in CreateContractorInput) (*model.ContractorProfile, error)
	GetContractor(ctx context.Context, id int64) (*model.ContractorProfile, error)
	ListContractors(ctx context.Context, limit, offset int) (*ContractorListResult, error)
	UpdateContractor(ctx context.Context, id int64, in UpdateContractorInput) (*model.ContractorProfile, error)
}

type profileService struct {
	repo    repository.ProfileRepository
	parties repository.PartyRepository
	log     *zap.Logger
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(repo repository.ProfileRepository, parties repository.PartyRepository, log *zap.Logger) ProfileService {
	return &profileService{repo: repo, parties: parties, log: log}
}

func (s *profileService) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*model.EmployeeProfile, error) {
	if err := s.checkParty(ctx, in.PartyID); err != nil {
		return nil, err
	}
	if in.EmployerID == "" {
		return nil, invalidField("employer_id", "employer_id is required")
	}
	comp := in.CompensationType
	if comp == "" {
		comp = model.CompensationHourly
	}
	if comp != model.CompensationHourly && comp != model.CompensationSalaried {
		return nil, invalidField("compensation_type", "compensation type must be hourly or salaried")
	}
	if in.DateHired.IsZero() {
		return nil, invalidField("date_hired", "date_hired is required")
	}
	if in.DateOffboarded != nil && in.DateOffboarded.Before(in.DateHired) {
		return nil, invalidField("date_offboarded", "offboarding cannot precede hiring")
	}

	stored, err := s.repo.CreateEmployee(ctx, &model.EmployeeProfile{
		PartyID:          in.PartyID,
		EmployerID:       in.EmployerID,
		CompensationType: comp,
		DateHired:        in.DateHired,
		DateOffboarded:   in.DateOffboarded,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("employee_profile_created", zap.Int64("profile_id", stored.ID), zap.Int64("party_id", stored.PartyID))
	return stored, nil
}

func (s *profileService) GetEmployee(ctx context.Context, id int64) (*model.EmployeeProfile, error) {
	p, err := s.repo.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, mapProfileErr(err)
	}
	return p, nil
}

func (s *profileService) ListEmployees(ctx context.Context, limit, offset int) (*EmployeeListResult, error) {
	res, err := s.repo.ListEmployees(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &EmployeeListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *profileService) UpdateEmployee(ctx context.Context, id int64, in UpdateEmployeeInput) (*model.EmployeeProfile, error) {
	if in.CompensationType != nil &&
		*in.CompensationType != model.CompensationHourly && *in.CompensationType != model.CompensationSalaried {
		return nil, invalidField("compensation_type", "compensation type must be hourly or salaried")
	}
	p, err := s.repo.UpdateEmployee(ctx, id, repository.EmployeeProfileUpdate{
		CompensationType: in.CompensationType,
		DateHired:        in.DateHired,
		DateOffboarded:   in.DateOffboarded,
	})
	if err != nil {
		return nil, mapProfileErr(err)
	}
	return p, nil
}

func (s *profileService) CreateContractor(ctx context.Context, in CreateContractorInput) (*model.ContractorProfile, error) {
	if err := s.checkParty(ctx, in.PartyID); err != nil {
		return nil, err
	}
	if in.EmployerID == "" {
		return nil, invalidField("employer_id", "employer_id is required")
	}
	if in.ContractStartDate.IsZero() {
		return nil, invalidField("contract_start_date", "contract_start_date is required")
	}
	if in.ContractEndDate != nil && in.ContractEndDate.Before(in.ContractStartDate) {
		return nil, invalidField("contract_end_date", "contract cannot end before it starts")
	}

	stored, err := s.repo.CreateContractor(ctx, &model.ContractorProfile{
		PartyID:           in.PartyID,
		EmployerID:        in.EmployerID,
		ContractStartDate: in.ContractStartDate,
		ContractEndDate:   in.ContractEndDate,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("contractor_profile_created", zap.Int64("profile_id", stored.ID), zap.Int64("party_id", stored.PartyID))
	return stored, nil
}

func (s *profileService) GetContractor(ctx context.Context, id int64) (*model.ContractorProfile, error) {
	p, err := s.repo.FindContractorByID(ctx, id)
	if err != nil {
		return nil, mapProfileErr(err)
	}
	return p, nil
}

func (s *profileService) ListContractors(ctx context.Context, limit, offset int) (*ContractorListResult, error) {
	res, err := s.repo.ListContractors(ctx, pageQuery(limit, offset))
	if err != nil {
		return nil, err
	}
	return &ContractorListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *profileService) UpdateContractor(ctx context.Context, id int64, in UpdateContractorInput) (*model.ContractorProfile, error) {
	p, err := s.repo.UpdateContractor(ctx, id, repository.ContractorProfileUpdate{
		ContractStartDate: in.ContractStartDate,
		ContractEndDate:   in.ContractEndDate,
	})
	if err != nil {
		return nil, mapProfileErr(err)
	}
	return p, nil
}

func (s *profileService) checkParty(ctx context.Context, partyID int64) error {
	if partyID <= 0 {
		return invalidField("party_id", "party_id is required")
	}
	exists, err := s.parties.Exists(ctx, partyID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPartyNotFound
	}
	return nil
}

func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

func mapProfileErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProfileNotFound
	}
	return err
}

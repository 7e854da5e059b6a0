package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"hrapi/internal/model"
	repoMocks "hrapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProfileService(mProfiles *repoMocks.MockProfileRepository, mParties *repoMocks.MockPartyRepository) ProfileService {
	return NewProfileService(mProfiles, mParties, zap.NewNop())
}

func TestProfileService_CreateEmployee(t *testing.T) {
	ctx := context.Background()
	hired := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("compensation defaults to hourly", func(t *testing.T) {
		mProfiles := new(repoMocks.MockProfileRepository)
		mParties := new(repoMocks.MockPartyRepository)
		svc := newTestProfileService(mProfiles, mParties)

		mParties.On("Exists", ctx, int64(42)).Return(true, nil)
		mProfiles.On("CreateEmployee", ctx, mock.MatchedBy(func(p *model.EmployeeProfile) bool {
			return p.PartyID == 42 && p.CompensationType == model.CompensationHourly
		})).Return(&model.EmployeeProfile{
			ID: 1, PartyID: 42, EmployerID: "emp-7", CompensationType: model.CompensationHourly, DateHired: hired,
		}, nil)

		p, err := svc.CreateEmployee(ctx, CreateEmployeeInput{
			PartyID: 42, EmployerID: "emp-7", DateHired: hired,
		})

		require.NoError(t, err)
		assert.Equal(t, model.CompensationHourly, p.CompensationType)
		mProfiles.AssertExpectations(t)
	})

	t.Run("unknown party", func(t *testing.T) {
		mProfiles := new(repoMocks.MockProfileRepository)
		mParties := new(repoMocks.MockPartyRepository)
		svc := newTestProfileService(mProfiles, mParties)

		mParties.On("Exists", ctx, int64(9)).Return(false, nil)

		_, err := svc.CreateEmployee(ctx, CreateEmployeeInput{PartyID: 9, EmployerID: "emp-7", DateHired: hired})
		assert.ErrorIs(t, err, ErrPartyNotFound)
		mProfiles.AssertNotCalled(t, "CreateEmployee", mock.Anything, mock.Anything)
	})

	t.Run("offboarding before hiring", func(t *testing.T) {
		mProfiles := new(repoMocks.MockProfileRepository)
		mParties := new(repoMocks.MockPartyRepository)
		svc := newTestProfileService(mProfiles, mParties)

		mParties.On("Exists", ctx, int64(42)).Return(true, nil)
		off := hired.AddDate(0, -1, 0)

		_, err := svc.CreateEmployee(ctx, CreateEmployeeInput{
			PartyID: 42, EmployerID: "emp-7", DateHired: hired, DateOffboarded: &off,
		})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "date_offboarded", ve.Field)
	})

	t.Run("unknown compensation type", func(t *testing.T) {
		mProfiles := new(repoMocks.MockProfileRepository)
		mParties := new(repoMocks.MockPartyRepository)
		svc := newTestProfileService(mProfiles, mParties)

		mParties.On("Exists", ctx, int64(42)).Return(true, nil)

		_, err := svc.CreateEmployee(ctx, CreateEmployeeInput{
			PartyID: 42, EmployerID: "emp-7", CompensationType: "commission", DateHired: hired,
		})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "compensation_type", ve.Field)
	})
}

func TestProfileService_CreateContractor(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("happy path", func(t *testing.T) {
		mProfiles := new(repoMocks.MockProfileRepository)
		mParties := new(repoMocks.MockPartyRepository)
		svc := newTestProfileService(mProfiles, mParties)

		end := start.AddDate(1, 0, 0)
		mParties.On("Exists", ctx, int64(42)).Return(true, nil)
		mProfiles.On("CreateContractor", ctx, mock.Anything).Return(&model.ContractorProfile{
			ID: 1, PartyID: 42, EmployerID: "emp-7", ContractStartDate: start, ContractEndDate: &end,
		}, nil)

		p, err := svc.CreateContractor(ctx, CreateContractorInput{
			PartyID: 42, EmployerID: "emp-7", ContractStartDate: start, ContractEndDate: &end,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
	})

	t.Run("contract ends before it starts", func(t *testing.T) {
		mProfiles := new(repoMocks.MockProfileRepository)
		mParties := new(repoMocks.MockPartyRepository)
		svc := newTestProfileService(mProfiles, mParties)

		end := start.AddDate(0, 0, -1)
		mParties.On("Exists", ctx, int64(42)).Return(true, nil)

		_, err := svc.CreateContractor(ctx, CreateContractorInput{
			PartyID: 42, EmployerID: "emp-7", ContractStartDate: start, ContractEndDate: &end,
		})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "contract_end_date", ve.Field)
	})
}

func TestProfileService_UpdateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		mProfiles := new(repoMocks.MockProfileRepository)
		svc := newTestProfileService(mProfiles, new(repoMocks.MockPartyRepository))

		mProfiles.On("UpdateEmployee", ctx, int64(5), mock.Anything).Return(nil, sql.ErrNoRows)

		_, err := svc.UpdateEmployee(ctx, 5, UpdateEmployeeInput{})
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("invalid compensation type rejected before the repository", func(t *testing.T) {
		mProfiles := new(repoMocks.MockProfileRepository)
		svc := newTestProfileService(mProfiles, new(repoMocks.MockPartyRepository))

		comp := "commission"
		_, err := svc.UpdateEmployee(ctx, 5, UpdateEmployeeInput{CompensationType: &comp})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		mProfiles.AssertNotCalled(t, "UpdateEmployee", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProfileService_GetContractor(t *testing.T) {
	ctx := context.Background()

	mProfiles := new(repoMocks.MockProfileRepository)
	svc := newTestProfileService(mProfiles, new(repoMocks.MockPartyRepository))

	mProfiles.On("FindContractorByID", ctx, int64(5)).Return(nil, sql.ErrNoRows)

	_, err := svc.GetContractor(ctx, 5)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"hrapi/internal/model"
	"hrapi/internal/repository"
)

const employeeColumns = `id, party_id, employer_id, compensation_type, date_hired, date_offboarded, created_at`
const contractorColumns = `id, party_id, employer_id, contract_start_date, contract_end_date, created_at`

// ProfilePostgres is a PostgreSQL implementation of repository.ProfileRepository
// covering both employee and contractor profiles.
type ProfilePostgres struct {
	db *sql.DB
}

// NewProfilePostgres creates a new ProfilePostgres repository.
func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

func (r *ProfilePostgres) CreateEmployee(ctx context.Context, p *model.EmployeeProfile) (*model.EmployeeProfile, error) {
	const q = `
		INSERT INTO employee_profiles (party_id, employer_id, compensation_type, date_hired, date_offboarded)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + employeeColumns
	row := r.db.QueryRowContext(ctx, q, p.PartyID, p.EmployerID, p.CompensationType, p.DateHired, p.DateOffboarded)
	return scanEmployee(row)
}

func (r *ProfilePostgres) FindEmployeeByID(ctx context.Context, id int64) (*model.EmployeeProfile, error) {
	const q = `SELECT ` + employeeColumns + ` FROM employee_profiles WHERE id = $1`
	return scanEmployee(r.db.QueryRowContext(ctx, q, id))
}

func (r *ProfilePostgres) ListEmployees(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.EmployeeProfile], error) {
	const qCount = `SELECT COUNT(*) FROM employee_profiles`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + employeeColumns + `
		FROM employee_profiles
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.EmployeeProfile, 0)
	for rows.Next() {
		p, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.EmployeeProfile]{Items: items, Total: total}, nil
}

func (r *ProfilePostgres) UpdateEmployee(ctx context.Context, id int64, upd repository.EmployeeProfileUpdate) (*model.EmployeeProfile, error) {
	if upd.CompensationType == nil && upd.DateHired == nil && upd.DateOffboarded == nil {
		return r.FindEmployeeByID(ctx, id)
	}

	b := squirrel.Update("employee_profiles").
		PlaceholderFormat(squirrel.Dollar).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + employeeColumns)

	if upd.CompensationType != nil {
		b = b.Set("compensation_type", *upd.CompensationType)
	}
	if upd.DateHired != nil {
		b = b.Set("date_hired", *upd.DateHired)
	}
	if upd.DateOffboarded != nil {
		b = b.Set("date_offboarded", *upd.DateOffboarded)
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}
	return scanEmployee(r.db.QueryRowContext(ctx, q, args...))
}

func (r *ProfilePostgres) CreateContractor(ctx context.Context, p *model.ContractorProfile) (*model.ContractorProfile, error) {
	const q = `
		INSERT INTO contractor_profiles (party_id, employer_id, contract_start_date, contract_end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + contractorColumns
	row := r.db.QueryRowContext(ctx, q, p.PartyID, p.EmployerID, p.ContractStartDate, p.ContractEndDate)
	return scanContractor(row)
}

func (r *ProfilePostgres) FindContractorByID(ctx context.Context, id int64) (*model.ContractorProfile, error) {
	const q = `SELECT ` + contractorColumns + ` FROM contractor_profiles WHERE id = $1`
	return scanContractor(r.db.QueryRowContext(ctx, q, id))
}

func (r *ProfilePostgres) ListContractors(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ContractorProfile], error) {
	const qCount = `SELECT COUNT(*) FROM contractor_profiles`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + contractorColumns + `
		FROM contractor_profiles
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ContractorProfile, 0)
	for rows.Next() {
		p, err := scanContractor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.ContractorProfile]{Items: items, Total: total}, nil
}

func (r *ProfilePostgres) UpdateContractor(ctx context.Context, id int64, upd repository.ContractorProfileUpdate) (*model.ContractorProfile, error) {
	if upd.ContractStartDate == nil && upd.ContractEndDate == nil {
		return r.FindContractorByID(ctx, id)
	}

	b := squirrel.Update("contractor_profiles").
		PlaceholderFormat(squirrel.Dollar).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + contractorColumns)

	if upd.ContractStartDate != nil {
		b = b.Set("contract_start_date", *upd.ContractStartDate)
	}
	if upd.ContractEndDate != nil {
		b = b.Set("contract_end_date", *upd.ContractEndDate)
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}
	return scanContractor(r.db.QueryRowContext(ctx, q, args...))
}

func scanEmployee(s scanner) (*model.EmployeeProfile, error) {
	var (
		p          model.EmployeeProfile
		offboarded sql.NullTime
	)
	if err := s.Scan(&p.ID, &p.PartyID, &p.EmployerID, &p.CompensationType, &p.DateHired, &offboarded, &p.CreatedAt); err != nil {
		return nil, err
	}
	if offboarded.Valid {
		t := offboarded.Time
		p.DateOffboarded = &t
	}
	return &p, nil
}

func scanContractor(s scanner) (*model.ContractorProfile, error) {
	var (
		p   model.ContractorProfile
		end sql.NullTime
	)
	if err := s.Scan(&p.ID, &p.PartyID, &p.EmployerID, &p.ContractStartDate, &end, &p.CreatedAt); err != nil {
		return nil, err
	}
	if end.Valid {
		t := end.Time
		p.ContractEndDate = &t
	}
	return &p, nil
}

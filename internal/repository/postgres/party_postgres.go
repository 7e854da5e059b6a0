package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"hrapi/internal/model"
	"hrapi/internal/repository"
)

const partyColumns = `id, first_name, last_name, dob, gender, ssn, address_full, address_city, address_zip, address_state, marital_status, phone_number, email, dependants, active, created_at, updated_at`

// allowed lookup columns for ExistsByField; anything else is a programming error.
var partyLookupFields = map[string]bool{
	"ssn":          true,
	"email":        true,
	"phone_number": true,
}

// PartyPostgres is a PostgreSQL implementation of repository.PartyRepository.
type PartyPostgres struct {
	db *sql.DB
}

// NewPartyPostgres creates a new PartyPostgres repository.
func NewPartyPostgres(db *sql.DB) *PartyPostgres {
	return &PartyPostgres{db: db}
}

var _ repository.PartyRepository = (*PartyPostgres)(nil)

// Create inserts a new party row and returns the stored record.
func (r *PartyPostgres) Create(ctx context.Context, p *model.Party) (*model.Party, error) {
	const q = `
		INSERT INTO parties (first_name, last_name, dob, gender, ssn, address_full, address_city, address_zip, address_state, marital_status, phone_number, email, dependants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + partyColumns
	row := r.db.QueryRowContext(ctx, q,
		p.FirstName,
		p.LastName,
		p.DOB,
		p.Gender,
		p.SSN,
		p.AddressFull,
		p.AddressCity,
		p.AddressZip,
		p.AddressState,
		p.MaritalStatus,
		p.PhoneNumber,
		p.Email,
		p.Dependants,
	)
	return scanParty(row)
}

// FindByID fetches a single party by its ID.
func (r *PartyPostgres) FindByID(ctx context.Context, id int64) (*model.Party, error) {
	const q = `SELECT ` + partyColumns + ` FROM parties WHERE id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	return scanParty(row)
}

// Exists reports whether a party row exists.
func (r *PartyPostgres) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM parties WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ExistsByField reports whether another party already holds the unique value.
func (r *PartyPostgres) ExistsByField(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	if !partyLookupFields[field] {
		return false, fmt.Errorf("unsupported lookup field %q", field)
	}
	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM parties WHERE %s = $1 AND id <> $2)`, field)
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, value, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// List returns parties using LIMIT/OFFSET pagination and a total count.
func (r *PartyPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Party], error) {
	const qCount = `SELECT COUNT(*) FROM parties`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + partyColumns + `
		FROM parties
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Party, 0)
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Party]{Items: items, Total: total}, nil
}

// Update applies a partial update built dynamically with squirrel.
func (r *PartyPostgres) Update(ctx context.Context, id int64, upd repository.PartyUpdate) (*model.Party, error) {
	b := squirrel.Update("parties").
		PlaceholderFormat(squirrel.Dollar).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + partyColumns)

	if upd.FirstName != nil {
		b = b.Set("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		b = b.Set("last_name", *upd.LastName)
	}
	if upd.DOB != nil {
		b = b.Set("dob", *upd.DOB)
	}
	if upd.AddressFull != nil {
		b = b.Set("address_full", *upd.AddressFull)
	}
	if upd.AddressCity != nil {
		b = b.Set("address_city", *upd.AddressCity)
	}
	if upd.AddressZip != nil {
		b = b.Set("address_zip", *upd.AddressZip)
	}
	if upd.AddressState != nil {
		b = b.Set("address_state", *upd.AddressState)
	}
	if upd.MaritalStatus != nil {
		b = b.Set("marital_status", *upd.MaritalStatus)
	}
	if upd.PhoneNumber != nil {
		b = b.Set("phone_number", *upd.PhoneNumber)
	}
	if upd.Email != nil {
		b = b.Set("email", *upd.Email)
	}
	if upd.Dependants != nil {
		b = b.Set("dependants", *upd.Dependants)
	}
	if upd.Active != nil {
		b = b.Set("active", *upd.Active)
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	row := r.db.QueryRowContext(ctx, q, args...)
	return scanParty(row)
}

func scanParty(s scanner) (*model.Party, error) {
	var p model.Party
	if err := s.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.DOB,
		&p.Gender,
		&p.SSN,
		&p.AddressFull,
		&p.AddressCity,
		&p.AddressZip,
		&p.AddressState,
		&p.MaritalStatus,
		&p.PhoneNumber,
		&p.Email,
		&p.Dependants,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

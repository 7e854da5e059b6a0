package repository

import (
	"context"
	"time"

	"hrapi/internal/model"
)

// PartyUpdate describes a partial party update. Nil fields are left
// untouched. SSN is deliberately absent: it is immutable after creation.
type PartyUpdate struct {
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

// PartyRepository defines data access for party records.
type PartyRepository interface {
	Create(ctx context.Context, p *model.Party) (*model.Party, error)
	FindByID(ctx context.Context, id int64) (*model.Party, error)
	// Exists is the only party dependency the document subsystem has.
	Exists(ctx context.Context, id int64) (bool, error)
	// ExistsByField reports whether another party already uses the value;
	// excludeID skips the party being updated (0 for creates).
	ExistsByField(ctx context.Context, field, value string, excludeID int64) (bool, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Party], error)
	Update(ctx context.Context, id int64, upd PartyUpdate) (*model.Party, error)
}

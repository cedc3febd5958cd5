package project

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id uint64) (*Project, error)
	// GetByIDForUpdate locks the project row until the tx ends.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Project, error)
	Save(ctx context.Context, p *Project) error

	AddMember(ctx context.Context, m *Member) error
	MemberIDs(ctx context.Context, projectID uint64) ([]uint64, error)

	CreateDonor(ctx context.Context, d *Donor) error
	AddFunding(ctx context.Context, f *Funding) error
	// TotalFunding sums every donor commitment for the project.
	TotalFunding(ctx context.Context, projectID uint64) (decimal.Decimal, error)
}

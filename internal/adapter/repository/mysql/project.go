package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	projectDomain "ngo-finance-backend/internal/domain/project"
)

type ProjectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) *ProjectRepository { return &ProjectRepository{db: db} }

func (r *ProjectRepository) Create(ctx context.Context, p *projectDomain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint64) (*projectDomain.Project, error) {
	var out projectDomain.Project
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, "project", id)
	}
	return &out, nil
}

func (r *ProjectRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*projectDomain.Project, error) {
	var out projectDomain.Project
	if err := r.db.WithContext(ctx).Clauses(forUpdate).First(&out, id).Error; err != nil {
		return nil, notFound(err, "project", id)
	}
	return &out, nil
}

func (r *ProjectRepository) Save(ctx context.Context, p *projectDomain.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProjectRepository) AddMember(ctx context.Context, m *projectDomain.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ProjectRepository) MemberIDs(ctx context.Context, projectID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).Model(&projectDomain.Member{}).
		Where("project_id = ?", projectID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *ProjectRepository) CreateDonor(ctx context.Context, d *projectDomain.Donor) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *ProjectRepository) AddFunding(ctx context.Context, f *projectDomain.Funding) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// TotalFunding sums in Go so the result keeps decimal precision on every driver.
func (r *ProjectRepository) TotalFunding(ctx context.Context, projectID uint64) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := r.db.WithContext(ctx).Model(&projectDomain.Funding{}).
		Where("project_id = ?", projectID).
		Pluck("committed_amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total, nil
}

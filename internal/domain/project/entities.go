package project

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project owns budgets, expenses and purchase orders. Only the fields the
// ledger core reads or writes are modelled here.
type Project struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"column:name;size:255;not null" json:"name"`
	TotalBudget decimal.Decimal `gorm:"column:total_budget;type:decimal(18,2);not null;default:0" json:"total_budget"`
	CreatedBy   uint64          `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"column:deleted_at;index" json:"-"`
}

func (Project) TableName() string { return "projects" }

type Member struct {
	ProjectID uint64    `gorm:"column:project_id;primaryKey" json:"project_id"`
	UserID    uint64    `gorm:"column:user_id;primaryKey" json:"user_id"`
	Role      string    `gorm:"column:role;size:64" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Member) TableName() string { return "project_members" }

type Donor struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Donor) TableName() string { return "donors" }

// Funding is a donor's commitment to a project.
type Funding struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProjectID       uint64          `gorm:"column:project_id;not null;index" json:"project_id"`
	DonorID         uint64          `gorm:"column:donor_id;not null;index" json:"donor_id"`
	CommittedAmount decimal.Decimal `gorm:"column:committed_amount;type:decimal(18,2);not null" json:"committed_amount"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Funding) TableName() string { return "donor_fundings" }

// Team returns the creator followed by the distinct member ids.
func Team(p *Project, members []uint64) []uint64 {
	out := []uint64{p.CreatedBy}
	seen := map[uint64]bool{p.CreatedBy: true}
	for _, m := range members {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

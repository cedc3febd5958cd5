package budget

import (
	"fmt"

	"ngo-finance-backend/internal/domain/errs"
)

// ErrFundingExceeded means the budget total is above the project's donor
// commitments.
var ErrFundingExceeded = fmt.Errorf("budget exceeds donor funding: %w", errs.ErrInsufficientFunds)

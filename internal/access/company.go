package access

import (
	"context"
	"fmt"

	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/models"
)

type CompanyPolicy int

const (
	// CompanyManager admits only managers of the company.
	CompanyManager CompanyPolicy = iota
	CompanyManagerOrAdmin
	CompanyAdmin
)

// Company checks the manager relation before loading the company, so a
// non-manager gets 403 even for an id that does not exist.
func (a *Authorizer) Company(ctx context.Context, p models.Principal, id int64, policy CompanyPolicy) (*models.Company, error) {
	switch policy {
	case CompanyAdmin:
		if !p.IsAdmin {
			return nil, denied()
		}
	case CompanyManagerOrAdmin:
		if !p.IsAdmin {
			if err := a.requireManager(ctx, p, id); err != nil {
				return nil, err
			}
		}
	default:
		if err := a.requireManager(ctx, p, id); err != nil {
			return nil, err
		}
	}

	company, err := a.companies.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "company")
	}
	return company, nil
}

func (a *Authorizer) requireManager(ctx context.Context, p models.Principal, companyID int64) error {
	ok, err := a.companies.IsManager(ctx, companyID, p.UserID)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to check company manager: %w", err))
	}
	if !ok {
		return denied()
	}
	return nil
}

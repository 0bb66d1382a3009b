package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/taskapp-api/internal/database"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id, name, description, email, phone, created_at, updated_at`

type CompanyService struct {
	db *database.DB
}

func NewCompanyService(db *database.DB) *CompanyService {
	return &CompanyService{db: db}
}

type CompanyParams struct {
	Name        string
	Description string
	Email       string
	Phone       string
}

func scanCompany(row pgx.Row, c *models.Company) error {
	return row.Scan(&c.ID, &c.Name, &c.Description, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
}

func (s *CompanyService) Create(ctx context.Context, params CompanyParams) (*models.Company, error) {
	var company models.Company
	err := scanCompany(s.db.Pool.QueryRow(ctx, `
		INSERT INTO companies (name, description, email, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING `+companyColumns,
		params.Name, params.Description, params.Email, params.Phone), &company)
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return &company, nil
}

func (s *CompanyService) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	var company models.Company
	err := scanCompany(s.db.Pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id), &company)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collectCompanies(rows)
}

// ListForUser returns the companies the user manages.
func (s *CompanyService) ListForUser(ctx context.Context, userID int64) ([]models.Company, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT c.id, c.name, c.description, c.email, c.phone, c.created_at, c.updated_at
		FROM companies c
		JOIN company_managers cm ON cm.company_id = c.id
		WHERE cm.user_id = $1
		ORDER BY c.name
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectCompanies(rows)
}

func collectCompanies(rows pgx.Rows) ([]models.Company, error) {
	defer rows.Close()

	companies := []models.Company{}
	for rows.Next() {
		var company models.Company
		if err := scanCompany(rows, &company); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func (s *CompanyService) Update(ctx context.Context, id int64, params CompanyParams) (*models.Company, error) {
	var company models.Company
	err := scanCompany(s.db.Pool.QueryRow(ctx, `
		UPDATE companies SET name = $1, description = $2, email = $3, phone = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+companyColumns,
		params.Name, params.Description, params.Email, params.Phone, id), &company)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return &company, nil
}

// Delete removes the company, its teams with their lists and tasks, and all
// manager relations.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := companyCascade.run(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *CompanyService) IsManager(ctx context.Context, companyID, userID int64) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM company_managers WHERE company_id = $1 AND user_id = $2)
	`, companyID, userID).Scan(&exists)
	return exists, err
}

func (s *CompanyService) AddManager(ctx context.Context, companyID, userID int64) error {
	exists, err := s.IsManager(ctx, companyID, userID)
	if err != nil {
		return fmt.Errorf("failed to check manager: %w", err)
	}
	if exists {
		return ErrDuplicate
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO company_managers (company_id, user_id)
		VALUES ($1, $2)
	`, companyID, userID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to add manager: %w", err)
	}
	return nil
}

func (s *CompanyService) RemoveManager(ctx context.Context, companyID, userID int64) error {
	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM company_managers WHERE company_id = $1 AND user_id = $2
	`, companyID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove manager: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CompanyService) GetManagers(ctx context.Context, companyID int64) ([]models.CompanyManager, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT cm.company_id, cm.user_id, cm.created_at,
		       u.id, u.name, u.email, u.password_hash, u.phone, u.is_admin, u.is_blocked, u.created_at, u.updated_at
		FROM company_managers cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.company_id = $1
		ORDER BY cm.created_at
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	managers := []models.CompanyManager{}
	for rows.Next() {
		var manager models.CompanyManager
		var user models.User
		if err := rows.Scan(
			&manager.CompanyID, &manager.UserID, &manager.CreatedAt,
			&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Phone,
			&user.IsAdmin, &user.IsBlocked, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		manager.User = &user
		managers = append(managers, manager)
	}
	return managers, rows.Err()
}

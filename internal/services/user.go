package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/taskapp-api/internal/database"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const userColumns = `id, name, email, password_hash, phone, is_admin, is_blocked, created_at, updated_at`

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

type RegisterParams struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

type ProfileParams struct {
	Name            string
	Phone           string
	CurrentPassword string
	NewPassword     string
	// RequireCurrent is false when an admin edits another user.
	RequireCurrent bool
}

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Phone,
		&user.IsAdmin, &user.IsBlocked, &user.CreatedAt, &user.UpdatedAt,
	)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates the user and its personal task list in one transaction.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, params.Email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	var user models.User
	err = scanUser(tx.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		params.Name, params.Email, hash, params.Phone), &user)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO task_lists (is_team_list, owner_user)
		VALUES (FALSE, $1)
	`, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create personal list: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &user, nil
}

// Authenticate checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.IsBlocked {
		return nil, ErrUserBlocked
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := scanUser(s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := scanUser(s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *UserService) UpdateProfile(ctx context.Context, id int64, params ProfileParams) (*models.User, error) {
	var newHash *string
	if params.NewPassword != "" {
		if params.RequireCurrent {
			current, err := s.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if err := bcrypt.CompareHashAndPassword([]byte(current.PasswordHash), []byte(params.CurrentPassword)); err != nil {
				return nil, ErrWrongPassword
			}
		}
		hash, err := HashPassword(params.NewPassword)
		if err != nil {
			return nil, err
		}
		newHash = &hash
	}

	var user models.User
	err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET name = $1, phone = $2, password_hash = COALESCE($3, password_hash), updated_at = NOW()
		WHERE id = $4
		RETURNING `+userColumns,
		params.Name, params.Phone, newHash, id), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

func (s *UserService) SetBlocked(ctx context.Context, id int64, blocked bool) (*models.User, error) {
	var user models.User
	err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET is_blocked = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns,
		blocked, id), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

func (s *UserService) PromoteAdmin(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET is_admin = TRUE, updated_at = NOW()
		WHERE email = $1
		RETURNING `+userColumns,
		email), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}
	return &user, nil
}

// Delete removes the user together with its personal list, its tasks,
// its memberships, assignments and sessions. A user who is the last manager
// of a team with other participants cannot be deleted.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := guardDeparture(ctx, tx, id); err != nil {
		return err
	}

	if err := userCascade.run(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/taskapp-api/internal/database"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/jackc/pgx/v5"
)

const teamSelect = `
	SELECT t.id, t.name, t.description, t.owner_company, COALESCE(l.id, 0), t.created_at, t.updated_at
	FROM teams t
	LEFT JOIN task_lists l ON l.owner_team = t.id`

type TeamService struct {
	db *database.DB
}

func NewTeamService(db *database.DB) *TeamService {
	return &TeamService{db: db}
}

func scanTeam(row pgx.Row, team *models.Team) error {
	return row.Scan(&team.ID, &team.Name, &team.Description, &team.OwnerCompany, &team.ListID, &team.CreatedAt, &team.UpdatedAt)
}

// Create inserts the team and its task list atomically.
func (s *TeamService) Create(ctx context.Context, companyID int64, name, description string) (*models.Team, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var team models.Team
	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, description, owner_company)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, owner_company, created_at, updated_at
	`, name, description, companyID).Scan(
		&team.ID, &team.Name, &team.Description, &team.OwnerCompany, &team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO task_lists (is_team_list, owner_team)
		VALUES (TRUE, $1)
		RETURNING id
	`, team.ID).Scan(&team.ListID)
	if err != nil {
		return nil, fmt.Errorf("failed to create team list: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &team, nil
}

func (s *TeamService) GetByID(ctx context.Context, teamID int64) (*models.Team, error) {
	var team models.Team
	err := scanTeam(s.db.Pool.QueryRow(ctx, teamSelect+` WHERE t.id = $1`, teamID), &team)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (s *TeamService) ListByCompany(ctx context.Context, companyID int64) ([]models.Team, error) {
	rows, err := s.db.Pool.Query(ctx, teamSelect+` WHERE t.owner_company = $1 ORDER BY t.name`, companyID)
	if err != nil {
		return nil, err
	}
	return collectTeams(rows)
}

// ListForUser returns the teams the user participates in.
func (s *TeamService) ListForUser(ctx context.Context, userID int64) ([]models.Team, error) {
	rows, err := s.db.Pool.Query(ctx, teamSelect+`
		JOIN team_participants tp ON tp.team_id = t.id
		WHERE tp.user_id = $1
		ORDER BY t.name
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectTeams(rows)
}

func collectTeams(rows pgx.Rows) ([]models.Team, error) {
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var team models.Team
		if err := scanTeam(rows, &team); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *TeamService) Update(ctx context.Context, teamID int64, name, description string) (*models.Team, error) {
	var team models.Team
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE teams SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, description, owner_company, created_at, updated_at
	`, name, description, teamID).Scan(
		&team.ID, &team.Name, &team.Description, &team.OwnerCompany, &team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return &team, nil
}

// Delete removes the team with its participants, its list and the list's tasks.
func (s *TeamService) Delete(ctx context.Context, teamID int64) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := teamCascade.run(ctx, tx, teamID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *TeamService) GetParticipant(ctx context.Context, teamID, userID int64) (*models.TeamParticipant, error) {
	var p models.TeamParticipant
	err := s.db.Pool.QueryRow(ctx, `
		SELECT team_id, user_id, is_manager, created_at
		FROM team_participants WHERE team_id = $1 AND user_id = $2
	`, teamID, userID).Scan(&p.TeamID, &p.UserID, &p.IsManager, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *TeamService) IsParticipant(ctx context.Context, teamID, userID int64) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM team_participants WHERE team_id = $1 AND user_id = $2)
	`, teamID, userID).Scan(&exists)
	return exists, err
}

func (s *TeamService) GetParticipants(ctx context.Context, teamID int64) ([]models.TeamParticipant, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT tp.team_id, tp.user_id, tp.is_manager, tp.created_at,
		       u.id, u.name, u.email, u.password_hash, u.phone, u.is_admin, u.is_blocked, u.created_at, u.updated_at
		FROM team_participants tp
		JOIN users u ON u.id = tp.user_id
		WHERE tp.team_id = $1
		ORDER BY tp.created_at
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []models.TeamParticipant{}
	for rows.Next() {
		var p models.TeamParticipant
		var user models.User
		if err := rows.Scan(
			&p.TeamID, &p.UserID, &p.IsManager, &p.CreatedAt,
			&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Phone,
			&user.IsAdmin, &user.IsBlocked, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.User = &user
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// lockTeam serializes membership changes on one team.
func lockTeam(ctx context.Context, tx pgx.Tx, teamID int64) error {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM teams WHERE id = $1 FOR UPDATE`, teamID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to lock team: %w", err)
	}
	return nil
}

// AddParticipant adds the user to the team. The first participant of a team
// becomes its manager.
func (s *TeamService) AddParticipant(ctx context.Context, teamID, userID int64) (*models.TeamParticipant, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockTeam(ctx, tx, teamID); err != nil {
		return nil, err
	}

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM team_participants WHERE team_id = $1 AND user_id = $2)
	`, teamID, userID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check participant: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	var p models.TeamParticipant
	err = tx.QueryRow(ctx, `
		INSERT INTO team_participants (team_id, user_id, is_manager)
		VALUES ($1, $2, NOT EXISTS(SELECT 1 FROM team_participants WHERE team_id = $1))
		RETURNING team_id, user_id, is_manager, created_at
	`, teamID, userID).Scan(&p.TeamID, &p.UserID, &p.IsManager, &p.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &p, nil
}

type managerCounts struct {
	managers     int
	participants int
}

func countManagers(ctx context.Context, tx pgx.Tx, teamID int64) (managerCounts, error) {
	var c managerCounts
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE is_manager), COUNT(*)
		FROM team_participants WHERE team_id = $1
	`, teamID).Scan(&c.managers, &c.participants)
	if err != nil {
		return c, fmt.Errorf("failed to count managers: %w", err)
	}
	return c, nil
}

func participantRole(ctx context.Context, tx pgx.Tx, teamID, userID int64) (bool, error) {
	var isManager bool
	err := tx.QueryRow(ctx, `
		SELECT is_manager FROM team_participants WHERE team_id = $1 AND user_id = $2
	`, teamID, userID).Scan(&isManager)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("failed to load participant: %w", err)
	}
	return isManager, nil
}

// guardDeparture locks every team the user participates in and rejects the
// departure when the user is the last manager of a team others remain in.
// Teams are locked in id order.
func guardDeparture(ctx context.Context, tx pgx.Tx, userID int64) error {
	rows, err := tx.Query(ctx, `
		SELECT team_id FROM team_participants WHERE user_id = $1 ORDER BY team_id
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to load memberships: %w", err)
	}

	var teamIDs []int64
	for rows.Next() {
		var teamID int64
		if err := rows.Scan(&teamID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan membership: %w", err)
		}
		teamIDs = append(teamIDs, teamID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load memberships: %w", err)
	}

	for _, teamID := range teamIDs {
		if err := lockTeam(ctx, tx, teamID); err != nil {
			return err
		}

		isManager, err := participantRole(ctx, tx, teamID, userID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if !isManager {
			continue
		}

		counts, err := countManagers(ctx, tx, teamID)
		if err != nil {
			return err
		}
		if counts.managers <= 1 && counts.participants > 1 {
			return ErrLastManager
		}
	}
	return nil
}

// RemoveParticipant removes the user from the team along with the user's
// assignments on the team's tasks. The last manager cannot leave while other
// participants remain.
func (s *TeamService) RemoveParticipant(ctx context.Context, teamID, userID int64) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockTeam(ctx, tx, teamID); err != nil {
		return err
	}

	isManager, err := participantRole(ctx, tx, teamID, userID)
	if err != nil {
		return err
	}

	if isManager {
		counts, err := countManagers(ctx, tx, teamID)
		if err != nil {
			return err
		}
		if counts.managers <= 1 && counts.participants > 1 {
			return ErrLastManager
		}
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM task_persons WHERE user_id = $2 AND task_id IN (
			SELECT t.id FROM tasks t JOIN task_lists l ON l.id = t.list_id WHERE l.owner_team = $1
		)
	`, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove assignments: %w", err)
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM team_participants WHERE team_id = $1 AND user_id = $2
	`, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ToggleRole flips is_manager for the participant. Demoting the last manager
// is rejected.
func (s *TeamService) ToggleRole(ctx context.Context, teamID, userID int64) (*models.TeamParticipant, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockTeam(ctx, tx, teamID); err != nil {
		return nil, err
	}

	isManager, err := participantRole(ctx, tx, teamID, userID)
	if err != nil {
		return nil, err
	}

	if isManager {
		counts, err := countManagers(ctx, tx, teamID)
		if err != nil {
			return nil, err
		}
		if counts.managers <= 1 {
			return nil, ErrLastManager
		}
	}

	var p models.TeamParticipant
	err = tx.QueryRow(ctx, `
		UPDATE team_participants SET is_manager = NOT is_manager
		WHERE team_id = $1 AND user_id = $2
		RETURNING team_id, user_id, is_manager, created_at
	`, teamID, userID).Scan(&p.TeamID, &p.UserID, &p.IsManager, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle role: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &p, nil
}

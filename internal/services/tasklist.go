package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/taskapp-api/internal/database"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/jackc/pgx/v5"
)

const listColumns = `id, is_team_list, owner_user, owner_team, created_at, updated_at`

type TaskListService struct {
	db *database.DB
}

func NewTaskListService(db *database.DB) *TaskListService {
	return &TaskListService{db: db}
}

func scanList(row pgx.Row, l *models.TaskList) error {
	return row.Scan(&l.ID, &l.IsTeamList, &l.OwnerUser, &l.OwnerTeam, &l.CreatedAt, &l.UpdatedAt)
}

// Create inserts a list for exactly one owner. Each user and each team owns
// at most one list.
func (s *TaskListService) Create(ctx context.Context, owner models.ListOwner) (*models.TaskList, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	var list models.TaskList
	err := scanList(s.db.Pool.QueryRow(ctx, `
		INSERT INTO task_lists (is_team_list, owner_user, owner_team)
		VALUES ($1, $2, $3)
		RETURNING `+listColumns,
		owner.IsTeam(), owner.UserID, owner.TeamID), &list)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return &list, nil
}

func (s *TaskListService) getOne(ctx context.Context, where string, arg int64) (*models.TaskList, error) {
	var list models.TaskList
	err := scanList(s.db.Pool.QueryRow(ctx, `SELECT `+listColumns+` FROM task_lists WHERE `+where, arg), &list)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (s *TaskListService) GetByID(ctx context.Context, id int64) (*models.TaskList, error) {
	return s.getOne(ctx, `id = $1`, id)
}

func (s *TaskListService) GetByUser(ctx context.Context, userID int64) (*models.TaskList, error) {
	return s.getOne(ctx, `owner_user = $1`, userID)
}

func (s *TaskListService) GetByTeam(ctx context.Context, teamID int64) (*models.TaskList, error) {
	return s.getOne(ctx, `owner_team = $1`, teamID)
}

func (s *TaskListService) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := listCascade.run(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

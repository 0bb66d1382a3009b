package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/taskapp-api/internal/database"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/jackc/pgx/v5"
)

const taskColumns = `id, list_id, name, description, status, priority, due_date, created_at, updated_at`

type TaskService struct {
	db *database.DB
}

func NewTaskService(db *database.DB) *TaskService {
	return &TaskService{db: db}
}

type TaskParams struct {
	Name        string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
}

func scanTask(row pgx.Row, t *models.Task) error {
	return row.Scan(
		&t.ID, &t.ListID, &t.Name, &t.Description, &t.Status, &t.Priority,
		&t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
}

// Create adds a task to the list. On a personal list the owner is assigned
// as responsible person in the same transaction.
func (s *TaskService) Create(ctx context.Context, listID int64, params TaskParams) (*models.Task, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var ownerUser *int64
	err = tx.QueryRow(ctx, `SELECT owner_user FROM task_lists WHERE id = $1`, listID).Scan(&ownerUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load list: %w", err)
	}

	var task models.Task
	err = scanTask(tx.QueryRow(ctx, `
		INSERT INTO tasks (list_id, name, description, priority, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+taskColumns,
		listID, params.Name, params.Description, params.Priority, params.DueDate), &task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if ownerUser != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO task_persons (task_id, user_id)
			VALUES ($1, $2)
		`, task.ID, *ownerUser)
		if err != nil {
			return nil, fmt.Errorf("failed to assign owner: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &task, nil
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	err := scanTask(s.db.Pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id), &task)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListByList returns the list's tasks, highest priority first, with their
// responsible persons attached.
func (s *TaskService) ListByList(ctx context.Context, listID int64) ([]models.Task, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks WHERE list_id = $1
		ORDER BY priority DESC, id
	`, listID)
	if err != nil {
		return nil, err
	}
	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	rows, err = s.db.Pool.Query(ctx, `
		SELECT tp.task_id, u.id, u.name, u.email, u.phone
		FROM task_persons tp
		JOIN tasks t ON t.id = tp.task_id
		JOIN users u ON u.id = tp.user_id
		WHERE t.list_id = $1
		ORDER BY tp.created_at
	`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := make(map[int64]int, len(tasks))
	for i := range tasks {
		index[tasks[i].ID] = i
	}
	for rows.Next() {
		var taskID int64
		var user models.User
		if err := rows.Scan(&taskID, &user.ID, &user.Name, &user.Email, &user.Phone); err != nil {
			return nil, err
		}
		if i, ok := index[taskID]; ok {
			tasks[i].Persons = append(tasks[i].Persons, user)
		}
	}
	return tasks, rows.Err()
}

// ListForUser returns the tasks the user is responsible for.
func (s *TaskService) ListForUser(ctx context.Context, userID int64) ([]models.Task, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT t.id, t.list_id, t.name, t.description, t.status, t.priority, t.due_date, t.created_at, t.updated_at
		FROM tasks t
		JOIN task_persons tp ON tp.task_id = t.id
		WHERE tp.user_id = $1
		ORDER BY t.priority DESC, t.id
	`, userID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func collectTasks(rows pgx.Rows) ([]models.Task, error) {
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		if err := scanTask(rows, &task); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Update replaces the editable fields. Status is never changed here and
// completed tasks are rejected.
func (s *TaskService) Update(ctx context.Context, id int64, params TaskParams) (*models.Task, error) {
	var task models.Task
	err := scanTask(s.db.Pool.QueryRow(ctx, `
		UPDATE tasks SET name = $1, description = $2, priority = $3, due_date = $4, updated_at = NOW()
		WHERE id = $5 AND status < $6
		RETURNING `+taskColumns,
		params.Name, params.Description, params.Priority, params.DueDate, id, models.StatusCompleted), &task)
	if err == nil {
		return &task, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrTaskCompleted
}

// Advance moves the task one status forward, saturating at completed. The
// increment happens in a single statement so concurrent calls cannot lose
// an update.
func (s *TaskService) Advance(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	err := scanTask(s.db.Pool.QueryRow(ctx, `
		UPDATE tasks
		SET status = LEAST(status + 1, $2),
		    updated_at = CASE WHEN status < $2 THEN NOW() ELSE updated_at END
		WHERE id = $1
		RETURNING `+taskColumns,
		id, models.StatusCompleted), &task)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to advance task: %w", err)
	}
	return &task, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := taskCascade.run(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AssignPerson makes userID responsible for a team task. The user must
// participate in the team owning the task's list.
func (s *TaskService) AssignPerson(ctx context.Context, taskID, userID int64) error {
	var ownerTeam *int64
	err := s.db.Pool.QueryRow(ctx, `
		SELECT l.owner_team FROM tasks t
		JOIN task_lists l ON l.id = t.list_id
		WHERE t.id = $1
	`, taskID).Scan(&ownerTeam)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load task list: %w", err)
	}
	if ownerTeam == nil {
		return ErrNotTeamTask
	}

	var isParticipant bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM team_participants WHERE team_id = $1 AND user_id = $2)
	`, *ownerTeam, userID).Scan(&isParticipant)
	if err != nil {
		return fmt.Errorf("failed to check participant: %w", err)
	}
	if !isParticipant {
		return ErrNotParticipant
	}

	assigned, err := s.IsResponsible(ctx, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to check assignment: %w", err)
	}
	if assigned {
		return ErrDuplicate
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO task_persons (task_id, user_id)
		VALUES ($1, $2)
	`, taskID, userID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to assign person: %w", err)
	}
	return nil
}

func (s *TaskService) UnassignPerson(ctx context.Context, taskID, userID int64) error {
	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM task_persons WHERE task_id = $1 AND user_id = $2
	`, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to unassign person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TaskService) IsResponsible(ctx context.Context, taskID, userID int64) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM task_persons WHERE task_id = $1 AND user_id = $2)
	`, taskID, userID).Scan(&exists)
	return exists, err
}

func (s *TaskService) GetPersons(ctx context.Context, taskID int64) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT u.id, u.name, u.email, u.phone
		FROM task_persons tp
		JOIN users u ON u.id = tp.user_id
		WHERE tp.task_id = $1
		ORDER BY tp.created_at
	`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Phone); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

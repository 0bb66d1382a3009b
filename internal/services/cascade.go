package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// cascade is an ordered list of deletes keyed by a single id. The last
// statement removes the root row; zero rows there means the root was missing.
type cascade []string

func (c cascade) run(ctx context.Context, tx pgx.Tx, id int64) error {
	for i, stmt := range c {
		tag, err := tx.Exec(ctx, stmt, id)
		if err != nil {
			return fmt.Errorf("failed cascade step %d: %w", i+1, err)
		}
		if i == len(c)-1 && tag.RowsAffected() == 0 {
			return ErrNotFound
		}
	}
	return nil
}

var userCascade = cascade{
	`DELETE FROM task_persons WHERE user_id = $1`,
	`DELETE FROM task_persons WHERE task_id IN (
		SELECT t.id FROM tasks t JOIN task_lists l ON l.id = t.list_id WHERE l.owner_user = $1
	)`,
	`DELETE FROM tasks WHERE list_id IN (SELECT id FROM task_lists WHERE owner_user = $1)`,
	`DELETE FROM task_lists WHERE owner_user = $1`,
	`DELETE FROM team_participants WHERE user_id = $1`,
	`DELETE FROM company_managers WHERE user_id = $1`,
	`DELETE FROM refresh_tokens WHERE user_id = $1`,
	`DELETE FROM users WHERE id = $1`,
}

var teamCascade = cascade{
	`DELETE FROM task_persons WHERE task_id IN (
		SELECT t.id FROM tasks t JOIN task_lists l ON l.id = t.list_id WHERE l.owner_team = $1
	)`,
	`DELETE FROM tasks WHERE list_id IN (SELECT id FROM task_lists WHERE owner_team = $1)`,
	`DELETE FROM task_lists WHERE owner_team = $1`,
	`DELETE FROM team_participants WHERE team_id = $1`,
	`DELETE FROM teams WHERE id = $1`,
}

var companyCascade = cascade{
	`DELETE FROM task_persons WHERE task_id IN (
		SELECT t.id FROM tasks t
		JOIN task_lists l ON l.id = t.list_id
		JOIN teams tm ON tm.id = l.owner_team
		WHERE tm.owner_company = $1
	)`,
	`DELETE FROM tasks WHERE list_id IN (
		SELECT l.id FROM task_lists l JOIN teams tm ON tm.id = l.owner_team WHERE tm.owner_company = $1
	)`,
	`DELETE FROM task_lists WHERE owner_team IN (SELECT id FROM teams WHERE owner_company = $1)`,
	`DELETE FROM team_participants WHERE team_id IN (SELECT id FROM teams WHERE owner_company = $1)`,
	`DELETE FROM teams WHERE owner_company = $1`,
	`DELETE FROM company_managers WHERE company_id = $1`,
	`DELETE FROM companies WHERE id = $1`,
}

var listCascade = cascade{
	`DELETE FROM task_persons WHERE task_id IN (SELECT id FROM tasks WHERE list_id = $1)`,
	`DELETE FROM tasks WHERE list_id = $1`,
	`DELETE FROM task_lists WHERE id = $1`,
}

var taskCascade = cascade{
	`DELETE FROM task_persons WHERE task_id = $1`,
	`DELETE FROM tasks WHERE id = $1`,
}

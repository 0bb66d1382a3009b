package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/taskapp-api/internal/database"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var seedPassword string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users, a company, two teams and some tasks",
	Long: `seed loads a small demo data set. Users that already exist are reused,
so running it twice only adds another company.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		return seed(ctx, db, newLogger())
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "password123", "Password for the demo users")
}

type seedUser struct {
	name  string
	email string
	phone string
}

var seedUsers = []seedUser{
	{"Anna Berzina", "anna@example.com", "+37120000001"},
	{"Janis Ozols", "janis@example.com", "+37120000002"},
	{"Liga Kalnina", "liga@example.com", "+37120000003"},
	{"Martins Liepa", "martins@example.com", "+37120000004"},
}

func seed(ctx context.Context, db *database.DB, log logrus.FieldLogger) error {
	users := services.NewUserService(db)
	companies := services.NewCompanyService(db)
	teams := services.NewTeamService(db)
	lists := services.NewTaskListService(db)
	tasks := services.NewTaskService(db)

	ids := make([]int64, len(seedUsers))
	for i, u := range seedUsers {
		user, err := users.Register(ctx, services.RegisterParams{
			Name:     u.name,
			Email:    u.email,
			Phone:    u.phone,
			Password: seedPassword,
		})
		if errors.Is(err, services.ErrEmailTaken) {
			user, err = users.GetByEmail(ctx, u.email)
		}
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
		ids[i] = user.ID
	}

	company, err := companies.Create(ctx, services.CompanyParams{
		Name:        "Demo SIA",
		Description: "Demo company",
		Email:       "office@example.com",
		Phone:       "+37167000000",
	})
	if err != nil {
		return fmt.Errorf("seed company: %w", err)
	}
	if err := companies.AddManager(ctx, company.ID, ids[0]); err != nil {
		return fmt.Errorf("seed manager: %w", err)
	}

	members := [][]int64{{ids[1], ids[2]}, {ids[2], ids[3]}}
	for i, name := range []string{"Backend", "Design"} {
		team, err := teams.Create(ctx, company.ID, name, name+" team")
		if err != nil {
			return fmt.Errorf("seed team %s: %w", name, err)
		}
		for _, userID := range members[i] {
			if _, err := teams.AddParticipant(ctx, team.ID, userID); err != nil {
				return fmt.Errorf("seed participant: %w", err)
			}
		}

		task, err := tasks.Create(ctx, team.ListID, services.TaskParams{
			Name:     name + " kickoff",
			Priority: models.PriorityHigh,
		})
		if err != nil {
			return fmt.Errorf("seed team task: %w", err)
		}
		if err := tasks.AssignPerson(ctx, task.ID, members[i][1]); err != nil {
			return fmt.Errorf("seed assignment: %w", err)
		}
	}

	due := time.Now().Add(72 * time.Hour).Truncate(time.Hour)
	for _, userID := range ids {
		list, err := lists.GetByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("seed personal list: %w", err)
		}
		if _, err := tasks.Create(ctx, list.ID, services.TaskParams{
			Name:     "Read the onboarding notes",
			Priority: models.PriorityMedium,
			DueDate:  &due,
		}); err != nil {
			return fmt.Errorf("seed personal task: %w", err)
		}
	}

	log.WithFields(logrus.Fields{
		"users":      len(ids),
		"company_id": company.ID,
	}).Info("demo data loaded")
	return nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var promoteAdminCmd = &cobra.Command{
	Use:   "promote-admin <email>",
	Short: "Grant admin rights to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		user, err := services.NewUserService(db).PromoteAdmin(ctx, args[0])
		if errors.Is(err, services.ErrNotFound) {
			return fmt.Errorf("no user found with email: %s", args[0])
		}
		if err != nil {
			return err
		}

		newLogger().WithField("user_id", user.ID).Infof("promoted %s to admin", user.Email)
		return nil
	},
}

var blockCmd = &cobra.Command{
	Use:   "block <email>",
	Short: "Block a user and revoke their refresh tokens",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setBlocked(cmd, args[0], true)
	},
}

var unblockCmd = &cobra.Command{
	Use:   "unblock <email>",
	Short: "Unblock a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setBlocked(cmd, args[0], false)
	},
}

func setBlocked(cmd *cobra.Command, email string, blocked bool) error {
	ctx := cmd.Context()
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	users := services.NewUserService(db)

	user, err := users.GetByEmail(ctx, email)
	if errors.Is(err, services.ErrNotFound) {
		return fmt.Errorf("no user found with email: %s", email)
	}
	if err != nil {
		return err
	}

	if _, err := users.SetBlocked(ctx, user.ID, blocked); err != nil {
		return err
	}
	if blocked {
		if err := services.NewTokenService(db).RevokeAllUserTokens(ctx, user.ID); err != nil {
			return err
		}
	}

	newLogger().WithFields(logrus.Fields{"user_id": user.ID, "blocked": blocked}).Info("user updated")
	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"spill/telegram"
)

// newSignCmd mints init data for local development against a server that
// knows the same bot token.
func newSignCmd(a *app) *cobra.Command {
	var (
		user     telegram.WebAppUser
		botToken string
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print signed init data for a test user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if botToken == "" {
				botToken = a.cfg.TelegramBotToken
			}
			if botToken == "" {
				return errors.New("a bot token is required (--bot-token or $TELEGRAM_BOT_TOKEN)")
			}
			if user.ID == 0 {
				return errors.New("--id is required")
			}
			rawUser, err := json.Marshal(user)
			if err != nil {
				return err
			}
			values := url.Values{}
			values.Set("user", string(rawUser))
			values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), telegram.SignInitData(values, botToken))
			return err
		},
	}
	cmd.Flags().StringVar(&botToken, "bot-token", "", "bot token (default $TELEGRAM_BOT_TOKEN)")
	cmd.Flags().Int64Var(&user.ID, "id", 0, "Telegram user id")
	cmd.Flags().StringVar(&user.FirstName, "first-name", "Test", "first name")
	cmd.Flags().StringVar(&user.Username, "username", "", "Telegram username")
	cmd.Flags().StringVar(&user.PhotoURL, "photo-url", "", "host photo URL")
	return cmd
}

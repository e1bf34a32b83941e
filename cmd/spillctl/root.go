package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spill/client"
	"spill/config"
	"spill/telegram"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client *client.Client
	host   *telegram.StaticProvider

	apiURL   string
	initData string
	debug    bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "spillctl",
		Short:         "Inspect and edit a Spill profile",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "API base URL (default $API_BASE_URL)")
	root.PersistentFlags().StringVar(&a.initData, "init-data", "", "Telegram init data (default $TELEGRAM_INIT_DATA)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "verbose logging")

	root.AddCommand(newMeCmd(a), newAvatarCmd(a), newEditCmd(a), newSignCmd(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.apiURL == "" {
		a.apiURL = cfg.APIBaseURL
	}
	if a.initData == "" {
		a.initData = cfg.TelegramInitData
	}

	if a.debug {
		a.logger, err = zap.NewDevelopment()
	} else {
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		a.logger, err = zcfg.Build()
	}
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	a.host = telegram.NewStaticProvider(a.initData)
	a.client = client.NewClient(client.Config{
		BaseURL:  a.apiURL,
		Timeout:  cfg.APITimeout,
		InitData: a.initData,
	}, a.logger)
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

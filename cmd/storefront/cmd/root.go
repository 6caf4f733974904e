package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/fatih/color"
	"github.com/linemk/storefront/internal/app"
	"github.com/linemk/storefront/internal/cli"
	"github.com/linemk/storefront/internal/config"
	"github.com/linemk/storefront/internal/lib/logger"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// application собирается перед каждой командой в PersistentPreRunE
var application *app.App

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "storefront client: account, balance and prepaid card deposits",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute adds all child commands to the root command and returns the process exit code.
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if application != nil {
		// отложенные действия (закрытие окон, обновление шапки) доигрываются и при ошибке
		_ = teardown()
	}
	var r reported
	if !errors.As(err, &r) {
		color.New(color.FgRed).Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file")
	rootCmd.PersistentFlags().String("api", "", "api base url, overrides config")
	rootCmd.PersistentFlags().String("env", "", "environment: local, dev, prod")
	rootCmd.PersistentFlags().String("storage", "", "session storage: file, postgres, memory")
	rootCmd.PersistentFlags().String("profile", "", "storage profile for shared terminals")
	for _, name := range []string{"config", "api", "env", "storage", "profile"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func setup(cmd *cobra.Command) error {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load config")
	}
	if v := viper.GetString("api"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := viper.GetString("env"); v != "" {
		cfg.Env = v
	}
	if v := viper.GetString("storage"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := viper.GetString("profile"); v != "" {
		cfg.Storage.Profile = v
	}

	log := logger.SetupLogger(cfg.Env)
	log.Debug("starting storefront", slog.String("env", cfg.Env), slog.String("api", cfg.API.BaseURL))

	terminal := cli.NewTerminal(cmd.OutOrStdout())
	application, err = app.NewApp(log, cfg, terminal.Views(), app.Options{})
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		return pkgerrors.Wrap(err, "failed to initialize app")
	}

	if err := application.Restore(cmd.Context()); err != nil {
		// сессия не восстановилась - работаем как гость
		log.Warn("failed to restore session", slog.Any("error", err))
	}
	return nil
}

func teardown() error {
	if application == nil {
		return nil
	}
	application.Wait()
	err := application.Close()
	application = nil
	return err
}

// reported - ошибка уже показана пользователю представлением сценария
type reported struct{ err error }

func (r reported) Error() string { return r.err.Error() }
func (r reported) Unwrap() error { return r.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return reported{err: err}
}

func printJson(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	cmd.Println(string(b))
	return nil
}

var errProductNotFound = errors.New("product not found")

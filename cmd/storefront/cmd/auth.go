package cmd

import (
	"os"

	"github.com/linemk/storefront/internal/modal"
	"github.com/linemk/storefront/internal/validation"
	"github.com/spf13/cobra"
)

// пароль можно передать через окружение, чтобы он не попадал в историю shell
const passwordEnv = "STOREFRONT_PASSWORD"

func passwordOr(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(passwordEnv)
}

var loginOpts struct {
	email    string
	password string
	remember bool
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "sign in and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Modals.Open(modal.Auth); err != nil {
			return err
		}
		return shown(application.Flows.Login.Submit(cmd.Context(), validation.LoginForm{
			Email:    loginOpts.email,
			Password: passwordOr(loginOpts.password),
			Remember: loginOpts.remember,
		}))
	},
}

var registerOpts struct {
	name     string
	email    string
	password string
	confirm  string
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "create a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Modals.Open(modal.Auth); err != nil {
			return err
		}
		password := passwordOr(registerOpts.password)
		confirm := registerOpts.confirm
		if confirm == "" {
			confirm = password
		}
		return shown(application.Flows.Register.Submit(cmd.Context(), validation.RegisterForm{
			Name:     registerOpts.name,
			Email:    registerOpts.email,
			Password: password,
			Confirm:  confirm,
		}))
	},
}

var forgotOpts struct {
	email string
}

var forgotCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "request a password reset email",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Flows.ForgotPassword.Open(); err != nil {
			return err
		}
		return shown(application.Flows.ForgotPassword.Submit(cmd.Context(), validation.ForgotPasswordForm{
			Email: forgotOpts.email,
		}))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return shown(application.Flows.Logout.Run(cmd.Context()))
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginOpts.email, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginOpts.password, "password", "", "account password, or $"+passwordEnv)
	loginCmd.Flags().BoolVar(&loginOpts.remember, "remember", true, "restore the session on the next run")
	rootCmd.AddCommand(loginCmd)

	registerCmd.Flags().StringVar(&registerOpts.name, "name", "", "display name")
	registerCmd.Flags().StringVar(&registerOpts.email, "email", "", "account email")
	registerCmd.Flags().StringVar(&registerOpts.password, "password", "", "account password, or $"+passwordEnv)
	registerCmd.Flags().StringVar(&registerOpts.confirm, "confirm", "", "password confirmation, defaults to --password")
	rootCmd.AddCommand(registerCmd)

	forgotCmd.Flags().StringVar(&forgotOpts.email, "email", "", "account email")
	rootCmd.AddCommand(forgotCmd)

	rootCmd.AddCommand(logoutCmd)
}

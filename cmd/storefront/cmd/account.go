package cmd

import (
	"strings"
	"time"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/session"
	"github.com/linemk/storefront/internal/validation"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"me"},
	Short:   "show account info and deposit history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !application.Session.Store().LoggedIn() {
			return session.ErrNotLoggedIn
		}
		return shown(application.Flows.Account.Open(cmd.Context()))
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "list card deposits",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !application.Session.Store().LoggedIn() {
			return session.ErrNotLoggedIn
		}
		return shown(application.Flows.History.Load(cmd.Context()))
	},
}

var depositOpts struct {
	cardNumber string
	cardSerial string
	cardType   string
	amount     string
}

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "top up the balance with a prepaid card",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !application.Session.Store().LoggedIn() {
			return session.ErrNotLoggedIn
		}
		if err := application.Flows.Deposit.Open(); err != nil {
			return err
		}
		return shown(application.Flows.Deposit.Submit(cmd.Context(), validation.DepositForm{
			CardNumber: depositOpts.cardNumber,
			CardSerial: depositOpts.cardSerial,
			Amount:     depositOpts.amount,
			CardType:   depositOpts.cardType,
		}))
	},
}

var passwordOpts struct {
	current string
	next    string
	confirm string
}

var passwordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "change the account password",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !application.Session.Store().LoggedIn() {
			return session.ErrNotLoggedIn
		}
		if err := application.Flows.ChangePassword.Open(); err != nil {
			return err
		}
		confirm := passwordOpts.confirm
		if confirm == "" {
			confirm = passwordOpts.next
		}
		return shown(application.Flows.ChangePassword.Submit(cmd.Context(), validation.ChangePasswordForm{
			CurrentPassword:    passwordOpts.current,
			NewPassword:        passwordOpts.next,
			ConfirmNewPassword: confirm,
		}))
	},
}

type statusView struct {
	LoggedIn  bool       `json:"logged_in"`
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Balance   int64      `json:"balance"`
	ExpiresAt *time.Time `json:"token_expires_at,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "print the current session as json",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := application.Session.Store()
		v := statusView{LoggedIn: store.LoggedIn(), Balance: store.Balance()}
		if user := store.User(); user != nil {
			v.ID, v.Name, v.Email = user.ID, user.Name, user.Email
		}
		if exp, ok := application.Session.TokenExpiry(cmd.Context()); ok {
			v.ExpiresAt = &exp
		}
		return printJson(cmd, v)
	},
}

var comingSoonCmd = &cobra.Command{
	Use:     "wishlist",
	Aliases: []string{"cart", "orders"},
	Short:   "features that are not available yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.Flows.ComingSoon.Open()
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(historyCmd)

	depositCmd.Flags().StringVar(&depositOpts.cardNumber, "card-number", "", "card number, at least 10 digits")
	depositCmd.Flags().StringVar(&depositOpts.cardSerial, "card-serial", "", "card serial, at least 5 digits")
	depositCmd.Flags().StringVar(&depositOpts.cardType, "card-type", "", "card type: "+strings.Join(models.CardTypes, ", "))
	depositCmd.Flags().StringVar(&depositOpts.amount, "amount", "", "card denomination in VND")
	rootCmd.AddCommand(depositCmd)

	passwordCmd.Flags().StringVar(&passwordOpts.current, "current", "", "current password")
	passwordCmd.Flags().StringVar(&passwordOpts.next, "new", "", "new password, at least 6 characters")
	passwordCmd.Flags().StringVar(&passwordOpts.confirm, "confirm", "", "new password confirmation, defaults to --new")
	rootCmd.AddCommand(passwordCmd)

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(comingSoonCmd)
}

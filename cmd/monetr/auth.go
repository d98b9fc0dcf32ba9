package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/monetr-client/internal/cli"
	"github.com/Veraticus/monetr-client/internal/common"
	"github.com/Veraticus/monetr-client/internal/session"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to monetr",
		Long: `Log in with your email and password. The session token is kept in local storage
so later commands do not need to log in again.`,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "email address (prompted when empty)")
	cmd.Flags().Bool("password-stdin", false, "read the password from stdin")

	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	email, _ := cmd.Flags().GetString("email")
	passwordStdin, _ := cmd.Flags().GetBool("password-stdin")

	in := cli.NewInputReader(os.Stdin, cmd.ErrOrStderr())
	if email == "" {
		var err error
		if email, err = in.Prompt(ctx, "Email"); err != nil {
			return err
		}
	}

	var (
		password string
		err      error
	)
	if passwordStdin {
		password, err = in.ReadLine(ctx)
	} else {
		password, err = in.PromptPassword(ctx, "Password")
	}
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer closeApp(a)

	if _, err := a.Session.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to reach monetr: %w", err)
	}

	progress := cli.NewLoadProgress(cmd.ErrOrStderr(), "Loading monetr...", loadResources)
	unsubscribe := a.Store.Subscribe(progress.Observe)
	result, err := a.Login(ctx, email, password)
	unsubscribe()
	progress.Finish()

	if err != nil {
		if result.Route == session.RouteVerifyEmail {
			return checkRoute(result.Route)
		}
		return common.NewUserError("Login failed: "+common.UserMessage(err), err)
	}
	if result.Route == session.RouteLogin {
		return checkRoute(result.Route)
	}

	user := a.Session.Authentication().User
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged in as "+user.GetDisplayName())); err != nil {
		return err
	}
	warnDegraded(cmd.ErrOrStderr(), result)

	if result.Route == session.RouteSetup {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No institutions are linked yet. Finish setup in the monetr web app."))
	}
	return err
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer closeApp(a)

			if err := a.Logout(ctx); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged out"))
			return err
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session and the selected bank account's balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := startApp(cmd)
			if err != nil {
				return err
			}
			defer closeApp(a)

			out := cmd.OutOrStdout()
			bootstrap := a.Session.BootstrapState()
			user := a.Session.Authentication().User
			if _, err := fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Logged in as %s (monetr %s)", user.GetDisplayName(), bootstrap.Release))); err != nil {
				return err
			}

			state := a.Store.Snapshot()
			account, ok := a.Selectors.SelectedBankAccount(state)
			if !ok {
				return checkRoute(session.RouteSetup)
			}
			balance, ok := a.Selectors.Balance(state)
			if !ok {
				_, err := fmt.Fprintln(out, cli.FormatWarning("The balance of "+account.GetName()+" is not available."))
				return err
			}
			return cli.RenderBalance(out, account, balance)
		},
	}
}

// Package authcmd implements the login, signup, logout and whoami
// subcommands. Password policy checks run here, at the form boundary,
// before anything reaches the session store.
package authcmd

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/Mitch2826/Hostel-Hunt/internal/cmdutils"
	"github.com/Mitch2826/Hostel-Hunt/internal/session"
	"github.com/Mitch2826/Hostel-Hunt/internal/validate"
)

func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the session",
	}

	cmd.AddCommand(loginCmd(), signupCmd(), logoutCmd(), whoamiCmd())

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			err = a.Sessions.Login(ctx, session.Credentials{Email: email, Password: password})
			if err != nil {
				return oops.In("auth").Wrapf(err, "Login failed")
			}

			current := a.Sessions.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", current.Identity.Email)

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func signupCmd() *cobra.Command {
	var fullName, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if err := validate.Password(password); err != nil {
				return oops.In("auth").Wrapf(err, "Password rejected")
			}

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			err = a.Sessions.Signup(ctx, session.Registration{
				FullName: fullName,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return oops.In("auth").Wrapf(err, "Signup failed")
			}

			current := a.Sessions.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s\n", current.Identity.Email)

			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear stored credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			a.Sessions.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")

			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := cmdutils.AppFromCommand(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			current := a.Sessions.Current()
			if !current.IsAuthenticated {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %d)\n",
				current.Identity.Name, current.Identity.Email, current.Identity.ID)

			return nil
		},
	}
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"quiz-client/internal/api"
	"quiz-client/internal/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd.Context(), a.in, a.out, a.client, a.sessions, email, password)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func runLogin(ctx context.Context, reader *bufio.Reader, out io.Writer, client *api.Client, sessions *session.Store, email, password string) error {
	var err error
	if email == "" {
		if email, err = promptLine(reader, out, "Email: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = promptLine(reader, out, "Password: "); err != nil {
			return err
		}
	}

	result, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if _, err := sessions.Save(ctx, result.Token); err != nil {
		return fmt.Errorf("login succeeded but token could not be stored: %w", err)
	}

	name := result.User.DisplayName
	if name == "" {
		name = email
	}
	fmt.Fprintf(out, "Logged in as %s.\n", name)
	return nil
}

func newRegisterCmd(a *app) *cobra.Command {
	var email, password, displayName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRegister(cmd.Context(), a.in, a.out, a.client, email, password, displayName)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&displayName, "name", "", "display name")
	return cmd
}

func runRegister(ctx context.Context, reader *bufio.Reader, out io.Writer, client *api.Client, email, password, displayName string) error {
	var err error
	if email == "" {
		if email, err = promptLine(reader, out, "Email: "); err != nil {
			return err
		}
	}
	if displayName == "" {
		if displayName, err = promptLine(reader, out, "Display name: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = promptLine(reader, out, "Password: "); err != nil {
			return err
		}
	}

	user, err := client.Register(ctx, email, password, displayName)
	if err != nil {
		return err
	}

	name := user.DisplayName
	if name == "" {
		name = email
	}
	fmt.Fprintf(out, "Registered %s. You can now log in.\n", name)
	return nil
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.sessions.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored identity",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			runWhoami(a.out, a.session)
			return nil
		},
	}
}

func runWhoami(out io.Writer, sess *session.Session) {
	if !sess.Authenticated() {
		fmt.Fprintln(out, "Not logged in.")
		return
	}

	identity := sess.Identity()
	switch {
	case identity.DisplayName != "":
		fmt.Fprintf(out, "Logged in as %s", identity.DisplayName)
	case identity.Email != "":
		fmt.Fprintf(out, "Logged in as %s", identity.Email)
	case identity.Subject != "":
		fmt.Fprintf(out, "Logged in as %s", identity.Subject)
	default:
		fmt.Fprint(out, "Logged in with an opaque token")
	}
	if identity.Email != "" && identity.DisplayName != "" {
		fmt.Fprintf(out, " (%s)", identity.Email)
	}
	fmt.Fprintln(out)

	if !identity.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "Token expires %s.\n", identity.ExpiresAt.Format(time.RFC3339))
	}
}

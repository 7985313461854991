package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/pustaka-app/pustaka/internal/repository"
	"github.com/pustaka-app/pustaka/internal/service"
)

// promptPassword reads a password without echoing when stdin is a
// terminal, falling back to a plain line read otherwise.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newRegisterCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			if username == "" {
				return errors.New("username must not be empty")
			}
			if password == "" {
				var err error
				if password, err = promptPassword("Password: "); err != nil {
					return err
				}
			}
			if err := a.auth.Register(cmd.Context(), username, password); err != nil {
				if errors.Is(err, repository.ErrAlreadyExists) {
					return fmt.Errorf("username %q is already taken", username)
				}
				a.log.Error("registration failed", zap.String("username", username), zap.Error(err))
				return err
			}
			fmt.Printf("Registered and signed in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			if password == "" {
				var err error
				if password, err = promptPassword("Password: "); err != nil {
					return err
				}
			}
			if err := a.auth.Login(cmd.Context(), username, password); err != nil {
				if errors.Is(err, service.ErrInvalidCredentials) {
					return errors.New("invalid username or password")
				}
				a.log.Error("login failed", zap.String("username", username), zap.Error(err))
				return err
			}
			fmt.Printf("Signed in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				a.log.Error("logout failed", zap.Error(err))
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, ok, err := a.auth.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Not signed in")
				return nil
			}
			fmt.Println(username)
			return nil
		},
	}
}

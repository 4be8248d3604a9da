package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unowned-ai/moodflow/pkg/auth"
)

var (
	usernameFlag string
	passwordFlag string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the MoodFlow account server",
	Long: `Sends your credentials to the auth API (--auth-url) and stores the returned token locally.
If --password is omitted it is read from the first line of stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, false)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a MoodFlow account",
	Long: `Registers a new account with the auth API (--auth-url) and stores the returned token locally.
If --password is omitted it is read from the first line of stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, true)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored login token",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		if err := b.tokens.ClearToken(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func initAuthCmd() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVarP(&usernameFlag, "username", "u", "", "Account username")
		c.Flags().StringVarP(&passwordFlag, "password", "p", "", "Account password (read from stdin when omitted)")
		c.MarkFlagRequired("username")
	}
}

func authenticate(cmd *cobra.Command, signup bool) error {
	password := passwordFlag
	if password == "" {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return errors.New("password is required (use --password or pipe it on stdin)")
		}
		password = strings.TrimRight(line, "\r\n")
	}

	b, err := openBackend(cmd.Context())
	if err != nil {
		return err
	}
	defer b.Close()

	client := auth.NewClient(cfg.AuthURL, nil, b.tokens)
	creds := auth.Credentials{Username: usernameFlag, Password: password}

	success := auth.SuccessMessage
	if signup {
		_, err = client.Signup(cmd.Context(), creds)
		success = auth.SignupMessage
	} else {
		_, err = client.Login(cmd.Context(), creds)
	}
	if err != nil {
		log.Debug("Authentication failed", "url", cfg.AuthURL, "err", err)
		return errors.New(auth.UserMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), success)
	return nil
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/habedi/curex/auth"
	"github.com/habedi/curex/client"
	"github.com/habedi/curex/config"
	"github.com/habedi/curex/db"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd creates a new cobra.Command for authenticating with the
// currency exchange service. It returns a pointer to the created
// cobra.Command.
func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the currency exchange service",
		Long:  "Login to the currency exchange service using your username and password",
		Run: func(cmd *cobra.Command, args []string) {
			settings := config.Load()
			if settings.Username == "" || settings.Password == "" {
				cmd.Println("Please enter your exchange service username and password.")
			}
			username, password = resolveCredentials(settings,
				func() string { return promptForInput("Username: ") },
				func() string { return promptForPassword("Password: ") })

			if !validateCredentials(username, password) {
				cmd.PrintErrln("Error: Username and password cannot be empty.")
				return
			}

			svc := loginServices(username, password)
			if err := svc.tokens.RemoveAllTokens(context.Background()); err != nil {
				cmd.PrintErrln("Error: Failed to clear previously stored tokens.")
				return
			}
			if _, err := svc.tokens.GetAccessToken(context.Background(), true); err != nil {
				cmd.PrintErrln("Error: Failed to login to the exchange service.")
				return
			}
			cmd.Println("Login was successful.")
		},
	}

	return cmd
}

// resolveCredentials prefers environment-configured credentials and prompts
// only for whichever is missing.
func resolveCredentials(settings config.Settings, promptUser, promptPass func() string) (string, string) {
	username, password := settings.Username, settings.Password
	if username == "" {
		username = promptUser()
	}
	if password == "" {
		password = promptPass()
	}
	return username, password
}

// loginServices wires a token service around the resolved credentials
// instead of re-reading the environment.
func loginServices(username, password string) *services {
	svc := buildServices()

	base := client.Configuration{
		Host:           svc.settings.Host,
		Username:       username,
		Password:       password,
		RequestTimeout: svc.settings.RequestTimeout,
	}

	repo := db.NewTokenRepository(db.GetDB())
	exchanger := client.NewExchanger(client.NewAuthSessionFactory(base))
	svc.tokens = auth.NewService(repo, exchanger, username, password)
	svc.sessions = client.NewSessionFactory(base, svc.tokens)

	return svc
}

// promptForInput prompts the user for input and returns the trimmed string.
// It takes a prompt string as an argument.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
// It takes a prompt string as an argument.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}

// validateCredentials checks if the username and password are not empty.
// It takes the username and password strings as arguments and returns a boolean.
func validateCredentials(username, password string) bool {
	return username != "" && password != ""
}

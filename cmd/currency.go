package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/habedi/curex/client"
	"github.com/habedi/curex/pkg/validation"
	"github.com/habedi/curex/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// currenciesCmd lists all currencies known to the exchange service
func currenciesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "Show the list of all currencies on the exchange service",
		Run:   listCurrencies,
	}
}

func listCurrencies(cmd *cobra.Command, args []string) {
	log.Info().Msg("Listing all currencies on the exchange service...")

	svc := buildServices()
	session, err := svc.sessions.OpenSession(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Failed to authenticate. Please check your credentials and try again.")
		log.Error().Err(err).Msg("Failed to open an API session.")
		return
	}
	defer session.Close()

	currencies, err := session.Exchange().GetAllCurrencies(context.Background())
	if err != nil {
		cmd.PrintErrln("Error:", classifyError(err).Message)
		log.Error().Err(err).Msg("Failed to fetch currencies from the exchange service.")
		return
	}

	if len(currencies) == 0 {
		cmd.Println("No currencies found on the exchange service.")
		return
	}

	ui.RenderCurrenciesTable(os.Stdout, currencies)

	log.Info().Msgf("Successfully listed %d currencies.", len(currencies))
}

// currencyCmd groups the subcommands working with a single currency
func currencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Show or add a single currency",
	}

	cmd.AddCommand(
		currencyShowCmd(),
		currencyAddCmd(),
	)

	return cmd
}

func currencyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [currencyCode]",
		Short: "Show information about a specific currency",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showCurrency(cmd, normalizeCode(args[0]))
		},
	}
}

func showCurrency(cmd *cobra.Command, code string) {
	if err := validation.ValidateCurrencyCode(code); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	log.Info().Msgf("Fetching info for currency with code=%s", code)

	svc := buildServices()
	session, err := svc.sessions.OpenSession(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Failed to authenticate. Please check your credentials and try again.")
		log.Error().Err(err).Msg("Failed to open an API session.")
		return
	}
	defer session.Close()

	currency, err := session.Exchange().GetCurrency(context.Background(), code)
	if err != nil {
		if client.IsNotFound(err) {
			cmd.Println("No currency found with the specified code.")
			return
		}
		log.Error().Err(err).Msgf("Failed to fetch info for currency with code=%s", code)
		cmd.PrintErrln("Error:", err)
		return
	}

	cmd.Println("Currency Information:")
	cmd.Printf("Code: %s\n", currency.Code)
	cmd.Printf("Name: %s\n", currency.Name)
	cmd.Printf("Sign: %s\n", currency.Sign)
}

func currencyAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [currencyCode] [currencyName] [currencySign]",
		Short: "Add a new currency to the exchange service",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			addCurrency(cmd, normalizeCode(args[0]), strings.TrimSpace(args[1]), strings.TrimSpace(args[2]))
		},
	}
}

func addCurrency(cmd *cobra.Command, code, name, sign string) {
	if err := validation.ValidateCurrencyCode(code); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}
	if err := validation.ValidateCurrencyName(name); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}
	if err := validation.ValidateCurrencySign(sign); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	log.Info().Msgf("Adding currency with code=%s", code)

	svc := buildServices()
	session, err := svc.sessions.OpenSession(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Failed to authenticate. Please check your credentials and try again.")
		log.Error().Err(err).Msg("Failed to open an API session.")
		return
	}
	defer session.Close()

	currency, err := session.Exchange().AddCurrency(context.Background(), name, code, sign)
	if err != nil {
		if client.IsConflict(err) {
			cmd.PrintErrln("Error: A currency with this code already exists.")
			return
		}
		log.Error().Err(err).Msgf("Failed to add currency with code=%s", code)
		cmd.PrintErrln("Error:", err)
		return
	}

	cmd.Printf("Currency %s (%s) was added successfully.\n", currency.Code, currency.Name)
}

// normalizeCode upper-cases a currency code the way the exchange service stores them.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

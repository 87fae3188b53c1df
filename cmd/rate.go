package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/habedi/curex/client"
	"github.com/habedi/curex/pkg/validation"
	"github.com/habedi/curex/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// ratesCmd lists all exchange rates known to the exchange service
func ratesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the list of all exchange rates on the exchange service",
		Run:   listExchangeRates,
	}
}

func listExchangeRates(cmd *cobra.Command, args []string) {
	log.Info().Msg("Listing all exchange rates on the exchange service...")

	svc := buildServices()
	session, err := svc.sessions.OpenSession(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Failed to authenticate. Please check your credentials and try again.")
		log.Error().Err(err).Msg("Failed to open an API session.")
		return
	}
	defer session.Close()

	rates, err := session.Exchange().GetAllExchangeRates(context.Background())
	if err != nil {
		cmd.PrintErrln("Error:", classifyError(err).Message)
		log.Error().Err(err).Msg("Failed to fetch exchange rates from the exchange service.")
		return
	}

	if len(rates) == 0 {
		cmd.Println("No exchange rates found on the exchange service.")
		return
	}

	ui.RenderExchangeRatesTable(os.Stdout, rates)

	log.Info().Msgf("Successfully listed %d exchange rates.", len(rates))
}

// rateCmd groups the subcommands working with a single exchange rate
func rateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Show, add, or edit a single exchange rate",
	}

	cmd.AddCommand(
		rateShowCmd(),
		rateAddCmd(),
		rateEditCmd(),
	)

	return cmd
}

func rateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [baseCode] [targetCode]",
		Short: "Show the exchange rate for a currency pair",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			showExchangeRate(cmd, normalizeCode(args[0]), normalizeCode(args[1]))
		},
	}
}

func showExchangeRate(cmd *cobra.Command, base, target string) {
	if err := validatePair(base, target); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	log.Info().Msgf("Fetching exchange rate for pair=%s%s", base, target)

	svc := buildServices()
	session, err := svc.sessions.OpenSession(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Failed to authenticate. Please check your credentials and try again.")
		log.Error().Err(err).Msg("Failed to open an API session.")
		return
	}
	defer session.Close()

	rate, err := session.Exchange().GetExchangeRate(context.Background(), base+target)
	if err != nil {
		if client.IsNotFound(err) {
			cmd.Println("No exchange rate found for the specified currency pair.")
			return
		}
		log.Error().Err(err).Msgf("Failed to fetch exchange rate for pair=%s%s", base, target)
		cmd.PrintErrln("Error:", err)
		return
	}

	cmd.Println("Exchange Rate Information:")
	cmd.Printf("Base: %s (%s)\n", rate.BaseCurrency.Code, rate.BaseCurrency.Name)
	cmd.Printf("Target: %s (%s)\n", rate.TargetCurrency.Code, rate.TargetCurrency.Name)
	cmd.Printf("Rate: %g\n", rate.Rate)
}

func rateAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [baseCode] [targetCode] [rate]",
		Short: "Add a new exchange rate to the exchange service",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			rate, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				cmd.PrintErrln("Error: The rate must be a decimal number.")
				return
			}
			addExchangeRate(cmd, normalizeCode(args[0]), normalizeCode(args[1]), rate)
		},
	}
}

func addExchangeRate(cmd *cobra.Command, base, target string, rate float64) {
	if err := validatePair(base, target); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}
	if err := validation.ValidateRate(rate); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	log.Info().Msgf("Adding exchange rate for pair=%s%s", base, target)

	svc := buildServices()
	session, err := svc.sessions.OpenSession(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Failed to authenticate. Please check your credentials and try again.")
		log.Error().Err(err).Msg("Failed to open an API session.")
		return
	}
	defer session.Close()

	added, err := session.Exchange().AddExchangeRate(context.Background(), base, target, rate)
	if err != nil {
		if client.IsConflict(err) {
			cmd.PrintErrln("Error: An exchange rate for this currency pair already exists. Use `curex rate edit` to change it.")
			return
		}
		if client.IsNotFound(err) {
			cmd.PrintErrln("Error: One of the currencies in the pair is not registered on the exchange service.")
			return
		}
		log.Error().Err(err).Msgf("Failed to add exchange rate for pair=%s%s", base, target)
		cmd.PrintErrln("Error:", err)
		return
	}

	cmd.Printf("Exchange rate %s/%s = %g was added successfully.\n",
		added.BaseCurrency.Code, added.TargetCurrency.Code, added.Rate)
}

func rateEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [baseCode] [targetCode] [rate]",
		Short: "Change an existing exchange rate on the exchange service",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			rate, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				cmd.PrintErrln("Error: The rate must be a decimal number.")
				return
			}
			editExchangeRate(cmd, normalizeCode(args[0]), normalizeCode(args[1]), rate)
		},
	}
}

func editExchangeRate(cmd *cobra.Command, base, target string, rate float64) {
	if err := validatePair(base, target); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}
	if err := validation.ValidateRate(rate); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	log.Info().Msgf("Updating exchange rate for pair=%s%s", base, target)

	svc := buildServices()
	session, err := svc.sessions.OpenSession(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Failed to authenticate. Please check your credentials and try again.")
		log.Error().Err(err).Msg("Failed to open an API session.")
		return
	}
	defer session.Close()

	updated, err := session.Exchange().UpdateExchangeRate(context.Background(), base+target, rate)
	if err != nil {
		if client.IsNotFound(err) {
			cmd.PrintErrln("Error: No exchange rate found for this currency pair. Use `curex rate add` to create it.")
			return
		}
		log.Error().Err(err).Msgf("Failed to update exchange rate for pair=%s%s", base, target)
		cmd.PrintErrln("Error:", err)
		return
	}

	cmd.Printf("Exchange rate %s/%s was updated to %g.\n",
		updated.BaseCurrency.Code, updated.TargetCurrency.Code, updated.Rate)
}

func validatePair(base, target string) error {
	if err := validation.ValidateCurrencyCode(base); err != nil {
		return err
	}
	return validation.ValidateCurrencyCode(target)
}

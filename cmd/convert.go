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

// convertCmd converts an amount from one currency to another using the
// exchange service.
func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [fromCode] [toCode] [amount]",
		Short: "Convert an amount between two currencies",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			amount, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				cmd.PrintErrln("Error: The amount must be a decimal number.")
				return
			}
			convertCurrency(cmd, normalizeCode(args[0]), normalizeCode(args[1]), amount)
		},
	}
}

func convertCurrency(cmd *cobra.Command, from, to string, amount float64) {
	if err := validatePair(from, to); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}
	if err := validation.ValidateAmount(amount); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	log.Info().Msgf("Converting %g %s to %s", amount, from, to)

	svc := buildServices()
	session, err := svc.sessions.OpenSession(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Failed to authenticate. Please check your credentials and try again.")
		log.Error().Err(err).Msg("Failed to open an API session.")
		return
	}
	defer session.Close()

	conversion, err := session.Exchange().ConvertCurrency(context.Background(), from, to, amount)
	if err != nil {
		if client.IsNotFound(err) {
			cmd.PrintErrln("Error: No exchange rate is available for this currency pair.")
			return
		}
		log.Error().Err(err).Msgf("Failed to convert %g %s to %s", amount, from, to)
		cmd.PrintErrln("Error:", err)
		return
	}

	ui.RenderConversion(os.Stdout, conversion)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/habedi/curex/client"
	"github.com/habedi/curex/db"
	"github.com/habedi/curex/pkg/pool"
	"github.com/habedi/curex/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// catalogueCmd represents the base command when called without any subcommands
func catalogueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "Manage the offline snapshot of the exchange catalogue",
	}

	cmd.AddCommand(
		catalogueListCmd(),
		catalogueRatesCmd(),
		catalogueRefreshCmd(),
	)

	return cmd
}

// catalogueListCmd shows the currencies held in the offline snapshot
func catalogueListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the currencies in the offline snapshot",
		Run:   listSnapshotCurrencies,
	}
}

func listSnapshotCurrencies(cmd *cobra.Command, args []string) {
	log.Info().Msg("Listing the currencies in the offline snapshot...")

	repo := db.NewCatalogueRepository(db.GetDB())
	currencies, err := repo.ListCurrencies(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Unable to list currencies. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to read currencies from the offline snapshot.")
		return
	}

	if len(currencies) == 0 {
		cmd.Println("The offline snapshot is empty. Use `curex catalogue refresh` to populate it.")
		return
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Row ID", "Code", "Name", "Sign"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for i, currency := range currencies {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			currency.Code,
			currency.Name,
			currency.Sign,
		})
	}

	table.Render()

	log.Info().Msgf("Successfully listed %d currencies from the offline snapshot.", len(currencies))
}

// catalogueRatesCmd shows the exchange rates held in the offline snapshot
func catalogueRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the exchange rates in the offline snapshot",
		Run:   listSnapshotRates,
	}
}

func listSnapshotRates(cmd *cobra.Command, args []string) {
	log.Info().Msg("Listing the exchange rates in the offline snapshot...")

	repo := db.NewCatalogueRepository(db.GetDB())
	rates, err := repo.ListExchangeRates(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Unable to list exchange rates. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to read exchange rates from the offline snapshot.")
		return
	}

	if len(rates) == 0 {
		cmd.Println("The offline snapshot has no exchange rates. Use `curex catalogue refresh` to populate it.")
		return
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Row ID", "Pair", "Rate"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for i, rate := range rates {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			rate.BaseCode + "/" + rate.TargetCode,
			fmt.Sprintf("%g", rate.Rate),
		})
	}

	table.Render()

	log.Info().Msgf("Successfully listed %d exchange rates from the offline snapshot.", len(rates))
}

// catalogueRefreshCmd replaces the offline snapshot with the latest data
// from the exchange service.
func catalogueRefreshCmd() *cobra.Command {
	var numWorkers int

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Update the offline snapshot with the latest data from the exchange service",
		Run: func(cmd *cobra.Command, args []string) {
			refreshSnapshot(cmd, numWorkers)
		},
	}

	cmd.Flags().IntVarP(&numWorkers, "workers", "w", 5, "Number of workers to use for fetching currency data")
	return cmd
}

func refreshSnapshot(cmd *cobra.Command, numWorkers int) {
	log.Info().Msg("Refreshing the offline snapshot...")

	if err := validation.ValidateWorkerCount(numWorkers); err != nil {
		cmd.PrintErrln("Error: Number of workers should be between 1 and 20.")
		return
	}

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
		cmd.PrintErrln("Error: Failed to fetch the list of currencies from the exchange service.")
		log.Error().Err(err).Msg("Failed to fetch currencies for the snapshot refresh.")
		return
	}
	if len(currencies) == 0 {
		cmd.Println("No currencies found on the exchange service. The snapshot was left unchanged.")
		return
	}
	log.Info().Msgf("Found %d currencies on the exchange service.", len(currencies))

	rates, err := session.Exchange().GetAllExchangeRates(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Failed to fetch the exchange rates from the exchange service.")
		log.Error().Err(err).Msg("Failed to fetch exchange rates for the snapshot refresh.")
		return
	}

	repo := db.NewCatalogueRepository(db.GetDB())
	if err := repo.Clear(context.Background()); err != nil {
		cmd.PrintErrln("Error: Failed to empty the offline snapshot. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to empty the offline snapshot.")
		return
	}

	log.Info().Msg("Snapshot tables truncated. Starting data refresh...")

	bar := progressbar.NewOptions(len(currencies),
		progressbar.OptionSetDescription("Refreshing snapshot..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
	)

	// Each worker re-fetches the per-currency details so the snapshot holds
	// the canonical record for every code, then stores it.
	errs := pool.Run(context.Background(), currencies, numWorkers, func(ctx context.Context, summary client.Currency) error {
		currency, err := session.Exchange().GetCurrency(ctx, summary.Code)
		if err != nil {
			log.Info().Msgf("Failed to fetch details for currency %s: %v", summary.Code, err)
			_ = bar.Add(1)
			return err
		}
		err = repo.PutCurrency(ctx, db.Currency{
			Code: currency.Code,
			Name: currency.Name,
			Sign: currency.Sign,
		})
		if err != nil {
			log.Info().Msgf("Failed to store currency %s in the snapshot: %v", currency.Code, err)
		}
		_ = bar.Add(1)
		return err
	})

	_ = bar.Finish()

	currencyFailed := len(errs)

	rateFailed := 0
	for _, rate := range rates {
		err := repo.PutExchangeRate(context.Background(), db.ExchangeRate{
			BaseCode:   rate.BaseCurrency.Code,
			TargetCode: rate.TargetCurrency.Code,
			Rate:       rate.Rate,
		})
		if err != nil {
			log.Info().Msgf("Failed to store exchange rate %s/%s in the snapshot: %v",
				rate.BaseCurrency.Code, rate.TargetCurrency.Code, err)
			rateFailed++
		}
	}

	if currencyFailed > 0 || rateFailed > 0 {
		cmd.Printf("Refreshing finished with %d failures. There are %d currencies and %d exchange rates in the snapshot.\n",
			currencyFailed+rateFailed, len(currencies)-currencyFailed, len(rates)-rateFailed)
		return
	}
	cmd.Printf("Refreshing completed successfully. There are %d currencies and %d exchange rates in the snapshot.\n",
		len(currencies), len(rates))
}

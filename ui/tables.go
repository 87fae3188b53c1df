package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/habedi/curex/client"
	"github.com/olekukonko/tablewriter"
)

// RenderCurrenciesTable writes a Code/Name/Sign table for the given currencies.
func RenderCurrenciesTable(w io.Writer, currencies []client.Currency) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Code", "Name", "Sign"})

	// Table appearance settings
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, currency := range currencies {
		table.Append([]string{currency.Code, currency.Name, currency.Sign})
	}

	table.Render()
}

// RenderExchangeRatesTable writes a Base/Target/Rate table for the given rates.
func RenderExchangeRatesTable(w io.Writer, rates []client.ExchangeRate) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Base", "Target", "Rate"})

	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, rate := range rates {
		table.Append([]string{
			rate.BaseCurrency.Code,
			rate.TargetCurrency.Code,
			strconv.FormatFloat(rate.Rate, 'f', -1, 64),
		})
	}

	table.Render()
}

// RenderConversion writes a one-line summary of a conversion result.
func RenderConversion(w io.Writer, conversion client.Conversion) {
	fmt.Fprintf(w, "%g %s = %g %s (rate %g)\n",
		conversion.Amount, conversion.BaseCurrency.Code,
		conversion.ConvertedAmount, conversion.TargetCurrency.Code,
		conversion.Rate)
}

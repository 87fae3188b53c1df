package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CurrencyExchangeAPI is the typed facade over the business endpoints of the
// remote currency-exchange service.
type CurrencyExchangeAPI struct {
	client *ApiClient
}

// NewCurrencyExchangeAPI binds the facade to one API client.
func NewCurrencyExchangeAPI(client *ApiClient) *CurrencyExchangeAPI {
	return &CurrencyExchangeAPI{client: client}
}

// GetAllCurrencies returns every currency the service knows.
func (api *CurrencyExchangeAPI) GetAllCurrencies(ctx context.Context) ([]Currency, error) {
	var currencies []Currency
	if err := api.client.getJSON(ctx, "/currencies", &currencies); err != nil {
		return nil, fmt.Errorf("failed to fetch currencies: %w", err)
	}
	return currencies, nil
}

// GetCurrency returns one currency by its three-letter code.
func (api *CurrencyExchangeAPI) GetCurrency(ctx context.Context, code string) (Currency, error) {
	var currency Currency
	if err := api.client.getJSON(ctx, "/currency/"+url.PathEscape(code), &currency); err != nil {
		return Currency{}, fmt.Errorf("failed to fetch currency %s: %w", code, err)
	}
	return currency, nil
}

// AddCurrency registers a new currency.
func (api *CurrencyExchangeAPI) AddCurrency(ctx context.Context, name, code, sign string) (Currency, error) {
	form := url.Values{
		"name": {name},
		"code": {code},
		"sign": {sign},
	}
	var currency Currency
	if err := api.client.submitForm(ctx, http.MethodPost, "/currencies", form, &currency); err != nil {
		return Currency{}, fmt.Errorf("failed to add currency %s: %w", code, err)
	}
	return currency, nil
}

// GetAllExchangeRates returns every exchange rate the service knows.
func (api *CurrencyExchangeAPI) GetAllExchangeRates(ctx context.Context) ([]ExchangeRate, error) {
	var rates []ExchangeRate
	if err := api.client.getJSON(ctx, "/exchangeRates", &rates); err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	return rates, nil
}

// GetExchangeRate returns the rate for a concatenated currency pair, e.g. "USDEUR".
func (api *CurrencyExchangeAPI) GetExchangeRate(ctx context.Context, pair string) (ExchangeRate, error) {
	var rate ExchangeRate
	if err := api.client.getJSON(ctx, "/exchangeRate/"+url.PathEscape(pair), &rate); err != nil {
		return ExchangeRate{}, fmt.Errorf("failed to fetch exchange rate %s: %w", pair, err)
	}
	return rate, nil
}

// AddExchangeRate registers a new exchange rate between two known currencies.
func (api *CurrencyExchangeAPI) AddExchangeRate(ctx context.Context, base, target string, rate float64) (ExchangeRate, error) {
	form := url.Values{
		"baseCurrencyCode":   {base},
		"targetCurrencyCode": {target},
		"rate":               {strconv.FormatFloat(rate, 'f', -1, 64)},
	}
	var added ExchangeRate
	if err := api.client.submitForm(ctx, http.MethodPost, "/exchangeRates", form, &added); err != nil {
		return ExchangeRate{}, fmt.Errorf("failed to add exchange rate %s%s: %w", base, target, err)
	}
	return added, nil
}

// UpdateExchangeRate changes the value of an existing exchange rate.
func (api *CurrencyExchangeAPI) UpdateExchangeRate(ctx context.Context, pair string, rate float64) (ExchangeRate, error) {
	form := url.Values{
		"rate": {strconv.FormatFloat(rate, 'f', -1, 64)},
	}
	var updated ExchangeRate
	if err := api.client.submitForm(ctx, http.MethodPatch, "/exchangeRate/"+url.PathEscape(pair), form, &updated); err != nil {
		return ExchangeRate{}, fmt.Errorf("failed to update exchange rate %s: %w", pair, err)
	}
	return updated, nil
}

// ConvertCurrency converts an amount from one currency into another.
func (api *CurrencyExchangeAPI) ConvertCurrency(ctx context.Context, from, to string, amount float64) (Conversion, error) {
	query := url.Values{
		"from":   {from},
		"to":     {to},
		"amount": {strconv.FormatFloat(amount, 'f', -1, 64)},
	}
	var conversion Conversion
	if err := api.client.getJSON(ctx, "/exchange?"+query.Encode(), &conversion); err != nil {
		return Conversion{}, fmt.Errorf("failed to convert %s to %s: %w", from, to, err)
	}
	return conversion, nil
}

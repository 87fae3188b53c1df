package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/habedi/curex/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExchangeAPI(t *testing.T, handler http.HandlerFunc) *client.CurrencyExchangeAPI {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return client.NewCurrencyExchangeAPI(client.NewApiClient(client.Configuration{Host: server.URL}))
}

func TestGetAllCurrencies(t *testing.T) {
	api := newExchangeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/currencies", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]client.Currency{
			{Code: "USD", Name: "US Dollar", Sign: "$"},
			{Code: "EUR", Name: "Euro", Sign: "€"},
		})
	})

	currencies, err := api.GetAllCurrencies(context.Background())

	require.NoError(t, err)
	require.Len(t, currencies, 2)
	assert.Equal(t, "USD", currencies[0].Code)
}

func TestGetCurrency_NotFound(t *testing.T) {
	api := newExchangeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"currency not found"}`, http.StatusNotFound)
	})

	_, err := api.GetCurrency(context.Background(), "XXX")

	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
}

func TestAddCurrency_Conflict(t *testing.T) {
	api := newExchangeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"currency already exists"}`, http.StatusConflict)
	})

	_, err := api.AddCurrency(context.Background(), "US Dollar", "USD", "$")

	require.Error(t, err)
	assert.True(t, client.IsConflict(err))
}

func TestAddCurrency_SubmitsForm(t *testing.T) {
	api := newExchangeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "US Dollar", r.FormValue("name"))
		assert.Equal(t, "USD", r.FormValue("code"))
		assert.Equal(t, "$", r.FormValue("sign"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(client.Currency{Code: "USD", Name: "US Dollar", Sign: "$"})
	})

	added, err := api.AddCurrency(context.Background(), "US Dollar", "USD", "$")

	require.NoError(t, err)
	assert.Equal(t, "USD", added.Code)
}

func TestGetExchangeRate(t *testing.T) {
	api := newExchangeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/exchangeRate/USDEUR", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(client.ExchangeRate{
			BaseCurrency:   client.Currency{Code: "USD"},
			TargetCurrency: client.Currency{Code: "EUR"},
			Rate:           0.92,
		})
	})

	rate, err := api.GetExchangeRate(context.Background(), "USDEUR")

	require.NoError(t, err)
	assert.Equal(t, 0.92, rate.Rate)
}

func TestUpdateExchangeRate_SubmitsPatch(t *testing.T) {
	api := newExchangeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/exchangeRate/USDEUR", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "0.95", r.FormValue("rate"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(client.ExchangeRate{
			BaseCurrency:   client.Currency{Code: "USD"},
			TargetCurrency: client.Currency{Code: "EUR"},
			Rate:           0.95,
		})
	})

	updated, err := api.UpdateExchangeRate(context.Background(), "USDEUR", 0.95)

	require.NoError(t, err)
	assert.Equal(t, 0.95, updated.Rate)
}

func TestConvertCurrency(t *testing.T) {
	api := newExchangeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/exchange", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "EUR", r.URL.Query().Get("to"))
		assert.Equal(t, "100", r.URL.Query().Get("amount"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(client.Conversion{
			BaseCurrency:    client.Currency{Code: "USD"},
			TargetCurrency:  client.Currency{Code: "EUR"},
			Rate:            0.92,
			Amount:          100,
			ConvertedAmount: 92,
		})
	})

	conversion, err := api.ConvertCurrency(context.Background(), "USD", "EUR", 100)

	require.NoError(t, err)
	assert.Equal(t, 92.0, conversion.ConvertedAmount)
}

func TestGetAllCurrencies_MalformedBody(t *testing.T) {
	// A long non-JSON body also exercises the truncated preview in the
	// parse-failure log path.
	api := newExchangeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>" + strings.Repeat("not json ", 100) + "</html>"))
	})

	_, err := api.GetAllCurrencies(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response JSON")
}

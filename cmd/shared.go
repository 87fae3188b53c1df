package cmd

import (
	"github.com/habedi/curex/client"
	"github.com/habedi/curex/pkg/clierr"
)

// classifyError wraps an API failure in a typed CLI error so commands print
// one consistent message per failure class.
func classifyError(err error) *clierr.Error {
	switch {
	case client.IsUnauthorized(err):
		return clierr.New(clierr.Auth, "Authentication failed. Please run `curex login` and try again.", err)
	case client.IsNotFound(err):
		return clierr.New(clierr.NotFound, "The requested resource was not found on the exchange service.", err)
	case client.IsConflict(err):
		return clierr.New(clierr.Conflict, "The resource already exists on the exchange service.", err)
	default:
		return clierr.New(clierr.Internal, "The exchange service request failed. Please check the logs for details.", err)
	}
}

package cmd

import (
	"context"

	"github.com/habedi/curex/db"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// tokensCmd groups the subcommands that manage stored access and refresh tokens
func tokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage the access and refresh tokens held by curex",
	}

	cmd.AddCommand(
		tokensRevokeCmd(),
		tokensExpungeCmd(),
		tokensPurgeCmd(),
	)

	return cmd
}

// tokensRevokeCmd invalidates the tokens on the exchange service and then
// forgets the local copies.
func tokensRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke",
		Short: "Revoke all tokens on the exchange service and forget the local copies",
		Run:   revokeTokens,
	}
}

func revokeTokens(cmd *cobra.Command, args []string) {
	log.Info().Msg("Revoking all tokens on the exchange service...")

	svc := buildServices()
	session, err := svc.sessions.OpenSession(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Failed to authenticate. Please check your credentials and try again.")
		log.Error().Err(err).Msg("Failed to open an API session.")
		return
	}
	defer session.Close()

	revoked, err := session.Auth().RevokeAllTokens(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Failed to revoke tokens on the exchange service. Please check the logs for details.")
		log.Error().Err(err).Msg("Remote token revocation failed.")
		return
	}

	// The remote side is already revoked, so local cleanup must follow
	// even when the store removal fails partway.
	if err := svc.tokens.RemoveAllTokens(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to remove tokens from the local store.")
	}
	svc.tokens.InvalidateCachedAccessToken()

	cmd.Printf("Revoked %d tokens on the exchange service and cleared the local store.\n", len(revoked.Revoked))
}

// tokensExpungeCmd deletes the local token copies without touching the
// exchange service.
func tokensExpungeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expunge",
		Short: "Delete all locally stored tokens without contacting the exchange service",
		Run:   expungeTokens,
	}
}

func expungeTokens(cmd *cobra.Command, args []string) {
	log.Info().Msg("Expunging all tokens from the local store...")

	svc := buildServices()
	if err := svc.tokens.RemoveAllTokens(context.Background()); err != nil {
		cmd.PrintErrln("Error: Failed to remove tokens from the local store. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to remove tokens from the local store.")
		return
	}
	svc.tokens.InvalidateCachedAccessToken()

	cmd.Println("All locally stored tokens were deleted.")
}

// tokensPurgeCmd removes only the rows whose expiry instant has passed.
func tokensPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove expired token rows from the local store",
		Run:   purgeTokens,
	}
}

func purgeTokens(cmd *cobra.Command, args []string) {
	log.Info().Msg("Purging expired tokens from the local store...")

	repo := db.NewTokenRepository(db.GetDB())

	accessRemoved, err := repo.RemoveExpiredTokens(context.Background(), db.TokenTypeAccess)
	if err != nil {
		cmd.PrintErrln("Error: Failed to purge expired access tokens. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to purge expired access tokens.")
		return
	}

	refreshRemoved, err := repo.RemoveExpiredTokens(context.Background(), db.TokenTypeRefresh)
	if err != nil {
		cmd.PrintErrln("Error: Failed to purge expired refresh tokens. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to purge expired refresh tokens.")
		return
	}

	cmd.Printf("Removed %d expired access tokens and %d expired refresh tokens.\n", accessRemoved, refreshRemoved)
}

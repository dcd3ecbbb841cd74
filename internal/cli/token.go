package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mikkoo/internal/common"
	"mikkoo/internal/domain/user"
	"mikkoo/internal/security"
)

func newTokenCmd() *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)

	c := &cobra.Command{
		Use:   "token",
		Short: "Issue a role-scoped bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := common.ParseUUID(userID)
			if err != nil {
				return fmt.Errorf("invalid --user-id: %w", err)
			}
			switch user.Role(role) {
			case user.RoleProvider, user.RoleRequester:
			default:
				return fmt.Errorf("invalid --role: want provider or requester, got %q", role)
			}

			// Only the signing secret is needed; skip the full config so
			// issuing a token does not demand a database.
			_ = godotenv.Load()
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return fmt.Errorf("JWT_SECRET is required")
			}
			provider := security.NewJWTProvider(secret)
			token, expiresAt, err := provider.Generate(id, []string{role}, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, token)
			fmt.Fprintf(os.Stderr, "expires_at=%s\n", expiresAt.Format(time.RFC3339))
			return nil
		},
	}

	c.Flags().StringVar(&userID, "user-id", "", "subject user id (uuid)")
	c.Flags().StringVar(&role, "role", "", "active role: provider or requester")
	c.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	_ = c.MarkFlagRequired("user-id")
	_ = c.MarkFlagRequired("role")
	return c
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/gather/internal/client"
	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080/api"

// app holds what the commands share for one invocation.
type app struct {
	apiURL    string
	sessionDB string

	store *client.SQLiteStore
	api   *client.API
	in    *bufio.Reader
}

// Execute runs the CLI. Called by main.main().
func Execute() {
	_ = godotenv.Load()

	a := &app{}
	defer a.close()

	if err := newRootCommand(a).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.close()
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "gather",
		Short: "Gather - find, create and join events",
		Long: `gather is the command line client for the Gather API.

Sign up and log in once; the session is kept locally until you log out
or the server rejects the token.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", envOr("GATHER_API_URL", defaultAPIURL), "base URL of the Gather API")
	root.PersistentFlags().StringVar(&a.sessionDB, "session-db", envOr("GATHER_SESSION_DB", defaultSessionPath()), "path of the local session database")

	root.AddCommand(newSignupCommand(a))
	root.AddCommand(newLoginCommand(a))
	root.AddCommand(newLogoutCommand(a))
	root.AddCommand(newWhoamiCommand(a))
	root.AddCommand(newEventsCommand(a))
	root.AddCommand(newJoinCommand(a))
	root.AddCommand(newLeaveCommand(a))

	return root
}

// open hydrates the session before any command runs.
func (a *app) open(ctx context.Context) error {
	store, err := client.OpenSQLiteStore(ctx, a.sessionDB)
	if err != nil {
		return err
	}
	session := client.NewSession(store)
	if err := session.Hydrate(ctx); err != nil {
		_ = store.Close()
		return err
	}

	a.store = store
	a.api = client.NewAPI(a.apiURL, session, nil)
	return nil
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
		a.store = nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".gather", "session.db")
	}
	return filepath.Join(home, ".gather", "session.db")
}

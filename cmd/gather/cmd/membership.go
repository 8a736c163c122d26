package cmd

import (
	"context"
	"fmt"

	"github.com/joshua-takyi/gather/internal/client"
	"github.com/spf13/cobra"
)

type membershipCall func(ctx context.Context, id string) (*client.Event, error)

func newJoinCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.membership(cmd, args[0], a.api.JoinEvent, "Joined")
		},
	}
}

func newLeaveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leave <id>",
		Short: "Leave an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.membership(cmd, args[0], a.api.LeaveEvent, "Left")
		},
	}
}

// membership runs call, logging in first when there is no session and once
// more if the server rejects the stored token. The original action resumes
// after login.
func (a *app) membership(cmd *cobra.Command, id string, call membershipCall, verb string) error {
	if !a.api.Session().Current().LoggedIn() {
		fmt.Fprintln(cmd.OutOrStdout(), "You need to log in first.")
		if err := a.login(cmd, ""); err != nil {
			return err
		}
	}

	event, err := call(cmd.Context(), id)
	if client.IsUnauthorized(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "Your session has expired. Please log in again.")
		if err := a.login(cmd, ""); err != nil {
			return err
		}
		event, err = call(cmd.Context(), id)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %q (%d attending).\n", verb, event.Title, len(event.Attendees))
	return nil
}

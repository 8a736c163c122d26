package cmd

import (
	"fmt"

	"github.com/joshua-takyi/gather/internal/client"
	"github.com/spf13/cobra"
)

func newEventsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List, show and manage events",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all events by date",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				events, err := a.api.ListEvents(cmd.Context())
				if err != nil {
					return err
				}
				return printEvents(cmd.OutOrStdout(), events)
			},
		},
		&cobra.Command{
			Use:   "mine",
			Short: "List the events you created",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				events, err := a.api.MyEvents(cmd.Context())
				if err != nil {
					return err
				}
				return printEvents(cmd.OutOrStdout(), events)
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one event with its attendees",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				event, err := a.api.GetEvent(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printEvent(cmd.OutOrStdout(), event)
				return nil
			},
		},
		newCreateEventCommand(a),
		newUpdateEventCommand(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete an event you own",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				msg, err := a.api.DeleteEvent(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			},
		},
	)
	return cmd
}

func newCreateEventCommand(a *app) *cobra.Command {
	var in client.EventInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Long: `Create an event. --date accepts RFC 3339 or natural language such as
"next friday 7pm"; missing title and date are prompted for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.Title, err = a.valueOrPrompt(cmd, in.Title, "Title: "); err != nil {
				return err
			}
			if in.Date, err = a.valueOrPrompt(cmd, in.Date, "Date: "); err != nil {
				return err
			}

			event, err := a.api.CreateEvent(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created event %s.\n", event.ID)
			printEvent(cmd.OutOrStdout(), event)
			return nil
		},
	}

	addEventFlags(cmd, &in)
	return cmd
}

func newUpdateEventCommand(a *app) *cobra.Command {
	var in client.EventInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an event you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == (client.EventInput{}) {
				return fmt.Errorf("nothing to update: pass at least one of --title, --description, --date, --location")
			}
			event, err := a.api.UpdateEvent(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated event %s.\n", event.ID)
			printEvent(cmd.OutOrStdout(), event)
			return nil
		},
	}

	addEventFlags(cmd, &in)
	return cmd
}

func addEventFlags(cmd *cobra.Command, in *client.EventInput) {
	cmd.Flags().StringVar(&in.Title, "title", "", "event title")
	cmd.Flags().StringVar(&in.Description, "description", "", "event description")
	cmd.Flags().StringVar(&in.Date, "date", "", "event date")
	cmd.Flags().StringVar(&in.Location, "location", "", "event location")
}

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joshua-takyi/gather/internal/client"
)

const dateLayout = "Mon 02 Jan 2006 15:04 MST"

func printEvents(w io.Writer, events []*client.Event) error {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTITLE\tLOCATION\tATTENDING")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", e.ID, formatDate(e.Date), e.Title, e.Location, len(e.Attendees))
	}
	return tw.Flush()
}

func printEvent(w io.Writer, e *client.Event) {
	fmt.Fprintf(w, "%s\n", e.Title)
	fmt.Fprintf(w, "  id:        %s\n", e.ID)
	fmt.Fprintf(w, "  date:      %s\n", formatDate(e.Date))
	if e.Location != "" {
		fmt.Fprintf(w, "  location:  %s\n", e.Location)
	}
	if e.Owner != nil {
		fmt.Fprintf(w, "  organizer: %s\n", e.Owner.Name)
	}
	if e.Description != "" {
		fmt.Fprintf(w, "  about:     %s\n", e.Description)
	}

	names := make([]string, 0, len(e.Attendees))
	for _, a := range e.Attendees {
		if a != nil {
			names = append(names, a.Name)
		}
	}
	if len(names) == 0 {
		fmt.Fprintln(w, "  attending: nobody yet")
		return
	}
	fmt.Fprintf(w, "  attending: %s\n", strings.Join(names, ", "))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

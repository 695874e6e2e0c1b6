package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/planner/internal/client/models"
)

// List prints the local records of kind as a table.
func (a *App) List(ctx context.Context, kind models.Kind) error {
	recs, err := a.planner.List(ctx, kind)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintf(a.out, "No %s.\n", kind)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSYNCED\tTITLE\tDETAILS")
	for _, rec := range recs {
		title, details := summary(rec)
		synced := "no"
		if rec.GetExternalID() != "" {
			synced = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", rec.LocalID(), synced, title, details)
	}
	return tw.Flush()
}

// Show prints every field of one record.
func (a *App) Show(ctx context.Context, kind models.Kind, id int64) error {
	rec, err := a.planner.Get(ctx, kind, id)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, f := range fields(rec) {
		fmt.Fprintf(tw, "%s:\t%s\n", f[0], f[1])
	}
	return tw.Flush()
}

func summary(rec models.Record) (title, details string) {
	switch r := rec.(type) {
	case *models.Project:
		return r.Title, string(r.Status.OrDefault())
	case *models.Event:
		return r.Title, joinNonEmpty(formatTime(r.StartsAt), r.Location)
	case *models.Task:
		return r.Title, joinNonEmpty(string(r.Status.OrDefault()), formatTime(r.DueDate))
	case *models.Note:
		return r.Title, ""
	case *models.Document:
		return r.Title, r.FilePath
	}
	return "", ""
}

func fields(rec models.Record) [][2]string {
	out := [][2]string{
		{"Kind", string(rec.Kind())},
		{"ID", strconv.FormatInt(rec.LocalID(), 10)},
		{"External ID", orDash(rec.GetExternalID())},
	}
	add := func(name, value string) { out = append(out, [2]string{name, orDash(value)}) }

	switch r := rec.(type) {
	case *models.Project:
		add("Title", r.Title)
		add("Description", r.Description)
		add("Status", string(r.Status.OrDefault()))
		add("Start date", formatTime(r.StartDate))
		add("End date", formatTime(r.EndDate))
	case *models.Event:
		add("Title", r.Title)
		add("Description", r.Description)
		add("Status", string(r.Status.OrDefault()))
		add("Starts at", formatTime(r.StartsAt))
		add("Ends at", formatTime(r.EndsAt))
		add("Location", r.Location)
		add("Coordinates", formatCoords(r.Latitude, r.Longitude))
		add("Project", formatRef(r.ProjectID))
	case *models.Task:
		add("Title", r.Title)
		add("Details", r.Details)
		add("Status", string(r.Status.OrDefault()))
		add("Due date", formatTime(r.DueDate))
		add("Project", formatRef(r.ProjectID))
		add("Event", formatRef(r.EventID))
	case *models.Note:
		add("Title", r.Title)
		add("Project", formatRef(r.ProjectID))
		add("Event", formatRef(r.EventID))
		add("Body", r.Body)
	case *models.Document:
		add("Title", r.Title)
		add("File", r.FilePath)
		add("Event", formatRef(r.EventID))
	}
	return out
}

func formatCoords(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return ""
	}
	return fmt.Sprintf("%.6f, %.6f", *lat, *lon)
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + ", " + b
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

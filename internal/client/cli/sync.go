package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/planner/internal/client/models"
)

var ErrSyncInProgress = errors.New("a sync is already in progress")

// Sync runs a full download pass in the foreground and prints the outcome
// of every stage.
func (a *App) Sync(ctx context.Context) error {
	rep, ok := a.planner.Sync(ctx)
	if !ok {
		return ErrSyncInProgress
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tFETCHED\tNEW\tUPDATED\tSKIPPED\tRESULT")
	for _, st := range rep.Stages {
		result := "ok"
		if st.Err != nil {
			result = st.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n", st.Kind, st.Fetched, st.Inserted, st.Updated, st.Skipped, result)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if rep.Err != nil {
		return fmt.Errorf("sync stopped: %w", rep.Err)
	}
	if failed := rep.Failed(); len(failed) > 0 {
		fmt.Fprintf(a.out, "%d stage(s) failed and will be retried on the next sync\n", len(failed))
	}
	return nil
}

// Push uploads every local record of the given kinds, in order.
func (a *App) Push(ctx context.Context, kinds []models.Kind) error {
	for _, kind := range kinds {
		res, err := a.planner.PushAll(ctx, kind)
		if err != nil {
			return fmt.Errorf("push %s: %w", kind, err)
		}
		fmt.Fprintf(a.out, "%s: %d/%d uploaded, %d failed\n", kind, res.Uploaded, res.Total, res.Failed)
	}
	return nil
}

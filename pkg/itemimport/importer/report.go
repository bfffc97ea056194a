package importer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
)

// WriteReport prints the run summary and the first maxErrors errors.
func WriteReport(w io.Writer, o *models.ImportOutcome, maxErrors int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Import complete (run %s)\n", o.RunID)
	fmt.Fprintf(tw, "  Succeeded:\t%d\n", o.Succeeded)
	fmt.Fprintf(tw, "  Duplicates:\t%d\n", o.Duplicates)
	fmt.Fprintf(tw, "  Failed:\t%d\n", o.Failed)
	fmt.Fprintf(tw, "  Models imported:\t%d model associations\n", o.ModelsImported)
	fmt.Fprintf(tw, "  Parts with models:\t%d out of %d parts\n", o.PartsWithModels, o.Succeeded)

	switch {
	case o.StockUnavailable:
		fmt.Fprintf(tw, "  Stock movements:\tskipped (endpoint unavailable)\n")
	case o.StockFailed > 0:
		fmt.Fprintf(tw, "  Stock movements:\t%d (%d failed)\n", o.StockMovements, o.StockFailed)
	default:
		fmt.Fprintf(tw, "  Stock movements:\t%d\n", o.StockMovements)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if len(o.Errors) == 0 {
		return nil
	}
	shown := o.Errors
	if maxErrors > 0 && len(shown) > maxErrors {
		shown = shown[:maxErrors]
	}
	if _, err := fmt.Fprintf(w, "\nErrors (first %d of %d):\n", len(shown), len(o.Errors)); err != nil {
		return err
	}
	for _, msg := range shown {
		if _, err := fmt.Fprintf(w, "  %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"signyard/internal/inventory/reconcile"

	"github.com/spf13/cobra"
)

func newCalendarCmd() *cobra.Command {
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the dates of a month where stock runs low.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, _ := cmd.Flags().GetString("month")
			month, err := time.Parse("2006-01", raw)
			if err != nil {
				return fmt.Errorf("--month must be YYYY-MM: %w", err)
			}

			a, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			statuses, err := a.container.ReportService.Calendar(cmd.Context(), month.Year(), month.Month())
			if err != nil {
				return err
			}

			writeCalendar(cmd.OutOrStdout(), month, statuses)
			return nil
		},
	}
	calendarCmd.Flags().String("month", time.Now().Format("2006-01"), "Month to inspect (YYYY-MM)")

	return calendarCmd
}

func writeCalendar(out io.Writer, month time.Time, statuses map[string]reconcile.DailyInventoryStatus) {
	if len(statuses) == 0 {
		fmt.Fprintf(out, "%s: stock healthy every day\n", month.Format("January 2006"))
		return
	}

	dates := make([]string, 0, len(statuses))
	for date := range statuses {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		status := statuses[date]
		fmt.Fprintf(out, "%s  %-6s", date, status.Status)
		for i, item := range status.CriticalItems {
			if i > 0 {
				fmt.Fprint(out, ",")
			}
			fmt.Fprintf(out, " %s %d/%d", item.Item, item.Remaining, item.Initial)
		}
		fmt.Fprintln(out)
	}
}

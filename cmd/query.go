package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"vesselwatch/internal/bootstrap"
	"vesselwatch/internal/errs"
	"vesselwatch/internal/usecase/analytics"
)

type queryFlags struct {
	startDate string
	endDate   string
	reportID  string
}

var queryOpts queryFlags

var queryCmd = &cobra.Command{
	Use:       "query <name>",
	Short:     "Run one catalog query and print its JSON result",
	Long:      "Runs a catalog query against the configured database.\n\nQueries: " + strings.Join(analytics.QueryNames, ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: analytics.QueryNames,
	RunE: withCatalog(func(cmd *cobra.Command, args []string, _ *bootstrap.App, svc *analytics.Service, _ http.Handler) error {
		result, err := runQuery(cmd.Context(), svc, args[0], queryOpts)
		if err != nil {
			if msg := errs.PublicMessage(err); msg != "" {
				return fmt.Errorf("%s", msg)
			}
			return err
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errs.Wrap(err, "encode query result")
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
			return errs.Wrap(err, "write query result")
		}
		return nil
	}),
}

func runQuery(ctx context.Context, svc *analytics.Service, name string, opts queryFlags) (any, error) {
	switch name {
	case analytics.QueryLocationActivities:
		return svc.ListLocationActivities(ctx)
	case analytics.QueryPingsByDateRange:
		return svc.TransponderPingsByDateRange(ctx, opts.startDate, opts.endDate)
	case analytics.QueryHarborReportsAll:
		return svc.HarborReportsAll(ctx)
	case analytics.QueryCargoDeliveries:
		return svc.CargoVesselDeliveries(ctx)
	case analytics.QueryIllegalFishing:
		return svc.PossibleIllegalFishing(ctx, opts.reportID)
	case analytics.QueryPingCountByType:
		return svc.PingCountByDateRangeAndType(ctx, opts.startDate, opts.endDate)
	case analytics.QueryHarborReportCount:
		return svc.HarborReportCountByDateRange(ctx, opts.startDate, opts.endDate)
	case analytics.QueryTrendByWeek:
		return svc.TrendByWeek(ctx)
	case analytics.QueryTrendByMonth:
		return svc.TrendByMonth(ctx)
	case analytics.QueryCombinedCargoFish:
		return svc.CombinedCargoFishJoin(ctx)
	default:
		return nil, fmt.Errorf("unknown query %q (want one of: %s)", name, strings.Join(analytics.QueryNames, ", "))
	}
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&queryOpts.startDate, "start-date", "", "Range start, YYYY-MM-DD")
	queryCmd.Flags().StringVar(&queryOpts.endDate, "end-date", "", "Range end, YYYY-MM-DD")
	queryCmd.Flags().StringVar(&queryOpts.reportID, "report-id", "", "Delivery report id")
}

package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"vesselwatch/internal/errs"
	"vesselwatch/internal/usecase/analytics"
)

// viewSchemaTargets maps each HTTP route to the view it returns.
var viewSchemaTargets = map[string]any{
	"/":                       analytics.LocationActivitiesView{},
	"/transponder-pings/":     []analytics.PingCountView{},
	"/transponder-pings/raw/": analytics.PingListView{},
	"/harbor-reports/":        []analytics.HarborReportCountView{},
	"/harbor-reports/all/":    analytics.HarborReportListView{},
	"/cargo-vessel/":          []analytics.CargoDeliveryView{},
	"/fishing/":               []analytics.FishingView{},
	"/trend-data/":            []analytics.WeeklyTrendView{},
	"/trend-line/":            []analytics.MonthlyTrendView{},
	"/combined/":              []analytics.CombinedView{},
}

var schemaRoute string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print JSON Schemas of the API responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		schemas, err := viewSchemas(schemaRoute)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(schemas, "", "  ")
		if err != nil {
			return errs.Wrap(err, "encode schemas")
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(data)); err != nil {
			return errs.Wrap(err, "write schemas")
		}
		return nil
	},
}

// viewSchemas reflects the response schema of route, or of every route when
// route is empty.
func viewSchemas(route string) (map[string]*jsonschema.Schema, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		Anonymous:      true,
	}

	if route != "" {
		target, ok := viewSchemaTargets[route]
		if !ok {
			return nil, fmt.Errorf("unknown route %q (want one of: %s)", route, strings.Join(schemaRoutes(), ", "))
		}
		return map[string]*jsonschema.Schema{route: reflector.Reflect(target)}, nil
	}

	schemas := make(map[string]*jsonschema.Schema, len(viewSchemaTargets))
	for name, target := range viewSchemaTargets {
		schemas[name] = reflector.Reflect(target)
	}
	return schemas, nil
}

func schemaRoutes() []string {
	routes := make([]string, 0, len(viewSchemaTargets))
	for route := range viewSchemaTargets {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVar(&schemaRoute, "route", "", "Only print the schema of this route")
}

package main

import (
	"os"

	"github.com/ladybug-tools/daylightgrid/internal/server"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "daylightgrid",
		Short: "Annual daylight metrics engine for sensor-grid simulation results",
	}

	rootCmd.AddCommand(metricsCmd())
	rootCmd.AddCommand(sdaCmd())
	rootCmd.AddCommand(aseCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(pointsCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func metricsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "metrics [project-path]",
		Short: "Compute annual DA, cDA and UDI for every sensor point",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runMetrics(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of a report")
	return cmd
}

func sdaCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sda [project-path]",
		Short: "Compute spatial daylight autonomy for the grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSDA(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of a report")
	return cmd
}

func aseCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ase [project-path]",
		Short: "Compute annual sunlight exposure from the direct sun channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runASE(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit raw JSON instead of a report")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a study config without computing metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func pointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "points [project-path]",
		Short: "Print the sensor grid in Radiance points format",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPoints(args[0])
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local HTTP server exposing the loaded study",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv := server.New(args[0], port)
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}

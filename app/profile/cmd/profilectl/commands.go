package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/customer_profile/app/profile/internal/data"
	"github.com/iWorld-y/customer_profile/app/profile/internal/usecase"
	"github.com/iWorld-y/customer_profile/app/profile/internal/view"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/logger"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/report"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/tui"
)

func reportCommand(settings *Settings) *cobra.Command {
	var (
		entity string
		zones  []string
		types  []string
		output string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a static HTML report for one entity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context(), settings)
			if err != nil {
				return err
			}
			sel, err := usecase.BuildSelection(ds, entity, zones, types)
			if err != nil {
				return err
			}
			d, err := view.Compose(ds, sel)
			if err != nil {
				return err
			}
			if err := report.WriteFile(output, d, time.Now()); err != nil {
				return err
			}
			logger.Log.Infof("report for %s written to %s", sel.Entity, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&entity, "entity", "e", "", "Entity name, defaults to the first entity")
	cmd.Flags().StringSliceVar(&zones, "zone", nil, "Zone filter, repeatable")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Income type filter, repeatable")
	cmd.Flags().StringVarP(&output, "output", "o", "index.html", "Output file")
	return cmd
}

func tuiCommand(settings *Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive dashboard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context(), settings)
			if err != nil {
				return err
			}
			return tui.Run(ds)
		},
	}
}

func seedCommand(settings *Settings) *cobra.Command {
	var driver, dsn string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Copy the current dataset into a database",
		Long:  `Load the dataset from --source and replace the contents of the target database with it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return fmt.Errorf("--dsn is required")
			}
			ds, err := loadDataset(cmd.Context(), settings)
			if err != nil {
				return err
			}
			store, err := data.OpenSQLStore(cmd.Context(), driver, dsn)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Seed(cmd.Context(), ds); err != nil {
				return err
			}
			logger.Log.Infof("seeded %d entities into %s", len(ds.Entities), driver)
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "sqlite", "Target driver: sqlite, postgres")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Target database DSN")
	return cmd
}

func dumpCommand(settings *Settings) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the current dataset as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context(), settings)
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return data.EncodeYAML(w, ds)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, - for stdout")
	return cmd
}

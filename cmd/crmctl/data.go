package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"smart-fuel-crm/internal/app"
	"smart-fuel-crm/internal/dataset"
	"smart-fuel-crm/internal/models"
)

var (
	importUser string

	exportUser   string
	exportFormat string
	exportOut    string

	followUpDate string
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.xls>",
	Short: "Upsert POS clients from a workbook, keyed on client code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		return withApp(cmd.Context(), func(a *app.App) error {
			res, err := dataset.ImportPOSClients(cmd.Context(), a.Repos.POSClients, f, args[0], importUser)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rows=%d valid=%d upserted=%d failed=%d\n",
				res.TotalRows, res.ValidRows, res.Upserted, res.Failed)
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:       "export <" + strings.Join(dataset.Names(), "|") + ">",
	Short:     "Write a dataset as CSV or XLSX",
	Args:      cobra.ExactArgs(1),
	ValidArgs: dataset.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app.App) error {
			out := cmd.OutOrStdout()
			if exportOut != "" {
				f, err := os.Create(exportOut)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			file, err := dataset.Export(cmd.Context(), a.Repos, exportUser, args[0], exportFormat, out)
			if err != nil {
				return err
			}
			if exportOut != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s)\n", exportOut, file.ContentType)
			}
			return nil
		})
	},
}

var sendFollowUpsCmd = &cobra.Command{
	Use:   "send-follow-ups",
	Short: "Email every follow-up scheduled for a date (default today)",
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now()
		if followUpDate != "" {
			d, err := time.Parse(models.DateLayout, followUpDate)
			if err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
			}
			day = d
		}
		return withApp(cmd.Context(), func(a *app.App) error {
			res, err := a.FollowUps.Run(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent=%d total=%d\n", res.Sent, res.Total)
			return nil
		})
	},
}

func userFlag(fs *pflag.FlagSet, p *string, required bool) {
	fs.StringVar(p, "user", "", "user id the records belong to")
	if required {
		_ = cobra.MarkFlagRequired(fs, "user")
	}
}

func init() {
	userFlag(importCmd.Flags(), &importUser, true)

	userFlag(exportCmd.Flags(), &exportUser, false)
	exportCmd.Flags().StringVar(&exportFormat, "format", dataset.FormatCSV, "csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")

	sendFollowUpsCmd.Flags().StringVar(&followUpDate, "date", "", "run for this date instead of today (YYYY-MM-DD)")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"smart-fuel-crm/internal/app"
	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/models"
)

const migrateBatch = 500

var migrateFrom string

// migrateDataCmd copies every CRM table from a SQLite file into the configured
// database, typically when moving a local install to PostgreSQL.
var migrateDataCmd = &cobra.Command{
	Use:   "migrate-data",
	Short: "Copy all records from a SQLite database into the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := gorm.Open(sqlite.Open(migrateFrom), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return fmt.Errorf("open source %s: %w", migrateFrom, err)
		}
		return withApp(cmd.Context(), func(a *app.App) error {
			if a.Config.DBDriver == "sqlite" && a.Config.DBPath == migrateFrom {
				return fmt.Errorf("source and destination are the same database")
			}
			// Parents before children so foreign keys resolve.
			steps := []struct {
				table string
				rows  any
			}{
				{"profiles", &[]models.Profile{}},
				{"clients", &[]models.Client{}},
				{"follow_ups", &[]models.FollowUp{}},
				{"client_notes", &[]models.ClientNote{}},
				{"pos_clients", &[]models.POSClient{}},
				{"pos_call_logs", &[]models.POSCallLog{}},
				{"pos_client_notes", &[]models.POSClientNote{}},
				{"message_templates", &[]models.MessageTemplate{}},
				{"template_attachments", &[]models.TemplateAttachment{}},
			}
			for _, s := range steps {
				n, err := copyTable(src, a.DB, s.rows)
				if err != nil {
					return fmt.Errorf("migrate %s: %w", s.table, err)
				}
				logger.Infow("migrated table", "table", s.table, "rows", n)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", s.table, n)
			}
			return nil
		})
	},
}

// copyTable reads all rows into dest (a pointer to a slice) and inserts them,
// skipping ids that already exist so a rerun is harmless.
func copyTable(src, dst *gorm.DB, dest any) (int64, error) {
	res := src.Find(dest)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}
	err := dst.Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(dest, migrateBatch).Error
	})
	return res.RowsAffected, err
}

func init() {
	migrateDataCmd.Flags().StringVar(&migrateFrom, "from", "", "path of the source SQLite database")
	_ = migrateDataCmd.MarkFlagRequired("from")
}

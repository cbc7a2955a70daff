/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stockroom/apiserver/config"
	"github.com/stockroom/apiserver/internal/db"
	"github.com/stockroom/apiserver/internal/services"
	"github.com/stockroom/apiserver/internal/storage"
	"github.com/stockroom/apiserver/internal/store"
)

// snapshotCmd represents the snapshot command.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export the inventory as a JSON snapshot to object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		ctx := cmd.Context()

		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer dbConn.Close()

		var objectStore storage.ObjectStorage
		switch cfg.Storage.Backend {
		case "minio":
			objectStore, err = storage.NewMinioClient(cfg.Minio)
		case "gcs":
			objectStore, err = storage.NewGCSClient(ctx, cfg.GCS)
		default:
			return fmt.Errorf("storage backend must be \"minio\" or \"gcs\", got %q", cfg.Storage.Backend)
		}
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}

		snapshots := services.NewSnapshotService(store.NewInventoryRepository(dbConn), objectStore)
		key, err := snapshots.Export(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("snapshot written to %s/%s\n", objectStore.Bucket(), key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
}

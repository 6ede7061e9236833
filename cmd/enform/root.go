package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/enform/internal/logging"
	"github.com/aretw0/enform/pkg/adapters/file"
	"github.com/aretw0/enform/pkg/adapters/memory"
	redisstore "github.com/aretw0/enform/pkg/adapters/redis"
	"github.com/aretw0/enform/pkg/ports"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "enform",
	Short: "enform is an insurance enrollment wizard engine",
	Long:  `enform walks an applicant through the fixed enrollment sequence, validating each step and persisting snapshots between visits.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("store", "file", "Snapshot backend: memory, file or redis")
	rootCmd.PersistentFlags().String("dir", "", "Snapshot directory for the file backend")
	rootCmd.PersistentFlags().String("redis", "localhost:6379", "Redis address for the redis backend")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
}

// newStore builds the snapshot backend selected by flags.
func newStore(cmd *cobra.Command) (ports.SnapshotStore, error) {
	kind, _ := cmd.Flags().GetString("store")
	switch kind {
	case "memory":
		return memory.NewStore(), nil
	case "file":
		dir, _ := cmd.Flags().GetString("dir")
		return file.New(dir), nil
	case "redis":
		addr, _ := cmd.Flags().GetString("redis")
		return redisstore.New(addr, "", 0), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", kind)
	}
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/neekrasov/idgen/internal/application"
	"github.com/neekrasov/idgen/internal/config"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitHash   = "unset"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "idgen",
		Short: "Snowflake ID generator node",
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("idgen version %s\nbuild time: %s\nhash: %s\n",
				version, buildTime, gitHash)
		},
	})

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the generator node",
		Run: func(cmd *cobra.Command, args []string) {
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := config.GetConfig(configPath)
			if err != nil {
				log.Fatalf("failed to get config: %s", err)
			}

			if cmd.Flags().Changed("datacenter-id") {
				cfg.Generator.DatacenterID, _ = cmd.Flags().GetInt64("datacenter-id")
			}

			if cmd.Flags().Changed("machine-id") {
				cfg.Generator.MachineID, _ = cmd.Flags().GetInt64("machine-id")
			}

			startServer(&cfg)
		},
	}

	runCmd.Flags().StringP("config", "c", "config.yml", "Path to config file")
	runCmd.Flags().Int64("datacenter-id", 0, "Datacenter id in [0, 31], overrides the config file")
	runCmd.Flags().Int64("machine-id", 0, "Machine id in [0, 31], overrides the config file")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func startServer(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	if err := application.New(cfg).Start(ctx); err != nil {
		log.Fatalf("application error: %s", err)
	}
}

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	funcbox "github.com/funcbox/funcbox"
	"github.com/funcbox/funcbox/internal/config"
	"github.com/funcbox/funcbox/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the function hosting server",
	Run:   runServe,
}

func init() {
	addServeFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("addr", "", "Listen address (overrides config)")
	cmd.Flags().String("data-dir", "", "Directory for function stores (overrides config)")
	cmd.Flags().Int("memory-limit-mb", 0, "Per-invocation engine heap limit in MB")
	cmd.Flags().Int("max-concurrent", 0, "Max concurrent invocations (0 = unbounded)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath, _ = cmd.Root().PersistentFlags().GetString("config")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Addr = v
	}
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetInt("memory-limit-mb"); v != 0 {
		cfg.MemoryLimitMB = v
	}
	if v, _ := cmd.Flags().GetInt("max-concurrent"); v != 0 {
		cfg.MaxConcurrent = v
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	svc := funcbox.New(funcbox.Options{
		DataDir:       cfg.DataDir,
		MemoryLimitMB: cfg.MemoryLimitMB,
		MaxConcurrent: cfg.MaxConcurrent,
		Logger:        logger,
	})
	defer svc.Close()

	srv := newServer(svc, logger)
	logger.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

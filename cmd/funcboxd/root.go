package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "funcboxd",
	Short: "Function hosting daemon",
	Long: `funcboxd hosts named JavaScript functions over HTTP.

Submit a function body with POST /fn/{name} and run it with
GET /fn/{name}. Each function gets its own durable key/value store,
reachable from scripts through get(key) and set(key, value). Every
invocation runs in a freshly constructed sandbox.`,
	Run: runServe, // default to serving
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to YAML config file")
	addServeFlags(rootCmd)
}

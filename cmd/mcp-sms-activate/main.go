// mcp-sms-activate exposes the SMS-Activate API as MCP tools.
//
// Usage:
//
//	mcp-sms-activate                    # serve MCP over stdio
//	mcp-sms-activate --http             # serve MCP over HTTP on MCP_HTTP_ADDR
//	mcp-sms-activate --http-addr :8080  # serve MCP over HTTP on :8080
//	mcp-sms-activate tools              # list the tool catalog
//	mcp-sms-activate version            # print build metadata
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/smsactivate/mcp-sms-activate/internal/app"
	"github.com/smsactivate/mcp-sms-activate/internal/config"
	"github.com/smsactivate/mcp-sms-activate/internal/logging"
	"github.com/smsactivate/mcp-sms-activate/internal/services"
	"github.com/smsactivate/mcp-sms-activate/internal/smsactivate"
	"github.com/smsactivate/mcp-sms-activate/internal/version"
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		httpAddr   string
		serveHTTP  bool
		logFile    string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           app.ServerName,
		Short:         "MCP server for the SMS-Activate API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logFile != "" {
				cfg.LogFile = logFile
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			logger, cleanup, err := logging.New(app.ServerName, logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
			if err != nil {
				return err
			}
			defer cleanup()

			a, err := app.New(cfg, logger)
			if err != nil {
				return err
			}

			if serveHTTP || httpAddr != "" {
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				// An empty httpAddr falls back to MCP_HTTP_ADDR / http_addr.
				return a.RunHTTP(ctx, httpAddr)
			}
			return a.RunStdio(context.Background(), os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&serveHTTP, "http", false, "serve MCP over HTTP instead of stdio")
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "HTTP listen address (implies --http; default from MCP_HTTP_ADDR)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(toolsCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

func toolsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the MCP tool catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := services.Bundled()
			if err != nil {
				return err
			}
			tb := app.NewToolbox(smsactivate.NewClient("", ""), names)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tb.Describe())
			}
			for _, d := range tb.Describe() {
				fmt.Fprintf(out, "%-24s %s\n", d.Name, d.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print full descriptors as JSON")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.ServerName, info)
		},
	}
}

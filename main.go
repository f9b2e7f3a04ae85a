package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/athapong/workdesk-mcp/prompts"
	"github.com/athapong/workdesk-mcp/resources"
	"github.com/athapong/workdesk-mcp/tools"
	"github.com/athapong/workdesk-mcp/util"
)

const serverName = "workdesk-mcp"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

type options struct {
	envFile     string
	sse         bool
	sseAddr     string
	sseBaseURL  string
	sseBasePath string
	metricsAddr string
	logLevel    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		util.Logger.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   serverName,
		Short: "MCP server for Jira, Readwise Reader and relative dates",
		Long: `Serves Model Context Protocol tools over stdio (default) or SSE.

Jira rich text (ADF) is returned as Markdown. Tool groups are selected with
ENABLE_TOOLS (jira, adf, date, readwise); an empty value enables all of them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.envFile, "env", ".env", "Path to environment file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error), LOG_LEVEL overrides the default")

	cmd.Flags().BoolVar(&opts.sse, "sse", false, "Serve over SSE instead of stdio (or set ENABLE_SSE=true)")
	cmd.Flags().StringVar(&opts.sseAddr, "sse-addr", ":8080", "Address for the SSE server to listen on")
	cmd.Flags().StringVar(&opts.sseBaseURL, "sse-base-url", "", "Public base URL advertised to SSE clients (default http://localhost<sse-addr>)")
	cmd.Flags().StringVar(&opts.sseBasePath, "sse-base-path", "/mcp", "Base path for SSE endpoints")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address in stdio mode")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + serverName,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", serverName, version)
		},
	}
}

func setup(cmd *cobra.Command, opts *options) error {
	if err := godotenv.Load(opts.envFile); err != nil {
		util.Logger.WithError(err).WithField("file", opts.envFile).Debug("env file not loaded")
	}

	level := opts.logLevel
	if env := os.Getenv("LOG_LEVEL"); env != "" && !cmd.Flags().Changed("log-level") {
		level = env
	}
	return util.SetLogLevel(level)
}

func newMCPServer() *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithLogging(),
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithResourceCapabilities(true, true),
	)

	tools.RegisterToolManagerTool(s)
	tools.RegisterEnabled(s)

	if tools.IsEnabled("jira") {
		resources.RegisterJiraResource(s)
		prompts.RegisterJiraPrompts(s)
	}
	return s
}

func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := newMCPServer()

	if opts.sse || os.Getenv("ENABLE_SSE") == "true" {
		baseURL := opts.sseBaseURL
		if baseURL == "" {
			baseURL = defaultBaseURL(opts.sseAddr)
		}
		return serveSSE(ctx, s, opts.sseAddr, baseURL, opts.sseBasePath)
	}

	if opts.metricsAddr != "" {
		go func() {
			if err := serveMetrics(ctx, opts.metricsAddr); err != nil {
				util.Logger.WithError(err).Error("metrics server failed")
			}
		}()
	}

	util.Logger.WithFields(logrus.Fields{
		"name":    serverName,
		"version": version,
	}).Info("serving MCP over stdio")
	errLog := util.Logger.WriterLevel(logrus.ErrorLevel)
	defer errLog.Close()
	return server.ServeStdio(s, server.WithErrorLogger(log.New(errLog, "", 0)))
}

func defaultBaseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

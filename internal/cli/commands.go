package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roboadvisor/investai/internal/config"
)

const version = "1.0.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	// Initialize configuration early
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "investai",
		Short: "InvestAI - RAG-based Korean investment advisory service",
		Long: `InvestAI answers investment questions about the Korean market by routing
each question to the right strategy: analyst-report retrieval, macro
indicators, live stock quotes or general advice. It also serves the
market dashboard consumed by the web frontend.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: run the HTTP server
			return runServe(cfg)
		},
	}

	// Add subcommands
	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newAskCmd(cfg))
	rootCmd.AddCommand(newIngestCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newServeCmd creates the serve command
func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the advisory HTTP server",
		Long: `Start the HTTP server exposing the question endpoint and the market
dashboard API. The dashboard is pre-warmed on a schedule so reads are
usually cache hits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.ServerAddr = addr
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides SERVER_ADDR)")

	return cmd
}

// newAskCmd creates the ask command
func newAskCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [QUESTION]",
		Short: "Ask one question from the command line",
		Long: `Run a single question through the full advisory pipeline without
starting the HTTP server.
Example: investai ask "삼성전자 주가 어때?"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cfg, args[0])
		},
	}
}

// newIngestCmd creates the ingest command
func newIngestCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [DIR]",
		Short: "Chunk and upload analyst reports to the vector store",
		Long: `Scan a directory for analyst-report files named firm_company_date.txt
(or .md), split them into overlapping chunks and upload the chunks to
the vector-store collection used by report retrieval.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.ReportsDir
			if len(args) > 0 {
				dir = args[0]
			}
			return runIngest(cfg, dir)
		},
	}

	return cmd
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("InvestAI v%s\n", version)
			fmt.Println("RAG-based investment advisory service for the Korean market")
		},
	}
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/maze-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "maze-mcp",
		Short: "MCP server that turns maze images into grids and solves them",
		Long: `maze-mcp converts maze images into traversability grids and finds the
shortest path between candidate start and end cells.

This server communicates via MCP protocol over stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).

Settings come from flags, MAZE_MCP_* environment variables
(e.g. MAZE_MCP_LOG_LEVEL=debug) or a YAML config file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return run(cfg)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./maze-mcp.yaml or ~/.config/maze-mcp/maze-mcp.yaml)")
	root.Flags().Int(keyThreshold, defaultThreshold, "binarization threshold 0-255; darker pixels are walls")
	root.Flags().String(keyThresholdPolicy, defaultThresholdPolicy, "threshold policy: fixed or otsu")
	root.Flags().Int(keyMaxDimension, defaultMaxDimension, "maximum working image dimension")
	root.Flags().Bool(keyAdaptive, false, "derive grid resolution from open region sizes")
	root.Flags().String(keyLuminance, defaultLuminance, "grayscale conversion: rec601 or perceptual")
	root.Flags().String(keyLogLevel, "info", "log level: info or debug")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "maze-mcp %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  Build time: %s\n", BuildTime)
			fmt.Fprintf(cmd.OutOrStdout(), "  Git commit: %s\n", GitCommit)
		},
	}
}

func run(cfg server.Config) error {
	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if cfg.Debug {
		log.Printf("Maze MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("defaults: threshold=%d policy=%s max_dimension=%d adaptive=%t luminance=%s",
			cfg.Build.Threshold, cfg.Build.ThresholdPolicy, cfg.Build.MaxDimension,
			cfg.Build.AdaptiveSizing, cfg.Build.Luminance)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

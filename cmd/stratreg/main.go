package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/coachpo/stratreg/internal/config"
	"github.com/coachpo/stratreg/internal/extractor"
	"github.com/coachpo/stratreg/internal/registry"
	"github.com/coachpo/stratreg/internal/scan"
	"github.com/coachpo/stratreg/internal/usage"
)

var (
	rootDir     string
	write       bool
	usageSource string
	usageOutput string
	runtimeName string
	configPath  string
	verbose     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stratreg",
		Short: "Content-addressed registry for JavaScript strategy modules",
		Long:  "stratreg scans a strategies directory, normalizes module layout, generates registry.json and reconciles it against usage exports.",
	}

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Rebuild registry.json from the strategies directory",
		RunE:  runSync,
	}

	syncCmd.Flags().StringVarP(&rootDir, "root", "r", "", "Strategies root directory")
	syncCmd.Flags().BoolVarP(&write, "write", "w", false, "Apply filesystem moves in addition to emitting registry.json")
	syncCmd.Flags().StringVarP(&usageSource, "usage", "u", "", "Usage export: local JSON file or http(s) URL")
	syncCmd.Flags().StringVar(&usageOutput, "usage-output", "", "Where to persist a usage payload fetched over HTTP")
	syncCmd.Flags().StringVar(&runtimeName, "runtime", "", "Metadata extraction runtime: goja or node")
	syncCmd.Flags().StringVarP(&configPath, "config", "c", ".stratreg.yml", "Config file path")
	syncCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(syncCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("root") {
		cfg.Root = rootDir
	}
	if cmd.Flags().Changed("usage") {
		cfg.Usage = usageSource
	}
	if cmd.Flags().Changed("usage-output") {
		cfg.UsageOutput = usageOutput
	}
	if cmd.Flags().Changed("runtime") {
		cfg.Runtime = runtimeName
	}
	cfg.Write = write

	root, err := ensureDir(cfg.Root)
	if err != nil {
		return err
	}

	ext, err := newExtractor(cfg.Runtime)
	if err != nil {
		return err
	}

	logger.Debug("discovering modules", "root", root, "runtime", cfg.Runtime)
	modules, err := scan.Discover(root, ext)
	if err != nil {
		return err
	}
	if len(modules) == 0 {
		return fmt.Errorf("no JavaScript strategies found under %s", root)
	}
	logger.Debug("modules discovered", "count", len(modules))

	reg, err := registry.Build(modules, root, cfg.Write, logger)
	if err != nil {
		return err
	}
	if err := registry.Write(root, reg); err != nil {
		return err
	}

	fmt.Printf("registry.json generated for %d strategies under %s\n", len(reg), root)
	if !cfg.Write {
		fmt.Println("filesystem left untouched (pass --write to reorganize)")
	}

	if strings.TrimSpace(cfg.Usage) == "" {
		return nil
	}

	logger.Debug("fetching usage export", "source", cfg.Usage)
	records, err := usage.Fetch(cfg.Usage, cfg.UsageOutput)
	if err != nil {
		return err
	}
	reportUsage(usage.Reconcile(records, reg))
	return nil
}

func reportUsage(unused []usage.Revision) {
	fmt.Println()
	if len(unused) == 0 {
		fmt.Println("usage report: no unused revisions detected (all tracked hashes have usage).")
		return
	}
	fmt.Println("usage report: revisions with zero running instances:")
	for _, rev := range unused {
		fmt.Printf("  - %s\n", rev)
	}
}

func newExtractor(runtime string) (extractor.Extractor, error) {
	switch runtime {
	case "", config.DefaultRuntime:
		return extractor.NewGojaExtractor(), nil
	case "node":
		return extractor.NewNodeExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown runtime %q (expected goja or node)", runtime)
	}
}

func ensureDir(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("directory required")
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve directory %s: %w", trimmed, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("ensure directory %s: %w", abs, err)
	}
	return abs, nil
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"veridoc/internal/config"
	"veridoc/internal/core"
	"veridoc/internal/document"
	"veridoc/internal/formatters"
	"veridoc/internal/help"
	"veridoc/internal/observability"
	"veridoc/internal/review"
	"veridoc/internal/validators/clabe"
	"veridoc/internal/validators/curp"
	"veridoc/internal/validators/nss"
	"veridoc/internal/validators/plate"
	"veridoc/internal/validators/rfc"
	"veridoc/internal/validators/vin"
	"veridoc/internal/version"
	"veridoc/internal/web"

	// Import formatters to register them
	_ "veridoc/internal/formatters/csv"
	_ "veridoc/internal/formatters/json"
	_ "veridoc/internal/formatters/text"
	_ "veridoc/internal/formatters/yaml"
)

// Exit codes: 0 clean, 1 usage or processing error, 2 document flagged as
// suspect by fraud analysis.
const (
	exitOK      = 0
	exitError   = 1
	exitSuspect = 2
)

// configFlags holds the raw command-line values that participate in
// config/profile/flag resolution
type configFlags struct {
	outputFormat     string
	confidenceLevels string
	checksToRun      string
	verbose          bool
	debug            bool
	noColor          bool
	fraudAnalysis    bool
	waiversFile      string
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format           string
	confidenceLevels string
	checksToRun      string
	verbose          bool
	debug            bool
	noColor          bool
	fraudAnalysis    bool
	waiversFile      string
}

// resolveConfiguration resolves final configuration values from config file, profile, and command line flags
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{}

	// Format
	final.format = "text" // default fallback
	if cfg != nil && cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isFlagSet("format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}

	// Confidence levels
	final.confidenceLevels = "all" // default fallback
	if cfg != nil && cfg.Defaults.ConfidenceLevels != "" {
		final.confidenceLevels = cfg.Defaults.ConfidenceLevels
	}
	if activeProfile != nil && activeProfile.ConfidenceLevels != "" {
		final.confidenceLevels = activeProfile.ConfidenceLevels
	}
	if isFlagSet("confidence") && flags.confidenceLevels != "" {
		final.confidenceLevels = flags.confidenceLevels
	}

	// Checks to run
	final.checksToRun = "all" // default fallback
	if cfg != nil && cfg.Defaults.Checks != "" {
		final.checksToRun = cfg.Defaults.Checks
	}
	if activeProfile != nil && activeProfile.Checks != "" {
		final.checksToRun = activeProfile.Checks
	}
	if isFlagSet("checks") && flags.checksToRun != "" {
		final.checksToRun = flags.checksToRun
	}

	// Verbose
	if cfg != nil {
		final.verbose = cfg.Defaults.Verbose
	}
	if activeProfile != nil {
		final.verbose = activeProfile.Verbose
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}

	// Debug
	if cfg != nil {
		final.debug = cfg.Defaults.Debug
	}
	if activeProfile != nil {
		final.debug = activeProfile.Debug
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}

	// No color
	if cfg != nil {
		final.noColor = cfg.Defaults.NoColor
	}
	if activeProfile != nil {
		final.noColor = activeProfile.NoColor
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}

	// Fraud analysis
	final.fraudAnalysis = true // default fallback
	if cfg != nil {
		final.fraudAnalysis = cfg.Defaults.FraudAnalysis
	}
	if activeProfile != nil {
		final.fraudAnalysis = activeProfile.FraudAnalysis
	}
	if isFlagSet("fraud") {
		final.fraudAnalysis = flags.fraudAnalysis
	}

	// Waivers file
	if cfg != nil {
		final.waiversFile = cfg.Defaults.WaiversFile
	}
	if activeProfile != nil && activeProfile.WaiversFile != "" {
		final.waiversFile = activeProfile.WaiversFile
	}
	if isFlagSet("waivers-file") {
		final.waiversFile = flags.waiversFile
	}

	return final
}

// isFlagSet reports whether a flag was explicitly provided on the command line
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// inputDocument is the accepted shape of an extracted fields file. A bare
// field map is also accepted.
type inputDocument struct {
	Fields       map[string]string `json:"fields" yaml:"fields"`
	DocumentType string            `json:"documentType" yaml:"documentType"`
	ImageQuality string            `json:"imageQuality" yaml:"imageQuality"`
}

// readInput loads the extracted field map from a file or stdin.
func readInput(path string) (*inputDocument, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	unmarshal := yaml.Unmarshal
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		unmarshal = json.Unmarshal
	}

	var doc inputDocument
	if err := unmarshal(data, &doc); err == nil && len(doc.Fields) > 0 {
		return &doc, nil
	}

	// Fall back to a bare field map.
	var fields map[string]string
	if err := unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("error parsing input: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("input contains no fields")
	}
	return &inputDocument{Fields: fields}, nil
}

// buildHelpSystem registers every validator's help provider.
func buildHelpSystem(noColor bool) *help.System {
	h := help.NewSystem(noColor)
	h.RegisterProvider(curp.NewValidator())
	h.RegisterProvider(rfc.NewValidator())
	h.RegisterProvider(clabe.NewValidator())
	h.RegisterProvider(vin.NewValidator())
	h.RegisterProvider(nss.NewValidator())
	h.RegisterProvider(plate.NewValidator())
	return h
}

func main() {
	inputFile := flag.String("input", "", "Path to extracted fields file, JSON or YAML (use - for stdin)")
	docType := flag.String("doc-type", "", "Document type (INE, Licencia de Conducir, Tarjeta de Circulacion, ...)")
	imageQuality := flag.String("image-quality", "", "Reported capture quality: buena, regular, mala, ilegible")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	outputFormat := flag.String("format", "", "Output format: text, json, csv, yaml (default: text)")
	confidenceLevels := flag.String("confidence", "", "Confidence levels to display: high, medium, low, or combinations like 'high,medium'")
	checksToRun := flag.String("checks", "", "Specific checks to run: CURP, RFC, CLABE, VIN, NSS, PLACAS, or combinations like 'CURP,RFC'")
	fraudAnalysis := flag.Bool("fraud", true, "Run cross-field fraud analysis (use --fraud=false to disable)")
	waiversFile := flag.String("waivers-file", "", "Path to review waiver file (YAML)")
	verbose := flag.Bool("verbose", false, "Display per-field correction detail")
	debug := flag.Bool("debug", false, "Enable debug logging of the processing flow")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	redact := flag.Bool("redact", false, "Mask field values in output")
	showHelp := flag.Bool("help", false, "Show help information")
	showVersion := flag.Bool("version", false, "Show version information")
	webMode := flag.Bool("web", false, "Start web server mode instead of CLI processing")
	webPort := flag.String("port", "8080", "Port for web server (default: 8080)")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(exitOK)
	}

	// Colors are pointless when stdout is not a terminal or when writing
	// to a file.
	if !term.IsTerminal(int(os.Stdout.Fd())) || *outputFile != "" {
		color.NoColor = true
	}

	// Load configuration and resolve the active profile.
	cfg := config.LoadConfigOrDefault(*configFile)

	if *listProfiles {
		fmt.Println("Available profiles:")
		for _, name := range cfg.ListProfiles() {
			profile := cfg.GetProfile(name)
			fmt.Printf("  %-10s %s\n", name, profile.Description)
		}
		os.Exit(exitOK)
	}

	var activeProfile *config.Profile
	if *profileName != "" {
		activeProfile = cfg.GetProfile(*profileName)
		if activeProfile == nil {
			fmt.Fprintf(os.Stderr, "Error: profile %q not found in config\n", *profileName)
			os.Exit(exitError)
		}
	}

	final := resolveConfiguration(cfg, activeProfile, &configFlags{
		outputFormat:     *outputFormat,
		confidenceLevels: *confidenceLevels,
		checksToRun:      *checksToRun,
		verbose:          *verbose,
		debug:            *debug,
		noColor:          *noColor,
		fraudAnalysis:    *fraudAnalysis,
		waiversFile:      *waiversFile,
	})

	if *showHelp || (flag.NArg() > 0 && flag.Arg(0) == "help") {
		helpSystem := buildHelpSystem(final.noColor)
		switch {
		case flag.NArg() > 1 && strings.EqualFold(flag.Arg(1), "checks"):
			helpSystem.ShowChecksHelp()
		case flag.NArg() > 1:
			if !helpSystem.ShowCheckHelp(flag.Arg(1)) {
				os.Exit(exitError)
			}
		default:
			helpSystem.ShowGeneralHelp()
		}
		os.Exit(exitOK)
	}

	if *webMode {
		server := web.NewWebServer(*webPort, cfg)
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitError)
		}
		os.Exit(exitOK)
	}

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: --input is required (use --help for usage)")
		os.Exit(exitError)
	}

	doc, err := readInput(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	if *docType != "" {
		doc.DocumentType = *docType
	}
	if *imageQuality != "" {
		doc.ImageQuality = *imageQuality
	}

	// Assemble the pipeline.
	checks := strings.Split(final.checksToRun, ",")
	validatorSet := core.ApplyConfidenceFloors(
		core.BuildValidatorSet(core.ParseChecksToRun(checks)),
		cfg.ValidatorFloors(activeProfile))
	processor := core.NewProcessor(validatorSet)
	if final.debug {
		processor.SetObserver(observability.NewStandardObserver(observability.ObservabilityDebug, os.Stderr))
	}

	var waivers *review.Manager
	if final.waiversFile != "" {
		waivers = review.NewManager(final.waiversFile)
	}
	analyzer := core.NewAnalyzer(processor, waivers)

	result := analyzer.Analyze(doc.Fields, document.Metadata{
		DocumentType: doc.DocumentType,
		ImageQuality: doc.ImageQuality,
	})
	if !final.fraudAnalysis {
		result.FraudAnalysis = nil
	}

	output, err := formatters.Export(final.format, result, formatters.FormatterOptions{
		ConfidenceLevel: core.ParseConfidenceLevels(final.confidenceLevels),
		Verbose:         final.verbose,
		NoColor:         final.noColor,
		ShowValues:      !*redact,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(exitError)
		}
	} else {
		fmt.Println(output)
	}

	if result.FraudAnalysis != nil && !result.FraudAnalysis.IsAuthentic {
		os.Exit(exitSuspect)
	}
	os.Exit(exitOK)
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// CheckInfo contains standardized information about a field check
type CheckInfo struct {
	Name                string   // Name of the check (e.g., "CURP")
	ShortDescription    string   // Short description for the checks list
	DetailedDescription string   // Detailed description of what the check does
	Format              []string // Expected format of the field
	Corrections         []string // OCR corrections the check applies
	ChecksumInfo        string   // How the check digit is verified, if any
	Examples            []string // Usage examples
}

// Provider defines the interface for help content providers
type Provider interface {
	GetCheckInfo() CheckInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	noColor   bool
	colors    map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	// Disable colors if requested
	if noColor {
		color.NoColor = true
	}

	return &System{
		providers: make(map[string]Provider),
		noColor:   noColor,
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"negative": color.New(color.FgRed),
			"example":  color.New(color.FgMagenta),
		},
	}
}

// RegisterProvider adds a help provider to the system
func (h *System) RegisterProvider(provider Provider) {
	info := provider.GetCheckInfo()
	h.providers[strings.ToLower(info.Name)] = provider
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("VeriDoc - Document Field Validation and Fraud Analysis")
	fmt.Println("======================================================")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  veridoc --input <path-to-fields-file> [options]")
	fmt.Println("  veridoc --web [--port <port>]  # Web server mode")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --input\t<path>\tPath to extracted fields file, JSON or YAML (use - for stdin)")
	fmt.Fprintln(w, "  --doc-type\t<type>\tDocument type (INE, Licencia de Conducir, Tarjeta de Circulacion, ...)")
	fmt.Fprintln(w, "  --image-quality\t<q>\tReported capture quality: buena, regular, mala, ilegible")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --list-profiles\t\tList available profiles in config file")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, json, csv, yaml (default: text)")
	fmt.Fprintln(w, "  --checks\t<checks>\tSpecific checks to run: CURP,RFC,CLABE,VIN,NSS,PLACAS,all (default: all)")
	fmt.Fprintln(w, "  --confidence\t<levels>\tConfidence levels to display: high,medium,low,all (default: all)")
	fmt.Fprintln(w, "  --fraud\t\tRun cross-field fraud analysis (default: true, use --fraud=false to disable)")
	fmt.Fprintln(w, "  --waivers-file\t<path>\tPath to review waiver file (YAML)")
	fmt.Fprintln(w, "  --verbose\t\tDisplay per-field correction detail")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging of the processing flow")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (if not specified, output to stdout)")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --redact\t\tMask field values in output")
	fmt.Fprintln(w, "  --web\t\tStart web server mode instead of CLI processing")
	fmt.Fprintln(w, "  --port\t<port>\tPort for web server (default: 8080, only used with --web)")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help checks\t\tList all available checks")
	fmt.Fprintln(w, "  --help <check>\t\tShow detailed help for a specific check")
	w.Flush()

	fmt.Println()
	h.colors["header"].Println("EXAMPLES:")
	fmt.Println("  Basic Usage:")
	h.colors["example"].Println("    veridoc --input fields.json")
	h.colors["example"].Println("    veridoc --input fields.json --doc-type \"Licencia de Conducir\" --format json")
	fmt.Println("  Configuration and Profiles:")
	h.colors["example"].Println("    veridoc --input fields.json --config veridoc.yaml --profile strict")
	h.colors["example"].Println("    veridoc --list-profiles --config veridoc.yaml")
	fmt.Println("  Web Server:")
	h.colors["example"].Println("    veridoc --web --port 9000")

	fmt.Println()
	h.colors["header"].Println("CONFIGURATION:")
	fmt.Println("  Default config: ~/.config/veridoc/config.yaml")
	fmt.Println("  Project config: veridoc.yaml or .veridoc.yaml (in current directory)")
}

// ShowChecksHelp displays information about all available checks
func (h *System) ShowChecksHelp() {
	h.colors["title"].Println("Available Checks in VeriDoc")
	fmt.Println("===========================")
	fmt.Println()
	fmt.Println("The following field checks are available:")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  CHECK\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  -----\t-----------")

	var checkNames []string
	for _, provider := range h.providers {
		checkNames = append(checkNames, provider.GetCheckInfo().Name)
	}
	sort.Strings(checkNames)

	for _, checkName := range checkNames {
		info := h.providers[strings.ToLower(checkName)].GetCheckInfo()
		fmt.Fprintf(w, "  ")
		h.colors["emphasis"].Fprintf(w, "%s", info.Name)
		fmt.Fprintf(w, "\t%s\n", info.ShortDescription)
	}
	w.Flush()

	fmt.Println()
	fmt.Println("For detailed information about a specific check, use:")
	h.colors["example"].Println("  veridoc --help <check>")
}

// ShowCheckHelp displays detailed help for a specific check
func (h *System) ShowCheckHelp(checkName string) bool {
	provider, exists := h.providers[strings.ToLower(checkName)]
	if !exists {
		h.colors["negative"].Printf("Error: Check '%s' not found.\n", checkName)
		fmt.Println("Use 'veridoc --help checks' to see a list of available checks.")
		return false
	}

	info := provider.GetCheckInfo()

	h.colors["title"].Printf("%s Check\n", info.Name)
	fmt.Println(strings.Repeat("=", len(info.Name)+6))
	fmt.Println()
	fmt.Println(info.DetailedDescription)
	fmt.Println()

	if len(info.Format) > 0 {
		h.colors["header"].Println("FORMAT:")
		for _, line := range info.Format {
			fmt.Print("  - ")
			h.colors["item"].Println(line)
		}
		fmt.Println()
	}

	if len(info.Corrections) > 0 {
		h.colors["header"].Println("OCR CORRECTIONS APPLIED:")
		for _, line := range info.Corrections {
			fmt.Print("  - ")
			h.colors["item"].Println(line)
		}
		fmt.Println()
	}

	if info.ChecksumInfo != "" {
		h.colors["header"].Println("CHECKSUM:")
		fmt.Println("  " + info.ChecksumInfo)
		fmt.Println()
	}

	if len(info.Examples) > 0 {
		h.colors["header"].Println("EXAMPLES:")
		for _, example := range info.Examples {
			fmt.Print("  ")
			h.colors["example"].Println(example)
		}
	}

	return true
}

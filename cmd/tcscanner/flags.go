package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/aleister1102/tcscanner/internal/orchestrator"
)

// ParseFlags reads the command line into scan overrides.
// A positional path takes precedence over -file.
func ParseFlags(args []string, output io.Writer) (orchestrator.Overrides, error) {
	fs := flag.NewFlagSet("tcscanner", flag.ContinueOnError)
	fs.SetOutput(output)

	inputFile := fs.String("file", "", "Path to the test case CSV file. Overrides input_config.input_file.")
	inputFileAlias := fs.String("f", "", "Alias for -file")

	configFile := fs.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := fs.String("c", "", "Alias for -config")

	format := fs.String("format", "", "Report format: text or json (overrides config file if set)")
	formatAlias := fs.String("o", "", "Alias for -format")

	outputFile := fs.String("output", "", "Write the report to this file instead of stdout")
	rulesList := fs.String("rules", "", "Comma separated rule ids to run, in order")
	required := fs.String("required", "", "Comma separated fields checked by required_field")
	strictSteps := fs.String("strict-steps", "", "true or false: report step numbering breaks as errors or warnings")
	warningsFail := fs.Bool("warnings-fail", false, "Treat a report with warnings as unclean")
	finalCheck := fs.Bool("final-check", false, "Report every warning as an error")
	parquetFile := fs.String("parquet", "", "Export findings to this parquet file")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (overrides config file if set)")

	var pattern patternFlag
	fs.Var(&pattern, "pattern", "Regular expression every expected result must match")

	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: tcscanner [flags] [path]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return orchestrator.Overrides{}, err
	}

	overrides := orchestrator.Overrides{
		InputFile:    firstNonEmpty(*inputFile, *inputFileAlias),
		ConfigFile:   firstNonEmpty(*configFile, *configFileAlias),
		Format:       firstNonEmpty(*format, *formatAlias),
		OutputFile:   *outputFile,
		Rules:        *rulesList,
		Required:     *required,
		StrictSteps:  *strictSteps,
		WarningsFail: *warningsFail,
		FinalCheck:   *finalCheck,
		ParquetFile:  *parquetFile,
		LogLevel:     *logLevel,
	}
	if pattern.set {
		overrides.Pattern = &pattern.value
	}

	switch fs.NArg() {
	case 0:
	case 1:
		overrides.InputFile = fs.Arg(0)
	default:
		return orchestrator.Overrides{}, fmt.Errorf("expected at most one input path, got %d", fs.NArg())
	}

	return overrides, nil
}

// patternFlag records whether -pattern was given, so an empty value can clear the config
type patternFlag struct {
	value string
	set   bool
}

func (p *patternFlag) String() string { return p.value }

func (p *patternFlag) Set(v string) error {
	p.value = v
	p.set = true
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

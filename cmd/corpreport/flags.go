package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// analyzeFlags holds all flags for the corpreport CLI.
type analyzeFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool

	pdfPath  string
	fromText string

	output    string
	outputTXT string
	exportPDF bool

	numArticles      int
	noFetchContent   bool
	summarySentences int

	workers int
	timeout string
}

// parseFlags parses CLI flags and returns the remaining positional
// arguments, which are company names.
func parseFlags(args []string) (*analyzeFlags, []string, error) {
	fs := flag.NewFlagSet("corpreport", flag.ContinueOnError)
	f := &analyzeFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show pipeline stages and timing")
	fs.BoolVar(&f.version, "version", false, "show version and exit")

	fs.StringVar(&f.pdfPath, "pdf", "", "corporate PDF document to analyze")
	fs.StringVar(&f.fromText, "from-text", "", "render a report from an existing analysis text file")

	fs.StringVarP(&f.output, "output", "o", "", "HTML report path or output directory")
	fs.StringVar(&f.outputTXT, "output-txt", "", "raw analysis text path (\"\" = next to HTML)")
	fs.BoolVar(&f.exportPDF, "export-pdf", false, "also export the report as PDF via headless Chrome")

	fs.IntVarP(&f.numArticles, "num-articles", "n", 0, "max news articles per source (0 = config default)")
	fs.BoolVar(&f.noFetchContent, "no-fetch-content", false, "skip fetching full article bodies")
	fs.IntVar(&f.summarySentences, "summary-sentences", 0, "extractive summary size (0 = config default)")

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel analyses for multiple companies (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-company timeout (e.g. 2m, 300s)")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

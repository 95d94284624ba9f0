package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: corpreport [flags] <company> [company...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate an HTML analysis report for each company: recent news is")
	fmt.Fprintln(w, "retrieved and summarized, combined with an optional PDF document,")
	fmt.Fprintln(w, "and sent to GigaChat for analysis.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Credentials are read from GIGACHAT_CLIENT_ID and GIGACHAT_CLIENT_SECRET")
	fmt.Fprintln(w, "(a .env file in the working directory is loaded automatically).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "      --pdf <path>            Corporate PDF document to analyze")
	fmt.Fprintln(w, "      --from-text <path>      Render a report from saved analysis text")
	fmt.Fprintln(w, "                              (no network access, no credentials)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>         HTML report path or output directory")
	fmt.Fprintln(w, "      --output-txt <path>     Raw analysis text path")
	fmt.Fprintln(w, "      --export-pdf            Also export the report as PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "News:")
	fmt.Fprintln(w, "  -n, --num-articles <n>      Max articles per source (0 = config default)")
	fmt.Fprintln(w, "      --no-fetch-content      Skip fetching full article bodies")
	fmt.Fprintln(w, "      --summary-sentences <n> Extractive summary size")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Execution:")
	fmt.Fprintln(w, "  -c, --config <path>         Config file path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel analyses (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Per-company timeout (e.g. 2m, 300s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show pipeline stages and timing")
	fmt.Fprintln(w, "      --version               Show version and exit")
}

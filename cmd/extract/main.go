// Command extract reads a financial news article and prints the company
// name, stock symbol, revenue, net income and EPS found in it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/sumitdas1984/financial-data-extraction-tool/internal/config"
	"github.com/sumitdas1984/financial-data-extraction-tool/internal/logging"
	"github.com/sumitdas1984/financial-data-extraction-tool/internal/services/extraction"
	"github.com/sumitdas1984/financial-data-extraction-tool/internal/services/llm"
)

const demoArticle = `
    Tesla's Earning news in text format: Tesla's earning this quarter blew all the estimates. They reported 4.5 billion $ profit against a revenue of 30 billion $. Their earnings per share was 2.3 $
    `

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := run(context.Background(), cfg, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("Extraction failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	providerName := fs.String("provider", cfg.LLM.DefaultProvider, "LLM provider: groq or openai")
	file := fs.String("file", "", "read the article from this file instead of stdin")
	demo := fs.Bool("demo", false, "use a built-in sample article")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	provider, err := llm.ParseProvider(*providerName)
	if err != nil {
		return err
	}

	article, err := readArticle(*demo, *file, stdin)
	if err != nil {
		return err
	}

	service := extraction.NewService(llm.NewCompleters(cfg.LLM, nil))
	result, err := service.Extract(ctx, extraction.Request{ArticleText: article, Provider: provider})
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return writeTable(stdout, result.Table)
}

func readArticle(demo bool, file string, stdin io.Reader) (string, error) {
	switch {
	case demo:
		return demoArticle, nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read article: %w", err)
		}
		return string(b), nil
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read article from stdin: %w", err)
		}
		return string(b), nil
	}
}

func writeTable(w io.Writer, table extraction.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Measure\tValue")
	for _, row := range table {
		fmt.Fprintf(tw, "%s\t%s\n", row.Measure, row.Value)
	}
	return tw.Flush()
}

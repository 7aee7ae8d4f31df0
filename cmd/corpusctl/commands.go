package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/formbricks/explorer/internal/config"
	"github.com/formbricks/explorer/internal/corpus"
	"github.com/formbricks/explorer/internal/datatypes"
	"github.com/formbricks/explorer/internal/embeddings"
	"github.com/formbricks/explorer/internal/models"
	"github.com/formbricks/explorer/internal/observability"
	"github.com/formbricks/explorer/internal/service"
)

// cli holds the flags shared by every subcommand.
type cli struct {
	out, errOut     io.Writer
	transcriptsFile string
	embeddingsFile  string
	jsonOutput      bool
	logLevel        string
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "corpusctl",
		Short: "Inspect the interview transcript corpus",
		Long: `corpusctl loads the transcript and embedding datasets the API serves
and answers questions about them without starting the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.transcriptsFile, "transcripts", envOr("TRANSCRIPTS_FILE", "data/transcripts.json"),
		"Path to the transcript dataset")
	flags.StringVar(&c.embeddingsFile, "embeddings", envOr("EMBEDDINGS_FILE", "data/embeddings.json"),
		"Path to the embedding dataset")
	flags.BoolVarP(&c.jsonOutput, "json", "j", false, "Output as JSON")
	flags.StringVar(&c.logLevel, "log-level", "warn", "Log level for loader diagnostics")

	root.AddCommand(c.validateCmd(), c.searchCmd(), c.summaryCmd(), c.showCmd())

	return root
}

func (c *cli) load() (*corpus.Store, error) {
	logger := observability.NewLogger(c.errOut, c.logLevel)

	store, err := corpus.Load(c.transcriptsFile, c.embeddingsFile, corpus.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	return store, nil
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	return nil
}

// validateResult is the JSON form of the validate command.
type validateResult struct {
	OK          bool              `json:"ok"`
	Transcripts int               `json:"transcripts"`
	Embedded    int               `json:"embedded"`
	Dimension   int               `json:"dimension"`
	Model       string            `json:"model"`
	Report      corpus.LoadReport `json:"report"`
}

func (c *cli) validateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load both datasets and report join and dimension drift",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := c.load()
			if err != nil {
				return err
			}

			report := store.Report()
			result := validateResult{
				OK:          !strict || !report.HasDrift(),
				Transcripts: store.Len(),
				Embedded:    store.EmbeddedCount(),
				Dimension:   store.Dimension(),
				Model:       store.Model(),
				Report:      report,
			}

			if c.jsonOutput {
				if err := c.printJSON(result); err != nil {
					return err
				}
			} else {
				tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
				fmt.Fprintf(tw, "transcripts\t%d\n", result.Transcripts)
				fmt.Fprintf(tw, "embedded\t%d\n", result.Embedded)
				fmt.Fprintf(tw, "dimension\t%d\n", result.Dimension)
				fmt.Fprintf(tw, "model\t%s\n", result.Model)
				fmt.Fprintf(tw, "missing vectors\t%d\n", len(report.MissingVectors))
				fmt.Fprintf(tw, "unmatched vectors\t%d\n", len(report.UnmatchedVectors))
				fmt.Fprintf(tw, "dimension mismatches\t%d\n", len(report.DimensionMismatches))

				if err := tw.Flush(); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}

			if !result.OK {
				return errDrift
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any transcript or vector was skipped")

	return cmd
}

func (c *cli) searchCmd() *cobra.Command {
	var (
		limit, offset              int
		split, sentiment, industry string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Run a semantic search with the configured embedding provider",
		Long: `search embeds the query with EMBEDDING_PROVIDER (use EMBEDDING_PROVIDER=mock to run
offline) and prints the ranked transcripts.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			store, err := c.load()
			if err != nil {
				return err
			}

			client, err := embeddings.NewClient(cmd.Context(), cfg, store.Dimension())
			if err != nil {
				return err
			}

			filters := models.SearchFilters{}
			if split != "" {
				s, err := datatypes.ParseSplit(split)
				if err != nil {
					return err
				}

				filters.Split = &s
			}

			if sentiment != "" {
				filters.Sentiment = &sentiment
			}

			if industry != "" {
				filters.Industry = &industry
			}

			svc := service.NewSearchService(service.SearchServiceParams{
				Corpus:          store,
				EmbeddingClient: client,
				Provider:        cfg.EmbeddingProvider,
				Model:           cfg.EmbeddingModel,
				Timeout:         cfg.EmbeddingTimeout,
				Logger:          slog.New(slog.DiscardHandler),
			})

			page, err := svc.Search(cmd.Context(), strings.Join(args, " "), filters, offset, limit)
			if err != nil {
				return err
			}

			if c.jsonOutput {
				return c.printJSON(models.SearchResponse{
					Results: page.Results, Total: page.Total, Offset: offset, Limit: limit,
				})
			}

			tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SCORE\tID\tSPLIT\tSNIPPET")

			for _, r := range page.Results {
				fmt.Fprintf(tw, "%.4f\t%s\t%s\t%s\n", r.Score, r.TranscriptID, r.Split, r.Snippet)
			}

			fmt.Fprintf(tw, "\n%d of %d matches\n", len(page.Results), page.Total)

			if err := tw.Flush(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&limit, "limit", "n", 10, "Maximum number of results")
	f.IntVar(&offset, "offset", 0, "Number of results to skip")
	f.StringVar(&split, "split", "", "Restrict to a split ("+strings.Join(datatypes.SplitStrings(), ", ")+")")
	f.StringVar(&sentiment, "sentiment", "", "Restrict to a sentiment (case-insensitive)")
	f.StringVar(&industry, "industry", "", "Restrict to an industry (case-insensitive)")

	return cmd
}

func (c *cli) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print aggregate counts over the corpus",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, err := c.load()
			if err != nil {
				return err
			}

			summary := service.NewSummaryService(store).Summary()
			if c.jsonOutput {
				return c.printJSON(summary)
			}

			tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "transcripts\t%d\n", summary.TotalTranscripts)
			fmt.Fprintf(tw, "embedded\t%d\n", summary.TotalEmbedded)
			fmt.Fprintf(tw, "messages\t%d\n", summary.TotalMessages)

			sections := []struct {
				title  string
				counts []models.CategoryCount
			}{
				{"by split", summary.BySplit},
				{"by sentiment", summary.BySentiment},
				{"by experience level", summary.ByExperienceLevel},
				{"by industry", summary.ByIndustry},
				{"by job category", summary.ByJobCategory},
				{"top ai tools", summary.TopAITools},
				{"top use cases", summary.TopUseCases},
				{"top pain points", summary.TopPainPoints},
			}

			for _, s := range sections {
				fmt.Fprintf(tw, "\n%s\n", strings.ToUpper(s.title))

				for _, cc := range s.counts {
					fmt.Fprintf(tw, "  %s\t%d\n", cc.Value, cc.Count)
				}
			}

			if err := tw.Flush(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			return nil
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <transcript-id>",
		Short: "Print one transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store, err := c.load()
			if err != nil {
				return err
			}

			t, err := store.Get(args[0])
			if err != nil {
				return err
			}

			if c.jsonOutput {
				return c.printJSON(t)
			}

			fmt.Fprintf(c.out, "%s (%s)\n", t.TranscriptID, t.Split)

			for _, field := range []struct {
				name  string
				value *string
			}{
				{"job title", t.JobTitle},
				{"industry", t.Industry},
				{"sentiment", t.Sentiment},
				{"experience", t.ExperienceLevel},
			} {
				if v, ok := models.Known(field.value); ok {
					fmt.Fprintf(c.out, "  %s: %s\n", field.name, v)
				}
			}

			fmt.Fprintln(c.out)

			for _, m := range t.Messages {
				fmt.Fprintf(c.out, "[%s] %s\n", m.Role, m.Content)
			}

			return nil
		},
	}
}

// errDrift is returned by validate --strict when records were skipped.
var errDrift = errors.New("corpus has drift between transcripts and embeddings")

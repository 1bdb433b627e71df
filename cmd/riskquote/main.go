package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/assurelab/riskquote/internal/calculation"
	"github.com/assurelab/riskquote/internal/catalog"
	"github.com/assurelab/riskquote/internal/compare"
	"github.com/assurelab/riskquote/internal/config"
	"github.com/assurelab/riskquote/internal/domain"
	"github.com/assurelab/riskquote/internal/output"
	"github.com/assurelab/riskquote/internal/server"
	"github.com/assurelab/riskquote/internal/store"
	"github.com/assurelab/riskquote/internal/transform"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "riskquote %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "riskquote",
	Short: "Insurance risk scoring and premium estimation",
	Long:  "Scores customer risk profiles against the factor catalog and derives premium quotes",
}

// loadEngine builds an engine, honoring a catalog override from the flag
// or from the input document.
func loadEngine(cmd *cobra.Command, doc *config.InputDocument) (*calculation.Engine, error) {
	catalogFile, _ := cmd.Flags().GetString("catalog")
	if catalogFile == "" && doc != nil {
		catalogFile = doc.CatalogFile
	}

	if catalogFile == "" {
		return calculation.NewEngine(), nil
	}
	c, err := catalog.LoadFromFile(catalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", catalogFile, err)
	}
	return calculation.NewEngineWithCatalog(c), nil
}

var quoteCmd = &cobra.Command{
	Use:   "quote [input-file]",
	Short: "Assess a risk profile and quote a premium",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		doc, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		engine, err := loadEngine(cmd, doc)
		if err != nil {
			log.Fatal(err)
		}
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			engine.SetLogger(simpleCLILogger{})
		}

		assessment, quote, err := engine.Estimate(&doc.Profile, doc.Policy)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		generator := output.NewReportGenerator()
		if err := generator.Generate(os.Stdout, &output.Report{
			Assessment: assessment,
			Quote:      quote,
		}, outputFormat); err != nil {
			log.Fatal(err)
		}

		if budgetStr, _ := cmd.Flags().GetString("budget"); budgetStr != "" && outputFormat == "console" {
			budget, err := decimal.NewFromString(budgetStr)
			if err != nil {
				log.Fatalf("invalid budget %q: %v", budgetStr, err)
			}
			coverage, err := calculation.MaxAffordableCoverage(budget, doc.Policy, assessment)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("\nMax coverage for %s/%s budget: %s\n",
				output.FormatCurrency(budget), quote.Frequency, output.FormatCurrency(coverage))
		}
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Price one profile across several policy types",
	Long: `Price the input document's risk profile across policy types.

Examples:
  riskquote compare input.yaml
  riskquote compare input.yaml --with life,auto --format csv
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		doc, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		engine, err := loadEngine(cmd, doc)
		if err != nil {
			log.Fatal(err)
		}

		var policyTypes []domain.PolicyType
		if withStr, _ := cmd.Flags().GetString("with"); withStr != "" {
			for _, name := range strings.Split(withStr, ",") {
				pt, err := domain.ParsePolicyType(strings.TrimSpace(name))
				if err != nil {
					log.Fatal(err)
				}
				policyTypes = append(policyTypes, pt)
			}
		}

		set, err := compare.NewEngine(engine).Compare(&doc.Profile, doc.Policy, policyTypes)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "csv":
			out, err := (&compare.CSVFormatter{}).Format(set)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(out)

		case "json":
			out, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(out)

		case "table", "console", "":
			fmt.Print((&compare.TableFormatter{}).Format(set))

		default:
			log.Fatalf("Unknown output format: %s (valid: table, csv, json)", outputFormat)
		}
	},
}

var whatifCmd = &cobra.Command{
	Use:   "whatif [input-file]",
	Short: "Quote a profile before and after what-if changes",
	Long: `Apply named what-if templates to the input profile and show the
premium before and after.

Examples:
  riskquote whatif input.yaml --apply quit_smoking
  riskquote whatif input.yaml --apply quit_smoking,start_exercising
  riskquote whatif --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry := transform.NewRegistry()

		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			fmt.Print(registry.Help())
			return
		}

		if len(args) == 0 {
			log.Fatal("input file required (use --list-templates to see available templates)")
		}
		applyStr, _ := cmd.Flags().GetString("apply")
		if applyStr == "" {
			log.Fatal("--apply flag is required (comma-separated template names)")
		}

		parser := config.NewInputParser()
		doc, err := parser.LoadFromFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		transforms, err := registry.ParseList(applyStr)
		if err != nil {
			log.Fatal(err)
		}

		engine, err := loadEngine(cmd, doc)
		if err != nil {
			log.Fatal(err)
		}

		transformed, err := transform.ApplyTransforms(&doc.Profile, transforms)
		if err != nil {
			log.Fatal(err)
		}

		baseAssessment, baseQuote, err := engine.Estimate(&doc.Profile, doc.Policy)
		if err != nil {
			log.Fatal(err)
		}
		newAssessment, newQuote, err := engine.Estimate(transformed, doc.Policy)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println("WHAT-IF COMPARISON")
		fmt.Println(strings.Repeat("=", 56))
		for _, tr := range transforms {
			fmt.Printf("  %s: %s\n", tr.Name(), tr.Description())
		}
		fmt.Println()
		fmt.Printf("%-18s %-16s %-16s\n", "", "BEFORE", "AFTER")
		fmt.Printf("%-18s %-16s %-16s\n", "Risk score",
			fmt.Sprintf("%d (%s)", baseAssessment.Score, baseAssessment.Band),
			fmt.Sprintf("%d (%s)", newAssessment.Score, newAssessment.Band))
		fmt.Printf("%-18s %-16s %-16s\n", "Multiplier",
			baseAssessment.CompositeMultiplier.StringFixed(4),
			newAssessment.CompositeMultiplier.StringFixed(4))
		fmt.Printf("%-18s %-16s %-16s\n", "Premium",
			output.FormatCurrency(baseQuote.FinalPremium),
			output.FormatCurrency(newQuote.FinalPremium))

		delta := newQuote.FinalPremium.Sub(baseQuote.FinalPremium)
		switch {
		case delta.IsNegative():
			fmt.Printf("\nSavings: %s per %s\n", output.FormatCurrency(delta.Neg()), baseQuote.Frequency)
		case delta.IsPositive():
			fmt.Printf("\nIncrease: %s per %s\n", output.FormatCurrency(delta), baseQuote.Frequency)
		default:
			fmt.Println("\nNo premium change")
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an estimate input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		if _, err := parser.LoadFromFile(args[0]); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Input file %s is valid\n", args[0])
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the authoritative quote service",
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		dbPath, _ := cmd.Flags().GetString("db")
		catalogFile, _ := cmd.Flags().GetString("catalog")

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		c := catalog.MustDefault()
		if catalogFile != "" {
			loaded, err := catalog.LoadFromFile(catalogFile)
			if err != nil {
				log.Fatal(err)
			}
			c = loaded
		}

		storeConfig := store.DefaultConfig()
		if dbPath != "" {
			storeConfig.Path = dbPath
		}
		st, err := store.Open(storeConfig)
		if err != nil {
			log.Fatal(err)
		}
		defer st.Close()

		srv := server.New(c, st, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if catalogFile != "" {
			go func() {
				if err := srv.WatchCatalog(ctx, catalogFile); err != nil {
					logger.Error("catalog watcher stopped", "error", err)
				}
			}()
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe(addr) }()

		select {
		case <-ctx.Done():
			logger.Info("shutting down")
		case err := <-errCh:
			log.Fatal(err)
		}
	},
}

func init() {
	quoteCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	quoteCmd.Flags().String("catalog", "", "Path to a factor catalog override file")
	quoteCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	quoteCmd.Flags().String("budget", "", "Also report the max coverage affordable for this periodic budget")

	compareCmd.Flags().String("with", "", "Comma-separated policy types to compare (default: all)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().String("catalog", "", "Path to a factor catalog override file")

	whatifCmd.Flags().String("apply", "", "Comma-separated what-if templates to apply (required)")
	whatifCmd.Flags().Bool("list-templates", false, "List all available what-if templates")
	whatifCmd.Flags().String("catalog", "", "Path to a factor catalog override file")

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("db", "", "SQLite database path (default: data/riskquote.db)")
	serveCmd.Flags().String("catalog", "", "Path to a factor catalog override file (hot reloaded)")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(whatifCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

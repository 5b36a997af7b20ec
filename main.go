package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/insightdelivered/smartparse/internal/api"
	"github.com/insightdelivered/smartparse/internal/config"
	"github.com/insightdelivered/smartparse/internal/extractor"
	"github.com/insightdelivered/smartparse/internal/models"
	"github.com/insightdelivered/smartparse/internal/parser"
	"github.com/insightdelivered/smartparse/internal/store"
	"github.com/insightdelivered/smartparse/internal/writer"
)

const version = "1.2.0"

func main() {
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of parsing files")
	configFlag := flag.String("config", "", "Config file path (defaults to smartparse.yaml)")
	orgFlag := flag.String("org", "", "Organization id; when set, parsed transactions are persisted to the configured store")
	csvFlag := flag.String("csv", "", "Write parsed transactions to this CSV file")
	jsonFlag := flag.Bool("json", false, "Print parsed transactions as JSON instead of a table")
	headerFlag := flag.Bool("header", true, "Include the header row in CSV output")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `SmartParse: AI-style transaction extraction
by Insight Delivered

Extracts structured transactions (date, description, amount, debit/credit,
balance) from free-text bank alerts, SMS messages and statement lines, with a
confidence score per record. No external AI service involved: extraction is
deterministic and rule-based.

Usage:
  smartparse [flags] <input.txt|input.pdf ...>
  smartparse [flags] -          (read one alert from stdin)
  smartparse -serve             (run the HTTP API)

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Parse a file of alerts (blocks separated by blank lines)
  smartparse alerts.txt

  # Parse an SMS alert from stdin and print JSON
  echo "₹1,250.00 debited Bal 14,171.50" | smartparse -json -

  # Parse and persist under an organization
  smartparse -org=acme alerts.txt

  # Convert a statement PDF to CSV
  smartparse -csv=transactions.csv statement.pdf
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("smartparse v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		if err := runServer(*configFlag); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if err := runParse(flag.Args(), *configFlag, *orgFlag, *csvFlag, *jsonFlag, *headerFlag); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func runServer(cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	h := &api.Handler{
		Parser: &parser.TransactionParser{},
		Store:  st,
	}
	app := api.NewApp(h)

	pterm.Info.Printfln("smartparse v%s listening on %s (%s storage)", version, cfg.Server.Addr, cfg.Storage.Driver)
	return app.Listen(cfg.Server.Addr)
}

func runParse(inputs []string, cfgFile, orgID, csvPath string, asJSON, includeHeader bool) error {
	p := &parser.TransactionParser{}

	var parsed []models.ParsedTransaction
	var rawTexts []string
	for _, input := range inputs {
		messages, err := readMessages(input)
		if err != nil {
			return err
		}
		for _, msg := range messages {
			parsed = append(parsed, p.Parse(msg))
			rawTexts = append(rawTexts, msg)
		}
	}

	if len(parsed) == 0 {
		pterm.Warning.Println("No alerts found in input.")
		return nil
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(parsed); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	} else {
		printTable(parsed)
	}

	if csvPath != "" {
		w := &writer.CSVWriter{IncludeHeader: includeHeader}
		if err := w.WriteToFile(csvPath, parsed); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
		pterm.Success.Printfln("Wrote %d transaction(s) to %s", len(parsed), csvPath)
	}

	if orgID != "" {
		if err := persist(cfgFile, orgID, parsed, rawTexts); err != nil {
			return err
		}
	}

	return nil
}

func readMessages(input string) ([]string, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return nil, nil
		}
		return []string{text}, nil
	}

	pages, err := extractor.ExtractText(input)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", input, err)
	}

	var messages []string
	for _, page := range pages {
		messages = append(messages, extractor.SplitMessages(page)...)
	}
	return messages, nil
}

func printTable(parsed []models.ParsedTransaction) {
	rows := pterm.TableData{{"Date", "Description", "Type", "Amount", "Balance", "Confidence"}}
	for _, txn := range parsed {
		balance := ""
		if txn.Balance != nil {
			balance = fmt.Sprintf("%.2f", *txn.Balance)
		}
		rows = append(rows, []string{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			string(txn.Type),
			fmt.Sprintf("%.2f", txn.Amount),
			balance,
			fmt.Sprintf("%d%%", txn.Confidence),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func persist(cfgFile, orgID string, parsed []models.ParsedTransaction, rawTexts []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	for i, txn := range parsed {
		if _, err := st.SaveTransaction(ctx, orgID, txn, rawTexts[i]); err != nil {
			return fmt.Errorf("failed to store transaction %d: %w", i+1, err)
		}
	}
	pterm.Success.Printfln("Stored %d transaction(s) for organization %s", len(parsed), orgID)
	return nil
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Driver {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return store.NewMongoStore(ctx, cfg.Storage.Mongo.URI, cfg.Storage.Mongo.Database)
	default:
		return store.NewSQLiteStore(cfg.Storage.SQLite.Path)
	}
}

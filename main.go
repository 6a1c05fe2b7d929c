package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const pname = "macstat"

var debug bool
var capture bool
var ieee bool
var store bool
var dbConn string

type config struct {
	direction  Direction
	packets    string
	vendors    string
	capture    bool
	ieee       bool
	store      bool
	connString string
}

func init() {
	flag.BoolVar(&debug, "debug", false, "print debug log")
	flag.BoolVar(&capture, "pcap", false, "packet file is a pcap capture instead of a tab-separated log")
	flag.BoolVar(&ieee, "ieee", false, "vendor file is an IEEE oui.txt registry instead of OUI<TAB>VENDOR lines")
	flag.BoolVar(&store, "store", false, "save the report to PostgreSQL")
	flag.StringVar(&dbConn, "db", os.Getenv("DB"), "PostgreSQL connection string (default $DB)")
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"usage:\t%s [flags] <t|r> <packet-file> [vendor-file]\n", pname)
	flag.PrintDefaults()
}

func parseArgs(args []string) (config, error) {
	var cfg config

	if len(args) != 2 && len(args) != 3 {
		return cfg, errors.Errorf("wrong number of arguments: %d", len(args))
	}
	switch args[0] {
	case "t":
		cfg.direction = Transmitter
	case "r":
		cfg.direction = Receiver
	default:
		return cfg, errors.Errorf("direction must be t or r, not %q", args[0])
	}
	cfg.packets = args[1]
	if len(args) == 3 {
		cfg.vendors = args[2]
	}

	return cfg, nil
}

// validate checks flag combinations that parseArgs cannot see.
func (cfg config) validate() error {
	if cfg.ieee && cfg.vendors == "" {
		return errors.New("-ieee needs a vendor file argument")
	}
	return nil
}

func loadVendors(cfg config, slog *zap.SugaredLogger) (VendorResolver, error) {
	if cfg.ieee {
		r, err := LoadIEEERegistry(cfg.vendors)
		if err != nil {
			return nil, err
		}
		slog.Debugw("loaded IEEE registry", "path", cfg.vendors)
		return r, nil
	}

	table, err := LoadOuiTable(cfg.vendors)
	if err != nil {
		return nil, err
	}
	slog.Debugw("loaded vendor table", "path", cfg.vendors, "entries", table.Len())
	return table, nil
}

// run produces the report on out. Input is fully read and validated before
// anything is written.
func run(ctx context.Context, cfg config, out io.Writer, slog *zap.SugaredLogger) error {
	var vendors VendorResolver
	if cfg.vendors != "" {
		var err error
		if vendors, err = loadVendors(cfg, slog); err != nil {
			return err
		}
	}

	src, closer, err := openSource(cfg.packets, cfg.capture)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.Debugw("reading packets", "path", cfg.packets, "pcap", cfg.capture,
		"direction", cfg.direction.String())

	entries, err := Aggregate(src, cfg.direction, vendors != nil, slog)
	if err != nil {
		return err
	}

	rows := FormatReport(entries, vendors)
	SortRows(rows)
	if err := WriteReport(out, rows); err != nil {
		return err
	}

	if !cfg.store {
		return nil
	}
	return saveReport(ctx, cfg, rows, slog)
}

func saveReport(ctx context.Context, cfg config, rows []ReportRow, slog *zap.SugaredLogger) error {
	if cfg.connString == "" {
		return errors.New("-store needs a connection string (-db or $DB)")
	}

	rs, err := OpenReportStore(ctx, cfg.connString)
	if err != nil {
		return err
	}
	defer rs.Close(ctx)

	if err := rs.EnsureSchema(ctx); err != nil {
		return err
	}
	runID, err := rs.Save(ctx, Run{
		Time:      time.Now(),
		Direction: cfg.direction,
		Grouped:   cfg.vendors != "",
	}, rows)
	if err != nil {
		return err
	}
	slog.Infow("saved report", "run", runID, "rows", len(rows))
	return nil
}

func main() {
	flag.Usage = usage
	flag.Parse()

	log, slog := setupLogs(debug)
	defer log.Sync()

	cfg, err := parseArgs(flag.Args())
	if err == nil {
		cfg.capture = capture
		cfg.ieee = ieee
		cfg.store = store
		cfg.connString = dbConn
		err = cfg.validate()
	}
	if err != nil {
		fatal(os.Stderr, err)
		usage()
		os.Exit(2)
	}

	if err := run(context.Background(), cfg, os.Stdout, slog); err != nil {
		log.Sync()
		fatalExit(exitCode(err), err)
	}
}

// exitCode maps an error to a sysexits(3) status.
func exitCode(err error) int {
	switch {
	case isMalformed(err):
		return 65 // EX_DATAERR
	case isSourceUnavailable(err):
		return 66 // EX_NOINPUT
	default:
		return 1
	}
}

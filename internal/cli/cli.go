package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/babarot/diet/internal/config"
	"github.com/babarot/diet/internal/drive"
	"github.com/babarot/diet/internal/env"
	"github.com/babarot/diet/internal/prune"
	"github.com/babarot/diet/internal/ui/prompt"
	"github.com/babarot/diet/internal/utils/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

type Option struct {
	DryRun      bool   `short:"t" long:"dry-run" description:"Only show what would be deleted"`
	TestMode    bool   `long:"test-mode" description:"Same as --dry-run" hidden:"yes"`
	Sort        string `long:"sort" description:"Sort key (default: modifiedTime)" choice:"modifiedTime" choice:"createdTime" choice:"name" choice:"size"`
	Reverse     bool   `long:"reverse" description:"Reverse the sorting order"`
	NoReverse   bool   `long:"no-reverse" description:"Keep the default order even if the config file sets retention.reverse"`
	Ext         string `long:"ext" description:"Only consider files with these extensions (comma-separated, e.g. .pdf,.jpg)"`
	Exclude     string `long:"exclude" description:"Regex pattern for file names to exclude from deletion"`
	Verbose     bool   `short:"v" long:"verbose" description:"Verbose mode"`
	Logfile     string `long:"logfile" description:"File to append the deletion journal to"`
	Yes         bool   `short:"y" long:"yes" description:"Do not prompt for confirmation, just delete"`
	Recursive   bool   `short:"r" long:"recursive" description:"Clean folders recursively (include all subfolders)"`
	OlderThan   int    `long:"older-than" description:"Only delete files older than this many minutes" default:"0"`
	Backend     string `long:"backend" description:"Storage backend (default: from config)" choice:"gdrive" choice:"s3" choice:"local"`
	Config      string `long:"config" description:"Path to config file" default:""`
	MetricsFile string `long:"metrics-file" description:"Write Prometheus metrics to this file"`

	Meta MetaOption `group:"Meta Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   bool   `long:"debug" description:"Write debug logs to the log file"`
	Journal string `long:"journal" description:"View the deletion journal (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string

	stdin  *bufio.Reader
	stdout io.Writer

	// gateway and confirmer are built lazily unless set
	gateway   drive.Gateway
	confirmer prune.Confirmer
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] FOLDER_ID... [--] KEEP"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	setupLogger(opt.Meta.Debug, cfg.Logging)

	defer slog.Debug("main function finished")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	cli := CLI{
		version:   v,
		option:    opt,
		config:    cfg,
		runID:     runID(),
		stdin:     prompt.Stdin(),
		stdout:    os.Stdout,
		confirmer: prune.ConfirmFunc(prompt.Confirm),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

// setupLogger sends debug records to DIET_LOG_PATH with --debug, and
// otherwise only the configured level and above to stderr.
func setupLogger(debug bool, cfg config.Logging) {
	opts := []log.Option{
		log.UseLevel(log.ParseLevel(cfg.Level)),
		log.UseFormatter(log.ParseFormatter(cfg.Format)),
		log.AsDefault(),
	}
	if debug {
		opts = append(opts,
			log.UseLevel(log.DebugLevel),
			log.UseOutputPath(env.DIET_LOG_PATH),
			log.UseReportCaller(true),
			log.UseReportTimestamp(true),
			log.UseTimeFormat(time.Kitchen),
		)
	}
	log.New(opts...)
	slog.SetDefault(slog.Default().With("run_id", runID()))
}

func (c CLI) Run(ctx context.Context, args []string) error {
	switch {
	case c.option.Meta.Version:
		fmt.Fprint(c.stdout, c.version.Print())
		return nil

	case c.option.Meta.Journal != "":
		return showJournal(c.stdout, c.journalPath(), c.option.Meta.Journal == "live")

	default:
		ids, keep, err := parseArgs(args)
		if err != nil {
			return err
		}
		return c.Clean(ctx, ids, keep)
	}
}

func (c CLI) journalPath() string {
	if c.option.Logfile != "" {
		return c.option.Logfile
	}
	return c.config.Journal.Path
}

var errTooFewArgs = errors.New("too few arguments: need at least one folder id and the number of files to keep")

package cli

import (
	"errors"
	"flag"
	"io"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/session"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/tasklist"
	"github.com/idilsaglam/tada/internal/tui"
	"github.com/idilsaglam/tada/internal/ui"
)

// Main resolves config, opens the store and runs one subcommand.
func Main(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tada", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg, rest, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			PrintHelp(stdout)
			return exitOK
		}
		ui.NewPrinter(stdout, stderr, model.DefaultTheme, false).Fail("config: " + err.Error())
		return exitUsage
	}

	// The TUI owns the terminal; its logs only go to the log file.
	var console io.Writer = stderr
	if len(rest) == 0 || rest[0] == "ui" {
		console = nil
	}
	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		File:    cfg.LogFile,
		Console: console,
	})
	if err != nil {
		ui.NewPrinter(stdout, stderr, model.DefaultTheme, cfg.NoColor).Fail("log: " + err.Error())
		return exitError
	}
	defer logger.Close()

	kv, err := jsonstore.Open(cfg.DataDir)
	if err != nil {
		logger.Error("open store", "dir", cfg.DataDir, "err", err)
		ui.NewPrinter(stdout, stderr, model.DefaultTheme, cfg.NoColor).Fail("open store: " + err.Error())
		return exitError
	}
	logger.Debug("store opened", "path", kv.Path(), "config", cfg.ConfigFile)

	sess, err := session.Open(cfg, kv, logger, tasklist.Options{})
	if err != nil {
		ui.NewPrinter(stdout, stderr, model.DefaultTheme, cfg.NoColor).Fail(err.Error())
		return exitError
	}

	return Run(sess, rest, Options{
		Group:   cfg.Group,
		Printer: ui.NewPrinter(stdout, stderr, sess.Theme, cfg.NoColor),
		RunTUI: func(s *session.Session) error {
			return tui.Run(s, tui.Options{})
		},
	})
}

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/costbasis/ledger"
	"github.com/robinvdvleuten/costbasis/web"
)

// csvHeader is written to files created by the web command.
const csvHeader = "type\tdate\tbuyCoin\tsellCoin\tbuyAmount\tsellAmount\tbuyPricePerCoin\tsellPricePerCoin\n"

type WebCmd struct {
	File         string `help:"Transactions file whose report is served on /api/report." arg:"" optional:""`
	Port         int    `help:"Port to listen on." default:"8080" env:"COSTBASIS_PORT"`
	Watch        bool   `help:"Recompute the report when the file changes." short:"w"`
	Create       bool   `help:"Automatically create file if it doesn't exist (no confirmation prompt)." short:"c"`
	MaxBodyBytes int64  `help:"Maximum size of a calculation request body in bytes." default:"10485760"`
}

func (cmd *WebCmd) Run(ctx *kong.Context, globals *Globals) error {
	rc := newRunContext(ctx, globals, "web")
	defer rc.report(ctx.Stderr)

	var inputFile string
	if cmd.File != "" {
		absFile, err := filepath.Abs(cmd.File)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		if err := cmd.ensureFile(ctx, absFile); err != nil {
			return err
		}
		inputFile = absFile
	}

	version := Version
	if version == "" {
		version = "dev"
	}
	commitSHA := CommitSHA
	if commitSHA == "" {
		commitSHA = "local"
	}

	server := web.NewWithVersion(cmd.Port, inputFile, version, commitSHA)
	server.WatchEnabled = cmd.Watch
	server.MaxBodyBytes = cmd.MaxBodyBytes
	server.Config = ledger.ConfigFromContext(rc)

	printInfof(ctx.Stdout, "Starting server on %s:%d", server.Host, cmd.Port)
	if inputFile != "" {
		printInfof(ctx.Stdout, "Serving report of: %s", pathStyle.Render(inputFile))
	}
	if cmd.Watch && inputFile != "" {
		printInfof(ctx.Stdout, "Watching for changes")
	}

	runCtx, stop := signal.NotifyContext(rc, os.Interrupt)
	defer stop()

	return server.Start(runCtx)
}

// ensureFile creates file after confirmation when it does not exist.
func (cmd *WebCmd) ensureFile(ctx *kong.Context, file string) error {
	_, err := os.Stat(file)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access file: %w", err)
	}

	shouldCreate := cmd.Create

	if !shouldCreate {
		confirmed, err := promptYesNo(fmt.Sprintf("File %q does not exist. Create it?", file))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		shouldCreate = confirmed
	}

	if !shouldCreate {
		return fmt.Errorf("file does not exist: %s", file)
	}

	if err := createTransactionsFile(file); err != nil {
		return err
	}

	printInfof(ctx.Stdout, "Created empty transactions file: %s", pathStyle.Render(file))
	return nil
}

// createTransactionsFile writes a file holding only the column header,
// creating parent directories as needed.
func createTransactionsFile(file string) error {
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	content := csvHeader
	if filepath.Ext(file) == ".json" {
		content = "{\"transactions\": []}\n"
	}

	if err := os.WriteFile(file, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return nil
}

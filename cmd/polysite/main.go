package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/polything/polysite/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Globals are the flags shared by every command. Each can also be set from
// the environment or a .env file.
type Globals struct {
	Name        string   `help:"Site name." env:"POLYSITE_NAME"`
	URL         string   `help:"Canonical base URL." env:"POLYSITE_URL"`
	Description string   `help:"Site description used by the feed." env:"POLYSITE_DESCRIPTION"`
	Database    string   `short:"d" help:"SQLite database path." env:"POLYSITE_DB"`
	Services    []string `help:"Page slugs served under /services." env:"POLYSITE_SERVICES"`
	Dev         bool     `help:"Human-readable debug logging." env:"POLYSITE_DEV"`
	SentryDSN   string   `name:"sentry-dsn" help:"Report errors to Sentry." env:"SENTRY_DSN"`
}

// CLI is the polysite command line.
type CLI struct {
	Globals

	Serve   ServeCmd   `cmd:"" help:"Serve the site from the content database."`
	Build   BuildCmd   `cmd:"" help:"Render every route into a static output directory."`
	Slugs   SlugsCmd   `cmd:"" help:"Print the route params of a collection as JSON."`
	Import  ImportCmd  `cmd:"" help:"Import a YAML content snapshot into the database."`
	New     NewCmd     `cmd:"" help:"Create a new polysite project."`
	Version VersionCmd `cmd:"" help:"Print the polysite version."`
}

// AfterApply runs after flag parsing and installs the logger once.
func (c *CLI) AfterApply() error {
	logger.Init(c.Dev, c.SentryDSN)
	return nil
}

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("polysite"),
		kong.Description("Serve and build the Polything site with its SEO metadata."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(&cli.Globals); err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}

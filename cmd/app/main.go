package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/dagaz/internal"
	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/capture"
	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/dateid"
	"github.com/starford/dagaz/internal/editor"
	"github.com/starford/dagaz/internal/journal"
	"github.com/starford/dagaz/internal/mcpserver"
	"github.com/starford/dagaz/internal/navigate"
	pkgconfig "github.com/starford/dagaz/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// openJournal opens the configured dailies directory. When create is set the
// directory is made on demand, for capture-style commands.
func openJournal(cfg *internal.Config, create bool) (*journal.Journal, error) {
	root, err := journal.Resolve(cfg.Journal.Path)
	if err != nil {
		return nil, err
	}
	if create {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}
	return journal.Open(root, cfg.Journal.Extensions)
}

func newResolver(cfg *internal.Config, j *journal.Journal, print bool) *capture.Resolver {
	var opener capture.Opener
	if !print {
		opener = editor.New(cfg.Editor.Command, cfg.Editor.PostNavigationHook)
	}
	return capture.NewResolver(j, cfg.Capture.Templates, cfg.Capture.Default, opener)
}

func captureAction(goToOnly bool) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		j, err := openJournal(cfg, true)
		if err != nil {
			return err
		}
		resolver := newResolver(cfg, j, cmd.Bool("print"))

		opts := capture.Options{
			GoToOnly:    goToOnly || cmd.Bool("goto"),
			TemplateKey: cmd.String("template"),
		}

		var note journal.Note
		switch {
		case cmd.String("date") != "":
			policy, err := capture.ParsePolicy(cfg.Journal.DatePicker)
			if err != nil {
				return err
			}
			id, err := capture.PickDate(cmd.String("date"), time.Now(), policy)
			if err != nil {
				return err
			}
			note, _, err = resolver.ForDate(ctx, id, opts)
			if err != nil {
				return err
			}
		case cmd.IsSet("offset"):
			note, _, err = resolver.RelativeDay(ctx, int(cmd.Int("offset")), opts)
			if err != nil {
				return err
			}
		default:
			note, _, err = resolver.Today(ctx, opts)
			if err != nil {
				return err
			}
		}

		if cmd.Bool("print") {
			fmt.Println(note.Path)
		}
		return nil
	}
}

func captureFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "offset",
			Aliases: []string{"n"},
			Usage:   "Capture the note N days from today (N may be negative)",
		},
		&cli.StringFlag{
			Name:    "date",
			Aliases: []string{"d"},
			Usage:   "Capture the note for a date: YYYY-MM-DD, MM-DD, day of month, or +N/-N",
		},
		&cli.StringFlag{
			Name:    "template",
			Aliases: []string{"t"},
			Usage:   "Template key to insert (default template when omitted)",
		},
		&cli.BoolFlag{
			Name:  "print",
			Usage: "Print the resolved note path instead of opening the editor",
		},
	}
}

func navigateAction(backward bool) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		j, err := openJournal(cfg, false)
		if err != nil {
			return err
		}

		current := cmd.Args().First()
		nav := navigate.New(j)
		steps := int(cmd.Int("steps"))

		var note journal.Note
		if backward {
			note, err = nav.Prev(current, steps)
		} else {
			note, err = nav.Next(current, steps)
		}
		if err != nil {
			return err
		}

		if cmd.Bool("print") {
			fmt.Println(note.Path)
			return nil
		}
		ed := editor.New(cfg.Editor.Command, cfg.Editor.PostNavigationHook)
		if err := ed.Open(ctx, note.Path); err != nil {
			return err
		}
		return ed.RunHook(ctx)
	}
}

func navigateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "steps",
			Aliases: []string{"n"},
			Value:   1,
			Usage:   "How many existing notes to move",
		},
		&cli.BoolFlag{
			Name:  "print",
			Usage: "Print the target note path instead of opening the editor",
		},
	}
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	j, err := openJournal(cfg, false)
	if err != nil {
		return err
	}
	notes, err := j.List()
	if err != nil {
		return err
	}
	for _, n := range notes {
		line := n.ID.String()
		if data, err := os.ReadFile(n.Path); err == nil {
			line += "  " + checksum.Short(data)
		}
		fmt.Printf("%s  %s\n", line, n.Path)
	}
	return nil
}

func calendarAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	j, err := openJournal(cfg, false)
	if err != nil {
		return err
	}
	from, err := dateid.Parse(cmd.String("from"))
	if err != nil {
		return err
	}
	to, err := dateid.Parse(cmd.String("to"))
	if err != nil {
		return err
	}
	bridge := calendar.New(j)
	return bridge.MarkRange(from, to, func(d dateid.Identity) {
		fmt.Println(d.String())
	})
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	j, err := openJournal(cfg, true)
	if err != nil {
		return err
	}
	resolver := capture.NewResolver(j, cfg.Capture.Templates, cfg.Capture.Default, nil)
	return mcpserver.New(j, resolver).ServeStdio()
}

func main() {
	cmd := &cli.Command{
		Name:  "dagaz",
		Usage: "Daily notes: capture into and navigate a directory of date-named files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("DAGAZ_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "capture",
				Usage:  "Create today's note (or another day's) and insert a capture template",
				Flags:  append(captureFlags(), &cli.BoolFlag{Name: "goto", Usage: "Only land on the note, insert nothing"}),
				Action: captureAction(false),
			},
			{
				Name:   "goto",
				Usage:  "Jump to a day's note, creating it on demand without inserting a template",
				Flags:  captureFlags(),
				Action: captureAction(true),
			},
			{
				Name:      "next",
				Usage:     "Move to the chronologically next existing note",
				ArgsUsage: "<current-note-path>",
				Flags:     navigateFlags(),
				Action:    navigateAction(false),
			},
			{
				Name:      "prev",
				Usage:     "Move to the chronologically previous existing note",
				ArgsUsage: "<current-note-path>",
				Flags:     navigateFlags(),
				Action:    navigateAction(true),
			},
			{
				Name:   "list",
				Usage:  "List all daily notes in chronological order",
				Action: listAction,
			},
			{
				Name:  "calendar",
				Usage: "Print the dates in a range that have notes",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from", Required: true, Usage: "Range start (YYYY-MM-DD)"},
					&cli.StringFlag{Name: "to", Required: true, Usage: "Range end (YYYY-MM-DD)"},
				},
				Action: calendarAction,
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API and SSE event stream",
				Action: serveAction,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdin/stdout",
				Action: mcpAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// Package servicerecord implements the servicerecord command.
package servicerecord

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	platformcmd "github.com/louisbranch/servicerecord/internal/platform/cmd"
	"github.com/louisbranch/servicerecord/internal/platform/logger"
	"github.com/louisbranch/servicerecord/internal/platform/otel"
	"github.com/louisbranch/servicerecord/internal/services/career/app"
	"github.com/louisbranch/servicerecord/internal/services/career/storage/sqlite"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/domain"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/engine"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/snapshot"
)

// Config holds servicerecord command configuration. Environment variables
// carry the SERVICERECORD_ prefix.
type Config struct {
	DBPath    string `env:"DB_PATH"    envDefault:"data/servicerecord.db"`
	LogMode   string `env:"LOG_MODE"   envDefault:"off"`
	DeathRule bool   `env:"DEATH_RULE"`
	Locale    string `env:"LOCALE"`
	Telemetry otel.Config

	ID          string
	Format      string
	Seed        int64
	Retire      bool
	RetireAfter int

	Command string
	Args    []string
}

const usage = `usage: servicerecord [flags] <command> [args]

commands:
  create               roll a new character
  show                 print the character (--format text|json|yaml|cbor)
  import <file>        store a character exported with show
  delete               remove the character and its history
  reveal <char>        show one characteristic before enlisting (str, dex, ...)
  enlist <service>     try to join Navy, Marines, Army, Scouts, Merchants or Others
  survive              roll survival for the current term
  commission           roll for a commission
  promote              roll for promotion
  skills               make the term's skill rolls
  age                  finish the term and resolve aging
  reenlist             roll to serve another term (--retire to leave)
  muster               report mustering-out rolls
  next                 resolve whichever phase is next
  run <service>        play a whole career (--retire-after N)
  history              list recorded operations

flags:
`

type usageError struct {
	msg string
}

func (e usageError) Error() string {
	return e.msg
}

// PrintUsage writes the command summary and flag defaults of fs.
func PrintUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprint(w, usage)
	fmt.Fprint(w, fs.FlagUsages())
}

// ParseConfig parses env and flags into a Config.
func ParseConfig(fs *pflag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(cfg.Locale) == "" {
		cfg.Locale = os.Getenv("LANG")
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the character database")
	fs.StringVar(&cfg.LogMode, "log", cfg.LogMode, "log mode: off, dev or prod")
	fs.BoolVar(&cfg.DeathRule, "death-rule", cfg.DeathRule, "failed survival rolls kill new characters")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages")
	fs.StringVar(&cfg.ID, "id", "", "character id (defaults to the most recently updated)")
	fs.StringVar(&cfg.Format, "format", "text", "output format for show and input format for import")
	fs.Int64Var(&cfg.Seed, "seed", 0, "dice seed for create (0 picks one at random)")
	fs.BoolVar(&cfg.Retire, "retire", false, "ask to retire instead of reenlisting")
	fs.IntVar(&cfg.RetireAfter, "retire-after", 0, "full terms to serve before retiring in run (0 serves as long as allowed)")
	fs.Usage = func() {}
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Config{}, err
		}
		return Config{}, usageError{msg: err.Error()}
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, usageError{msg: "command is required"}
	}
	cfg.Command = strings.ToLower(rest[0])
	cfg.Args = rest[1:]
	if cfg.RetireAfter < 0 {
		return Config{}, usageError{msg: "--retire-after must not be negative"}
	}
	return cfg, nil
}

// Run executes one command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return usageError{msg: err.Error()}
	}
	defer log.Sync()

	store, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close career store", "error", err)
		}
	}()

	opts := app.Options{DeathRule: cfg.DeathRule}
	if cfg.Seed != 0 {
		seed := cfg.Seed
		opts.Seed = func() int64 { return seed }
	}
	svc := app.NewService(store, log, opts)
	return dispatch(ctx, svc, cfg, out)
}

func dispatch(ctx context.Context, svc *app.Service, cfg Config, out io.Writer) error {
	switch cfg.Command {
	case "create":
		if err := expectArgs(cfg, 0); err != nil {
			return err
		}
		record, err := svc.Create(ctx)
		if err != nil {
			return err
		}
		return renderSheet(out, record)
	case "show":
		if err := expectArgs(cfg, 0); err != nil {
			return err
		}
		return show(ctx, svc, cfg, out)
	case "import":
		if err := expectArgs(cfg, 1); err != nil {
			return err
		}
		return importFile(ctx, svc, cfg, out)
	case "delete":
		if err := expectArgs(cfg, 0); err != nil {
			return err
		}
		deleted, err := svc.Delete(ctx, cfg.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %s\n", deleted)
		return nil
	case "reveal":
		if err := expectArgs(cfg, 1); err != nil {
			return err
		}
		res, err := svc.Reveal(ctx, cfg.ID, cfg.Args[0])
		if err != nil {
			return err
		}
		renderReveal(out, res.Result)
		return nil
	case "enlist":
		if err := expectArgs(cfg, 1); err != nil {
			return err
		}
		res, err := svc.Enlist(ctx, cfg.ID, cfg.Args[0])
		if err != nil {
			return err
		}
		renderEnlist(out, res.Result)
		return nil
	case "survive":
		return phase(ctx, cfg, out, svc.Survive, renderSurvival)
	case "commission":
		return phase(ctx, cfg, out, svc.Commission, renderAdvancement)
	case "promote":
		return phase(ctx, cfg, out, svc.Promote, renderAdvancement)
	case "skills":
		return phase(ctx, cfg, out, svc.RollSkills, renderGrants)
	case "age":
		return phase(ctx, cfg, out, svc.Age, renderSummary)
	case "reenlist":
		stay := !cfg.Retire
		return phase(ctx, cfg, out,
			func(ctx context.Context, charID string) (app.Outcome[domain.ReenlistmentResult], error) {
				return svc.Reenlist(ctx, charID, stay)
			},
			renderReenlistment)
	case "muster":
		return phase(ctx, cfg, out, svc.MusterOut, renderMuster)
	case "next":
		return phase(ctx, cfg, out, svc.Step, renderStep)
	case "run":
		if err := expectArgs(cfg, 1); err != nil {
			return err
		}
		res, err := svc.RunCareer(ctx, cfg.ID, cfg.Args[0], engine.RunOptions{RetireAfterTerms: cfg.RetireAfter})
		if err != nil {
			return err
		}
		for _, step := range res.Result {
			renderStep(out, step)
		}
		fmt.Fprintln(out)
		return renderSheet(out, res.Record)
	case "history":
		if err := expectArgs(cfg, 0); err != nil {
			return err
		}
		ops, err := svc.Operations(ctx, cfg.ID)
		if err != nil {
			return err
		}
		renderHistory(out, ops)
		return nil
	default:
		return usageError{msg: fmt.Sprintf("unknown command %q", cfg.Command)}
	}
}

// phase runs an operation that takes only the character id and prints its
// result.
func phase[T any](ctx context.Context, cfg Config, out io.Writer, op func(context.Context, string) (app.Outcome[T], error), render func(io.Writer, T)) error {
	if err := expectArgs(cfg, 0); err != nil {
		return err
	}
	res, err := op(ctx, cfg.ID)
	if err != nil {
		return err
	}
	render(out, res.Result)
	return nil
}

func show(ctx context.Context, svc *app.Service, cfg Config, out io.Writer) error {
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "text") || strings.TrimSpace(cfg.Format) == "" {
		record, err := svc.Get(ctx, cfg.ID)
		if err != nil {
			return err
		}
		return renderSheet(out, record)
	}
	format, err := snapshot.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	data, err := svc.Export(ctx, cfg.ID, format)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func importFile(ctx context.Context, svc *app.Service, cfg Config, out io.Writer) error {
	path := cfg.Args[0]
	format, err := importFormat(cfg.Format, path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	record, err := svc.Import(ctx, data, format)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported %s\n", record.ID)
	return renderSheet(out, record)
}

// importFormat uses the --format flag when set, else the file extension.
func importFormat(flag, path string) (snapshot.Format, error) {
	flag = strings.TrimSpace(flag)
	if flag != "" && !strings.EqualFold(flag, "text") {
		return snapshot.ParseFormat(flag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return snapshot.YAML, nil
	case ".cbor":
		return snapshot.CBOR, nil
	default:
		return snapshot.JSON, nil
	}
}

func expectArgs(cfg Config, n int) error {
	if len(cfg.Args) == n {
		return nil
	}
	if n == 0 {
		return usageError{msg: fmt.Sprintf("%s takes no arguments", cfg.Command)}
	}
	return usageError{msg: fmt.Sprintf("%s takes %d argument(s)", cfg.Command, n)}
}

func openStore(ctx context.Context, path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open career sqlite store: %w", err)
	}
	return store, nil
}

package servicerecord

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	apperrors "github.com/louisbranch/servicerecord/internal/platform/errors"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/domain"
	"github.com/louisbranch/servicerecord/internal/systems/traveller/snapshot"
)

func TestParseConfigDefaults(t *testing.T) {
	for _, key := range []string{"SERVICERECORD_DB_PATH", "SERVICERECORD_LOG_MODE", "SERVICERECORD_LOCALE", "SERVICERECORD_DEATH_RULE"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	t.Setenv("LANG", "pt_BR.UTF-8")
	fs := pflag.NewFlagSet("servicerecord", pflag.ContinueOnError)

	cfg, err := ParseConfig(fs, []string{"create"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Command != "create" || len(cfg.Args) != 0 {
		t.Fatalf("command = %q %v", cfg.Command, cfg.Args)
	}
	if cfg.DBPath != "data/servicerecord.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.LogMode != "off" {
		t.Fatalf("log mode = %q", cfg.LogMode)
	}
	if cfg.Locale != "pt_BR.UTF-8" {
		t.Fatalf("locale = %q", cfg.Locale)
	}
	if cfg.Format != "text" || cfg.DeathRule || cfg.Retire {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("SERVICERECORD_DB_PATH", "/tmp/env.db")
	t.Setenv("SERVICERECORD_DEATH_RULE", "true")
	t.Setenv("SERVICERECORD_OTEL_ENDPOINT", "localhost:4318")
	fs := pflag.NewFlagSet("servicerecord", pflag.ContinueOnError)

	cfg, err := ParseConfig(fs, []string{"run", "Navy", "--retire-after", "3", "--db", "/tmp/flag.db", "--id", "abc"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/flag.db" {
		t.Fatalf("db path = %q, want flag value", cfg.DBPath)
	}
	if !cfg.DeathRule {
		t.Fatal("expected death rule from env")
	}
	if cfg.Telemetry.Endpoint != "localhost:4318" {
		t.Fatalf("otel endpoint = %q", cfg.Telemetry.Endpoint)
	}
	if cfg.Command != "run" || len(cfg.Args) != 1 || cfg.Args[0] != "Navy" {
		t.Fatalf("command = %q %v", cfg.Command, cfg.Args)
	}
	if cfg.RetireAfter != 3 || cfg.ID != "abc" {
		t.Fatalf("flags = %+v", cfg)
	}
}

func TestParseConfigUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing command", args: nil},
		{name: "unknown flag", args: []string{"create", "--bogus"}},
		{name: "negative retire-after", args: []string{"run", "Army", "--retire-after", "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("servicerecord", pflag.ContinueOnError)
			fs.SetOutput(&bytes.Buffer{})
			_, err := ParseConfig(fs, tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if ExitCode(err) != apperrors.ExitInvalidInput {
				t.Fatalf("exit code = %d, want %d", ExitCode(err), apperrors.ExitInvalidInput)
			}
		})
	}
}

func TestParseConfigHelp(t *testing.T) {
	fs := pflag.NewFlagSet("servicerecord", pflag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	_, err := ParseConfig(fs, []string{"--help"})
	if !errors.Is(err, pflag.ErrHelp) {
		t.Fatalf("error = %v, want pflag.ErrHelp", err)
	}
	var buf bytes.Buffer
	PrintUsage(&buf, fs)
	if !strings.Contains(buf.String(), "enlist <service>") || !strings.Contains(buf.String(), "--retire-after") {
		t.Fatalf("usage missing commands:\n%s", buf.String())
	}
}

func TestRunCareerWorkflow(t *testing.T) {
	t.Parallel()

	db := filepath.Join(t.TempDir(), "nested", "career.db")
	base := Config{DBPath: db, LogMode: "off", Format: "text", Seed: 31337}

	out := runCommand(t, base, "create")
	if !strings.Contains(out, "upp") || !strings.Contains(out, "status   created") {
		t.Fatalf("create output:\n%s", out)
	}

	out = runCommand(t, base, "reveal", "str")
	if !strings.Contains(out, "Strength: ") || !strings.Contains(out, "Still hidden: DEX END INT EDU SOC") {
		t.Fatalf("reveal output:\n%s", out)
	}
	for _, key := range []string{"dexterity", "end", "int", "edu", "soc"} {
		out = runCommand(t, base, "reveal", key)
	}
	if !strings.Contains(out, "All characteristics revealed.") {
		t.Fatalf("final reveal output:\n%s", out)
	}

	out = runCommand(t, base, "enlist", "army")
	if !strings.Contains(out, "Army") {
		t.Fatalf("enlist output:\n%s", out)
	}

	for i := 0; i < 200; i++ {
		out = runCommand(t, base, "show", "--format", "json")
		record, err := snapshot.Decode([]byte(out), snapshot.JSON)
		if err != nil {
			t.Fatalf("decode show output: %v", err)
		}
		if record.Character.Status != domain.StatusActive {
			break
		}
		runCommand(t, base, "next")
	}

	out = runCommand(t, base, "show")
	if strings.Contains(out, "awaiting") {
		t.Fatalf("career did not end:\n%s", out)
	}
	if !strings.Contains(out, "term 1") {
		t.Fatalf("expected career history in sheet:\n%s", out)
	}

	out = runCommand(t, base, "history")
	for _, name := range []string{"create", "reveal", "enlist", "step"} {
		if !strings.Contains(out, name) {
			t.Fatalf("history missing %q:\n%s", name, out)
		}
	}
}

func TestRunWholeCareerAndExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := Config{DBPath: filepath.Join(dir, "career.db"), LogMode: "off", Format: "text", Seed: 77}
	runCommand(t, base, "create")

	out := runCommand(t, base, "run", "Scouts")
	if !strings.Contains(out, "[term 1 survival]") {
		t.Fatalf("run output:\n%s", out)
	}

	yamlOut := runCommand(t, base, "show", "--format", "yaml")
	record, err := snapshot.Decode([]byte(yamlOut), snapshot.YAML)
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if !record.Character.Status.Terminal() {
		t.Fatalf("status = %q, want terminal", record.Character.Status)
	}

	exported := filepath.Join(dir, "export.yaml")
	if err := os.WriteFile(exported, []byte(yamlOut), 0o600); err != nil {
		t.Fatalf("write export: %v", err)
	}
	other := Config{DBPath: filepath.Join(dir, "other.db"), LogMode: "off", Format: "text"}
	out = runCommand(t, other, "import", exported)
	if !strings.Contains(out, "Imported "+record.ID) {
		t.Fatalf("import output:\n%s", out)
	}

	_, err = runCommandErr(t, base, "survive")
	if err == nil {
		t.Fatal("expected survive after the career to fail")
	}
	if ExitCode(err) != apperrors.ExitPrecondition {
		t.Fatalf("exit code = %d, want %d (%v)", ExitCode(err), apperrors.ExitPrecondition, err)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	t.Parallel()

	base := Config{DBPath: filepath.Join(t.TempDir(), "career.db"), LogMode: "off", Format: "text", Seed: 5}

	_, err := runCommandErr(t, base, "show")
	if ExitCode(err) != apperrors.ExitNotFound {
		t.Fatalf("show on empty db exit = %d (%v)", ExitCode(err), err)
	}
	if got := Message(err, "en_US.UTF-8"); got != "No character found. Create a character first." {
		t.Fatalf("message = %q", got)
	}

	runCommand(t, base, "create")
	_, err = runCommandErr(t, base, "enlist", "Pirates")
	if ExitCode(err) != apperrors.ExitInvalidInput {
		t.Fatalf("enlist Pirates exit = %d (%v)", ExitCode(err), err)
	}
	if got := Message(err, "pt_BR.UTF-8"); !strings.HasPrefix(got, `"Pirates" não é um serviço`) {
		t.Fatalf("message = %q", got)
	}

	_, err = runCommandErr(t, base, "reveal", "luck")
	if ExitCode(err) != apperrors.ExitInvalidInput {
		t.Fatalf("reveal luck exit = %d (%v)", ExitCode(err), err)
	}

	_, err = runCommandErr(t, base, "promote")
	if ExitCode(err) != apperrors.ExitPrecondition {
		t.Fatalf("promote exit = %d (%v)", ExitCode(err), err)
	}

	_, err = runCommandErr(t, base, "launch")
	if ExitCode(err) != apperrors.ExitInvalidInput {
		t.Fatalf("unknown command exit = %d (%v)", ExitCode(err), err)
	}
	_, err = runCommandErr(t, base, "enlist")
	if ExitCode(err) != apperrors.ExitInvalidInput {
		t.Fatalf("missing argument exit = %d (%v)", ExitCode(err), err)
	}
	_, err = runCommandErr(t, base, "show", "--format", "xml")
	if ExitCode(err) != apperrors.ExitInvalidInput {
		t.Fatalf("unknown format exit = %d (%v)", ExitCode(err), err)
	}
}

func TestDeleteCommand(t *testing.T) {
	t.Parallel()

	base := Config{DBPath: filepath.Join(t.TempDir(), "career.db"), LogMode: "off", Format: "text", Seed: 9}
	runCommand(t, base, "create")
	out := runCommand(t, base, "delete")
	if !strings.HasPrefix(out, "Deleted ") {
		t.Fatalf("delete output = %q", out)
	}
	if _, err := runCommandErr(t, base, "show"); ExitCode(err) != apperrors.ExitNotFound {
		t.Fatalf("show after delete = %v", err)
	}
}

func TestMessageAndLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"", "en-US"},
		{"C", "en-US"},
		{"pt_BR.UTF-8", "pt-BR"},
		{"en_GB@euro", "en-GB"},
	}
	for _, tt := range tests {
		if got := normalizeLocale(tt.locale); got != tt.want {
			t.Errorf("normalizeLocale(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}

	plain := errors.New("disk on fire")
	if got := Message(plain, "en-US"); got != "disk on fire" {
		t.Fatalf("plain message = %q", got)
	}
	if ExitCode(plain) != apperrors.ExitInternal {
		t.Fatalf("plain exit code = %d", ExitCode(plain))
	}
	if ExitCode(nil) != 0 {
		t.Fatal("nil error should exit 0")
	}
}

func TestImportFormat(t *testing.T) {
	tests := []struct {
		flag string
		path string
		want snapshot.Format
	}{
		{"text", "a.yml", snapshot.YAML},
		{"", "a.YAML", snapshot.YAML},
		{"text", "a.cbor", snapshot.CBOR},
		{"text", "a.json", snapshot.JSON},
		{"text", "a", snapshot.JSON},
		{"cbor", "a.json", snapshot.CBOR},
	}
	for _, tt := range tests {
		got, err := importFormat(tt.flag, tt.path)
		if err != nil {
			t.Fatalf("importFormat(%q, %q): %v", tt.flag, tt.path, err)
		}
		if got != tt.want {
			t.Errorf("importFormat(%q, %q) = %q, want %q", tt.flag, tt.path, got, tt.want)
		}
	}
}

func runCommand(t *testing.T, base Config, args ...string) string {
	t.Helper()
	out, err := runCommandErr(t, base, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

// runCommandErr runs args against base, which supplies the storage and
// seed settings; flags in args override it.
func runCommandErr(t *testing.T, base Config, args ...string) (string, error) {
	t.Helper()
	fs := pflag.NewFlagSet("servicerecord", pflag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		return "", err
	}
	cfg.DBPath = base.DBPath
	cfg.LogMode = base.LogMode
	cfg.DeathRule = base.DeathRule
	if cfg.Seed == 0 {
		cfg.Seed = base.Seed
	}
	var out bytes.Buffer
	err = Run(context.Background(), cfg, &out)
	return out.String(), err
}

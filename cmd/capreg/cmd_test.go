// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/capreg/capreg/internal/config"
	"github.com/capreg/capreg/internal/extensions/sample"
	"github.com/capreg/capreg/internal/issue"
	"github.com/capreg/capreg/pkg/bundle"
	"github.com/capreg/capreg/pkg/command"
)

type staticConfig struct {
	cfg *config.Config
	err error
}

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Loaded, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &config.Loaded{Config: s.cfg}, nil
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

// run executes the command tree with cfg and the given bundles loaded after core.
func run(t *testing.T, cfg *config.Config, bundles []bundle.Bundle, args ...string) runResult {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config:  staticConfig{cfg: cfg},
		Bundles: func() []bundle.Bundle { return bundles },
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	root := NewRootCommand(app)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func sampleBundles(n *sample.Net) []bundle.Bundle {
	return []bundle.Bundle{sample.Bundle(n)}
}

func requireGuide(t *testing.T, err error, want issue.Id) {
	t.Helper()
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v (%T), want *issue.ActionableError", err, err)
	}
	if ae.Guide != want {
		t.Errorf("Guide = %d, want %d (err: %v)", ae.Guide, want, err)
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	res := run(t, nil, sampleBundles(sample.NewNet()), "list")
	if res.err != nil {
		t.Fatalf("list: %v", res.err)
	}
	for _, want := range []string{"Core.UI", "Rescan", "Core.Log", "Net", "Port", "8080", "Host", "localhost", "Online", "Reset"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("list output missing %q:\n%s", want, res.stdout)
		}
	}
	if strings.Index(res.stdout, "Core.Log") > strings.Index(res.stdout, "Net") {
		t.Error("groups are not listed in sorted order")
	}
}

func TestList_Group(t *testing.T) {
	t.Parallel()

	res := run(t, nil, sampleBundles(sample.NewNet()), "list", "net")
	if res.err != nil {
		t.Fatalf("list net: %v", res.err)
	}
	if strings.Contains(res.stdout, "Core.UI") || !strings.Contains(res.stdout, "Port") {
		t.Errorf("list net output:\n%s", res.stdout)
	}

	res = run(t, nil, nil, "list", "Nope")
	requireGuide(t, res.err, issue.CommandNotFoundId)
}

func TestGet(t *testing.T) {
	t.Parallel()

	res := run(t, nil, sampleBundles(sample.NewNet()), "get", "NET/port")
	if res.err != nil {
		t.Fatalf("get: %v", res.err)
	}
	if res.stdout != "8080\n" {
		t.Errorf("stdout = %q, want 8080", res.stdout)
	}

	res = run(t, nil, sampleBundles(sample.NewNet()), "get", "Net/Reset")
	requireGuide(t, res.err, issue.WrongCommandKindId)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	res := run(t, nil, sampleBundles(sample.NewNet()), "get", "Net/Missing")
	requireGuide(t, res.err, issue.CommandNotFoundId)
	var ae *issue.ActionableError
	errors.As(res.err, &ae)
	if len(ae.Suggestions) == 0 || !strings.Contains(ae.Suggestions[0], "Port") {
		t.Errorf("suggestions should list the group's commands: %v", ae.Suggestions)
	}

	res = run(t, nil, nil, "get", "NoSlash")
	if res.err == nil || !strings.Contains(res.err.Error(), "parse command name") {
		t.Errorf("err = %v, want parse error", res.err)
	}

	res = run(t, nil, nil, "get", "Group/")
	if !errors.Is(res.err, command.ErrNotSetUp) {
		t.Errorf("err = %v, want ErrNotSetUp", res.err)
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	n := sample.NewNet()
	res := run(t, nil, sampleBundles(n), "set", "Net/Port", "9090")
	if res.err != nil {
		t.Fatalf("set: %v", res.err)
	}
	if n.Port != 9090 {
		t.Errorf("port = %d, want 9090", n.Port)
	}
	if !strings.Contains(res.stdout, "applied") || !strings.Contains(res.stdout, "9090") {
		t.Errorf("stdout = %q", res.stdout)
	}

	res = run(t, nil, sampleBundles(n), "set", "Net/Port", "9090")
	if res.err != nil || !strings.Contains(res.stdout, "unchanged") {
		t.Errorf("second set = %q, %v, want unchanged", res.stdout, res.err)
	}

	res = run(t, nil, sampleBundles(n), "set", "Net/Host", "example.org")
	if res.err != nil || n.Host() != "example.org" {
		t.Errorf("set host: %v, host = %q", res.err, n.Host())
	}
}

func TestSet_Rejected(t *testing.T) {
	t.Parallel()

	n := sample.NewNet()
	res := run(t, nil, sampleBundles(n), "set", "Net/Port", "70000")

	var exitErr *ExitError
	if !errors.As(res.err, &exitErr) || exitErr.Code != ExitRejected {
		t.Fatalf("err = %v, want ExitError with code %d", res.err, ExitRejected)
	}
	requireGuide(t, res.err, issue.ValueRejectedId)
	if n.Port != sample.DefaultPort {
		t.Errorf("rejected write changed port to %d", n.Port)
	}
}

func TestSet_DecodeAndKindErrors(t *testing.T) {
	t.Parallel()

	res := run(t, nil, sampleBundles(sample.NewNet()), "set", "Net/Port", "eighty")
	requireGuide(t, res.err, issue.ValueDecodeFailedId)
	if !errors.Is(res.err, command.ErrDecode) {
		t.Errorf("err = %v, want ErrDecode in chain", res.err)
	}

	res = run(t, nil, sampleBundles(sample.NewNet()), "set", "Net/Online", "1")
	requireGuide(t, res.err, issue.WrongCommandKindId)
}

func TestClickAndRefresh(t *testing.T) {
	t.Parallel()

	n := sample.NewNet()
	n.Port = 9000
	res := run(t, nil, sampleBundles(n), "click", "net/reset")
	if res.err != nil {
		t.Fatalf("click: %v", res.err)
	}
	if n.Port != sample.DefaultPort || !strings.Contains(res.stdout, "clicked") {
		t.Errorf("click: port = %d, stdout = %q", n.Port, res.stdout)
	}

	res = run(t, nil, sampleBundles(n), "refresh", "Net/Port")
	if res.err != nil || res.stdout != "8080\n" {
		t.Errorf("refresh = %q, %v", res.stdout, res.err)
	}

	res = run(t, nil, sampleBundles(n), "refresh", "Net/Host")
	requireGuide(t, res.err, issue.WrongCommandKindId)

	res = run(t, nil, sampleBundles(n), "click", "Net/Port")
	requireGuide(t, res.err, issue.WrongCommandKindId)
}

func TestClick_CoreRescan(t *testing.T) {
	t.Parallel()

	res := run(t, nil, sampleBundles(sample.NewNet()), "click", "Core.UI/Rescan")
	if res.err != nil {
		t.Fatalf("click rescan: %v", res.err)
	}
}

func TestUnboundCommand(t *testing.T) {
	t.Parallel()

	bad := []bundle.Bundle{bundle.New("bad").Add(bundle.Button("Bad", "Click", 42))}

	res := run(t, nil, bad, "list", "Bad")
	if res.err != nil {
		t.Fatalf("list: %v", res.err)
	}
	if !strings.Contains(res.stdout, "<unbound>") {
		t.Errorf("unbound marker missing:\n%s", res.stdout)
	}
	if strings.Contains(res.stderr, "registered unbound") {
		t.Errorf("warnings should be hidden without --verbose: %q", res.stderr)
	}

	res = run(t, nil, bad, "click", "Bad/Click")
	requireGuide(t, res.err, issue.CommandNotBoundId)

	res = run(t, nil, bad, "--verbose", "list", "Bad")
	if !strings.Contains(res.stderr, "registered unbound") {
		t.Errorf("verbose stderr = %q, want binding warning", res.stderr)
	}
}

func TestStrictPolicy(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Scan.BindingPolicy = config.BindingPolicyStrict
	bad := []bundle.Bundle{bundle.New("bad").Add(bundle.Button("Bad", "Click", 42), bundle.Raw("Bad", "Marker"))}

	res := run(t, cfg, bad, "get", "Bad/Click")
	requireGuide(t, res.err, issue.CommandNotFoundId)
	if !strings.Contains(res.stderr, "not registered") {
		t.Errorf("stderr = %q, want rejection notice", res.stderr)
	}
}

func TestPresetsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Presets = map[string]map[string]string{"net": {"port": "9191"}}

	res := run(t, cfg, sampleBundles(sample.NewNet()), "get", "Net/Port")
	if res.err != nil || res.stdout != "9191\n" {
		t.Errorf("get = %q, %v, want preset 9191", res.stdout, res.err)
	}
}

func TestPresetsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "presets.toml")
	if err := os.WriteFile(path, []byte("[Net]\nPort = 7070\nHost = \"from-file\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.PresetsFile = path
	cfg.Presets = map[string]map[string]string{"Net": {"Host": "from-config"}}

	n := sample.NewNet()
	res := run(t, cfg, sampleBundles(n), "get", "Net/Port")
	if res.err != nil || res.stdout != "7070\n" {
		t.Errorf("get = %q, %v, want 7070", res.stdout, res.err)
	}
	if n.Host() != "from-config" {
		t.Errorf("host = %q, config map should override the file", n.Host())
	}

	cfg.PresetsFile = filepath.Join(t.TempDir(), "missing.toml")
	res = run(t, cfg, sampleBundles(sample.NewNet()), "list")
	requireGuide(t, res.err, issue.PresetsLoadFailedId)
}

func TestRescan(t *testing.T) {
	t.Parallel()

	res := run(t, nil, sampleBundles(sample.NewNet()), "rescan")
	if res.err != nil {
		t.Fatalf("rescan: %v", res.err)
	}
	if !strings.Contains(res.stdout, "2 bundle(s), 6 command(s) registered") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	res := run(t, nil, sampleBundles(sample.NewNet()), "describe", "net", "--markdown")
	if res.err != nil {
		t.Fatalf("describe: %v", res.err)
	}
	for _, row := range []string{
		"# Net",
		"| Port | field | int | `8080` | yes | yes |",
		"| Host | property | string | `localhost` | yes | yes |",
		"| Online | raw |  |  |  | yes |",
	} {
		if !strings.Contains(res.stdout, row) {
			t.Errorf("markdown missing %q:\n%s", row, res.stdout)
		}
	}

	cfg := config.DefaultConfig()
	cfg.UI.Style = "notty"
	res = run(t, cfg, sampleBundles(sample.NewNet()), "describe", "Net")
	if res.err != nil {
		t.Fatalf("describe rendered: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Port") || !strings.Contains(res.stdout, "8080") {
		t.Errorf("rendered output:\n%s", res.stdout)
	}

	res = run(t, nil, nil, "describe", "Nope")
	requireGuide(t, res.err, issue.CommandNotFoundId)
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	res := run(t, nil, nil, "config", "show")
	if res.err != nil {
		t.Fatalf("config show: %v", res.err)
	}
	for _, want := range []string{"(using defaults)", `binding_policy: "lenient"`, "clear_on_rescan: true", `style: "dark"`} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestConfigInit(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "capreg")
	res := run(t, nil, nil, "config", "init", dir)
	if res.err != nil {
		t.Fatalf("config init: %v", res.err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.cue")); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestConfigLoadError(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	want := errors.New("broken config")
	app := NewApp(Dependencies{Config: staticConfig{err: want}, Stdout: &stdout, Stderr: &stdout})
	root := NewRootCommand(app)
	root.SetArgs([]string{"list"})
	if err := root.ExecuteContext(context.Background()); !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := formatErrorForDisplay(errors.New("boom"), false, "notty")
	if !strings.Contains(plain, "boom") {
		t.Errorf("plain = %q", plain)
	}

	ae := issue.NewErrorContext().
		WithOperation("set value").
		WithResource("Net/Port").
		WithSuggestion("try 8080").
		WithGuide(issue.ValueRejectedId).
		Wrap(errors.New("rejected")).
		BuildError()

	short := formatErrorForDisplay(ae, false, "notty")
	if !strings.Contains(short, "failed to set value: Net/Port: rejected") || !strings.Contains(short, "try 8080") {
		t.Errorf("short = %q", short)
	}
	if strings.Contains(short, "Value rejected") {
		t.Error("guide rendered without verbose")
	}

	long := formatErrorForDisplay(ae, true, "notty")
	if !strings.Contains(long, "Value rejected") || !strings.Contains(long, "Error chain") {
		t.Errorf("verbose output = %q", long)
	}
}

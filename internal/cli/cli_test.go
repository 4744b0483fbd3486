package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/onion/pkg/errors"
	onionio "github.com/matzehuels/onion/pkg/io"
	"github.com/matzehuels/onion/pkg/pivot"
	"github.com/matzehuels/onion/pkg/pointset"
)

func TestParseDiameters(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"", nil, false},
		{"60", []float64{60}, false},
		{"60, 40", []float64{60, 40}, false},
		{"12.5,12.5", []float64{12.5, 12.5}, false},
		{"abc", nil, true},
		{"60,0", nil, true},
		{"-3", nil, true},
	}
	for _, tt := range tests {
		got, err := parseDiameters(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDiameters(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !slices.Equal(got, tt.want) {
			t.Errorf("parseDiameters(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseIDs(t *testing.T) {
	got, err := parseIDs("3, 7,12")
	if err != nil {
		t.Fatalf("parseIDs: %v", err)
	}
	if want := []int{3, 7, 12}; !slices.Equal(got, want) {
		t.Errorf("parseIDs = %v, want %v", got, want)
	}
	if got, err := parseIDs(""); got != nil || err != nil {
		t.Errorf("parseIDs(\"\") = %v, %v, want nil, nil", got, err)
	}
	if _, err := parseIDs("1,x"); err == nil {
		t.Error("parseIDs(\"1,x\") succeeded, want error")
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !slices.Equal(got, []string{"svg"}) {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("svg,json"); !slices.Equal(got, []string{"svg", "json"}) {
		t.Errorf("parseFormats = %v, want [svg json]", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "points.json", "points_onion"},
		{"", "data/points.json", "data/points_onion"},
		{"out.svg", "points.json", "out"},
		{"out/peeled.png", "points.json", "out/peeled"},
		{"out", "points.json", "out"},
		{"notes.txt", "points.json", "notes.txt"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "result")
	paths, err := writeArtifacts(base, map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	want := []string{base + ".json", base + ".svg"}
	if !slices.Equal(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(base + ".svg")
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("svg file = %q, %v", data, err)
	}
}

func TestSummarizeIDs(t *testing.T) {
	tests := []struct {
		ids   []int
		limit int
		want  string
	}{
		{nil, 3, "[]"},
		{[]int{1, 2}, 3, "[1 2]"},
		{[]int{1, 2, 3, 4, 5}, 3, "[1 2 3 … +2]"},
	}
	for _, tt := range tests {
		if got := summarizeIDs(tt.ids, tt.limit); got != tt.want {
			t.Errorf("summarizeIDs(%v, %d) = %q, want %q", tt.ids, tt.limit, got, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("TOML", func(t *testing.T) {
		path := write("onion.toml", `
diameters = [60, 40]
max_layers = 4
formats = ["svg", "json"]
hull = true

[server]
addr = ":9000"
mongo_db = "layers"
`)
		cfg, got, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if got != path {
			t.Errorf("path = %q, want %q", got, path)
		}
		if !slices.Equal(cfg.Diameters, []float64{60, 40}) || cfg.MaxLayers != 4 || !cfg.Hull {
			t.Errorf("cfg = %+v", cfg)
		}
		if !slices.Equal(cfg.Formats, []string{"svg", "json"}) {
			t.Errorf("Formats = %v, want [svg json]", cfg.Formats)
		}
		if cfg.Server.Addr != ":9000" || cfg.Server.MongoDB != "layers" {
			t.Errorf("Server = %+v", cfg.Server)
		}
	})

	t.Run("YAML", func(t *testing.T) {
		path := write("onion.yaml", "diameters: [30]\nlabels: true\nserver:\n  redis_url: redis://cache:6379/0\n")
		cfg, _, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if !slices.Equal(cfg.Diameters, []float64{30}) || !cfg.Labels {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.Server.RedisURL != "redis://cache:6379/0" {
			t.Errorf("RedisURL = %q", cfg.Server.RedisURL)
		}
	})

	t.Run("Errors", func(t *testing.T) {
		if _, _, err := loadConfig(filepath.Join(dir, "missing.toml")); err == nil {
			t.Error("missing explicit config succeeded, want error")
		}
		if _, _, err := loadConfig(write("onion.ini", "x=1")); err == nil {
			t.Error("unsupported extension succeeded, want error")
		}
		if _, _, err := loadConfig(write("bad.toml", "diameters = [")); err == nil {
			t.Error("malformed toml succeeded, want error")
		}
	})

	t.Run("DefaultMissing", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cfg, path, err := loadConfig("")
		if err != nil || path != "" {
			t.Errorf("loadConfig(\"\") = path %q, err %v, want no file", path, err)
		}
		if len(cfg.Diameters) != 0 {
			t.Errorf("cfg = %+v, want zero", cfg)
		}
	})
}

func TestServeOptionsPrecedence(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	c.config.Server = ServerConfig{Addr: ":7000", MongoDB: "fromconfig"}
	cmd := c.serveCommand()

	t.Setenv(envAddr, "")
	t.Setenv(envRedisURL, "redis://env:6379/0")
	t.Setenv(envMongoURI, "")
	t.Setenv(envMongoDB, "")

	got := c.serveOptions(cmd, serveOpts{mongoDB: "fromflag"})
	if got.addr != ":7000" {
		t.Errorf("addr = %q, want config value", got.addr)
	}
	if got.redisURL != "redis://env:6379/0" {
		t.Errorf("redisURL = %q, want env value", got.redisURL)
	}
	if got.mongoDB != "fromflag" {
		t.Errorf("mongoDB = %q, want flag value", got.mongoDB)
	}

	c.config.Server = ServerConfig{}
	if got := c.serveOptions(cmd, serveOpts{}); got.addr != defaultAddr || got.mongoDB != defaultMongoDB {
		t.Errorf("defaults = %+v", got)
	}
}

func TestLoadEnv(t *testing.T) {
	if err := loadEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("loadEnv(missing) = %v, want nil", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ONION_MONGO_DB=fromdotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envMongoDB, "")
	os.Unsetenv(envMongoDB)
	if err := loadEnv(path); err != nil {
		t.Fatalf("loadEnv: %v", err)
	}
	if got := os.Getenv(envMongoDB); got != "fromdotenv" {
		t.Errorf("%s = %q, want fromdotenv", envMongoDB, got)
	}
}

func triangle(t *testing.T) *pointset.Set {
	t.Helper()
	set, err := pointset.New([]*pointset.Node{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 5, Y: 8},
	})
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func TestNewRoller(t *testing.T) {
	r, err := newRoller(triangle(t), 20, nil)
	if err != nil {
		t.Fatalf("newRoller: %v", err)
	}
	if r.Anchor().ID != 1 {
		t.Errorf("anchor = %d, want leftmost node 1", r.Anchor().ID)
	}

	zero := 0
	set, err := pointset.New([]*pointset.Node{{ID: 0, X: 10, Y: 0}, {ID: 1, X: 0, Y: 0}, {ID: 2, X: 5, Y: 8}})
	if err != nil {
		t.Fatal(err)
	}
	if r, err := newRoller(set, 20, &zero); err != nil || r.Anchor().ID != 0 {
		t.Errorf("explicit anchor 0: err = %v, want a roller at node 0", err)
	}

	unknown := 99
	if _, err := newRoller(triangle(t), 20, &unknown); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown anchor err = %v, want %s", err, errors.ErrCodeNotFound)
	}
	if _, err := newRoller(triangle(t), 0, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero diameter err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, err := newRoller(triangle(t), 5, nil); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("isolated nodes err = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestRollModel(t *testing.T) {
	r, err := newRoller(triangle(t), 20, nil)
	if err != nil {
		t.Fatalf("newRoller: %v", err)
	}
	var m tea.Model = newRollModel(r)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	got := m.(RollModel)
	if want := []pivot.Edge{{From: 1, To: 2}, {From: 2, To: 3}}; !slices.Equal(got.Edges, want) {
		t.Errorf("edges after two steps = %v, want %v", got.Edges, want)
	}
	if got.Roller.Done() {
		t.Error("roller done after two steps")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	got = m.(RollModel)
	if len(got.Edges) != 3 || !got.Roller.Done() {
		t.Errorf("after run: edges %v, done %v", got.Edges, got.Roller.Done())
	}
	if view := got.View(); !strings.Contains(view, "ring closed") {
		t.Errorf("View() = %q, want closed ring notice", view)
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Error("q returned no command, want tea.Quit")
	}
}

func TestGenerateAndPeel(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	run := func(args ...string) {
		t.Helper()
		c := New(io.Discard, log.InfoLevel)
		root := c.RootCommand()
		root.SetArgs(args)
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)
		if err := root.Execute(); err != nil {
			t.Fatalf("onion %s: %v", strings.Join(args, " "), err)
		}
	}

	run("generate", "-n", "60", "--width", "300", "--height", "200", "-o", "points.json")
	run("peel", "points.json", "-f", "json,svg,dot", "--hull")

	for _, name := range []string{"points_onion.json", "points_onion.svg", "points_onion.dot"} {
		if _, err := os.Stat(name); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	layers, err := onionio.ImportLayersJSON("points_onion.json")
	if err != nil {
		t.Fatalf("read layers: %v", err)
	}
	if len(layers.Layers) == 0 {
		t.Fatal("no layers written")
	}
	data, _ := os.ReadFile("points_onion.svg")
	if !bytes.Contains(data, []byte("<svg")) {
		t.Errorf("svg output does not look like SVG: %.40q", data)
	}

	run("render", "points.json", "points_onion.json", "-f", "svg", "-o", "again.svg", "--no-cache")
	if _, err := os.Stat("again.svg"); err != nil {
		t.Errorf("render output: %v", err)
	}
}

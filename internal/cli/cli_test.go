package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/chart/cartesian"
	"github.com/matzehuels/cartesian/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "json", []string{"json"}},
		{"multiple formats", "svg,json", []string{"svg", "json"}},
		{"spaces and blanks", " svg , ,json ", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{"next to input", "charts/sales.toml", "", []string{"svg"}, map[string]string{"svg": "charts/sales.svg"}},
		{"explicit file", "sales.toml", "out/chart.svg", []string{"svg"}, map[string]string{"svg": "out/chart.svg"}},
		{"base without extension", "sales.toml", "out/chart", []string{"svg"}, map[string]string{"svg": "out/chart.svg"}},
		{"several formats share a base", "sales.toml", "out/chart.svg", []string{"svg", "json"},
			map[string]string{"svg": "out/chart.svg", "json": "out/chart.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.input, tt.output, tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestLayoutFlagsOptions(t *testing.T) {
	var flags layoutFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)
	if err := cmd.ParseFlags([]string{"--width", "500", "--scrollable=false", "--start", "3"}); err != nil {
		t.Fatal(err)
	}
	opts := flags.options(cmd, "chart.toml")

	if opts.ChartFile != "chart.toml" || opts.Width != 500 || opts.StartIndex != 3 {
		t.Errorf("options = %+v", opts)
	}
	if opts.Scrollable == nil || *opts.Scrollable {
		t.Error("explicit --scrollable=false should override the chart file")
	}
	if opts.TrimOverflow != nil {
		t.Error("unset --trim-overflow should defer to the chart file")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	line := statsLine(50, 12, 3, true)
	for _, want := range []string{"50 categories", "12 visible", "3 passes", "cached"} {
		if !strings.Contains(line, want) {
			t.Errorf("statsLine() = %q, missing %q", line, want)
		}
	}
	if strings.Contains(statsLine(5, 5, 1, false), "visible") {
		t.Error("visible count should be omitted when every category shows")
	}
}

func TestDescribeLayout(t *testing.T) {
	ctx := context.Background()
	r := pipeline.NewRunner(nil, nil, quietLogger())
	opts := pipeline.Options{ChartFile: writeChart(t, 60, columnChart), Measurer: testMeasurer}
	if err := opts.ValidateForLoad(); err != nil {
		t.Fatal(err)
	}
	f, sources, err := r.Load(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.ApplyChart(f)
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	chart, err := r.Negotiate(ctx, f, sources, opts, cartesian.ScrollOptions{})
	if err != nil {
		t.Fatal(err)
	}
	chart.Scroll.Render()

	var buf bytes.Buffer
	describeLayout(&buf, chart)
	out := buf.String()
	for _, want := range []string{"Layout", "400 × 300", "category", "60 keys", "scrolling"} {
		if !strings.Contains(out, want) {
			t.Errorf("describeLayout() missing %q:\n%s", want, out)
		}
	}
}

func TestNewCache(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	ctx := context.Background()

	ch, err := c.newCache(ctx, cacheFlags{noCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := ch.Get(ctx, "k"); ok {
		t.Error("disabled cache should always miss")
	}

	if _, err := c.newCache(ctx, cacheFlags{url: "http://localhost:6379"}); err == nil {
		t.Error("non-redis cache URL should be rejected")
	}

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	if _, err := c.newCache(ctx, cacheFlags{}); err != nil {
		t.Errorf("file cache: %v", err)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	for _, name := range []string{"layout", "render", "scroll", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

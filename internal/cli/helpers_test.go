package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/chart/axis"
)

var testMeasurer = axis.FixedMeasurer{AdvanceRatio: 0.5, LineRatio: 1.2}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

const columnChart = `title = "Sales"

[viewport]
width = 400
height = 300

[[layers]]
type = "column"
source = "sales.csv"
`

// writeChart writes chart next to a CSV with n categories.
func writeChart(t *testing.T, n int, chart string) string {
	t.Helper()
	dir := t.TempDir()
	var b strings.Builder
	b.WriteString("Key,Sales\n")
	for i := range n {
		fmt.Fprintf(&b, "c%03d,%d\n", i, 10+i%7)
	}
	if err := os.WriteFile(filepath.Join(dir, "sales.csv"), []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "chart.toml")
	if err := os.WriteFile(path, []byte(chart), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

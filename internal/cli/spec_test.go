package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadChartSpec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.toml")
	src := `data = "rows.csv"
geom = "line"
x = "t"
y = "value"
title = "demo"
width = 90
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := loadChartSpec(path)
	if err != nil {
		t.Fatalf("loadChartSpec() error = %v", err)
	}
	if spec.Data != "rows.csv" || spec.Geom != "line" || spec.Width != 90 {
		t.Errorf("decoded spec = %+v", spec)
	}
}

func TestLoadChartSpecErrors(t *testing.T) {
	if _, err := loadChartSpec("/nonexistent/chart.toml"); err == nil {
		t.Error("loadChartSpec() expected error for missing file")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("geom = [not toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadChartSpec(bad); err == nil {
		t.Error("loadChartSpec() expected error for invalid TOML")
	}
}

func TestApplySpecFlagsWin(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("geom", "point", "")
	flags.String("title", "", "")
	flags.Int("width", 0, "")
	if err := flags.Set("geom", "bar"); err != nil {
		t.Fatal(err)
	}

	opts := renderOptions{geomKind: "bar"}
	opts.applySpec(chartSpec{Geom: "line", Title: "from spec", Width: 90}, flags)

	if opts.geomKind != "bar" {
		t.Errorf("explicit flag should win, got geom %q", opts.geomKind)
	}
	if opts.title != "from spec" {
		t.Errorf("unset flag should take the spec value, got title %q", opts.title)
	}
	if opts.width != 90 {
		t.Errorf("unset width should take the spec value, got %d", opts.width)
	}
}

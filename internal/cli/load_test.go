package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cellplot/cellplot/pkg/errors"
)

func TestLoadCSV(t *testing.T) {
	input := `t,value,series
1, 10.5,sin
2,20,cos
`
	rows, err := loadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("loadCSV() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if got := rows[0]["value"]; got != 10.5 {
		t.Errorf("numeric cell = %v (%T), want 10.5 (float64)", got, got)
	}
	if got := rows[0]["series"]; got != "sin" {
		t.Errorf("string cell = %v, want %q", got, "sin")
	}
	if got := rows[1]["t"]; got != 2.0 {
		t.Errorf("t = %v, want 2", got)
	}
}

func TestLoadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "ragged quoting", input: "a,b\n\"unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadCSV(strings.NewReader(tt.input)); err == nil {
				t.Error("loadCSV() expected error, got nil")
			}
		})
	}
}

func TestLoadJSON(t *testing.T) {
	input := `[{"x": 1, "label": "a"}, {"x": 2, "label": "b"}]`
	rows, err := loadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("loadJSON() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if got := rows[1]["label"]; got != "b" {
		t.Errorf("label = %v, want %q", got, "b")
	}
}

func TestLoadJSONRejectsNonArray(t *testing.T) {
	_, err := loadJSON(strings.NewReader(`{"x": 1}`))
	if err == nil {
		t.Fatal("loadJSON() expected error for non-array input")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestLoadDataByExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "rows.csv")
	if err := os.WriteFile(csvPath, []byte("x,y\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "rows.json")
	if err := os.WriteFile(jsonPath, []byte(`[{"x":1,"y":2}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	txtPath := filepath.Join(dir, "rows.txt")
	if err := os.WriteFile(txtPath, []byte("not data"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "csv file", path: csvPath},
		{name: "json file", path: jsonPath},
		{name: "unsupported extension", path: txtPath, wantErr: true},
		{name: "missing file", path: filepath.Join(dir, "nope.csv"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := loadData(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("loadData() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("loadData() error = %v", err)
			}
			if len(rows) != 1 {
				t.Errorf("got %d rows, want 1", len(rows))
			}
		})
	}
}

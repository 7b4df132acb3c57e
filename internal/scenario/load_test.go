package scenario

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/iwvelando/school-forecast/internal/kademe"
)

const yamlScenario = `
name: YAML School
programType: international
currency:
  entry: usd
  fxRate: 32.5
inflation:
  y2: 0.2
grades:
  planning:
    y1:
      - grade: KG
        branchCount: 1
        totalStudents: 18
income:
  tuition:
    - key: okulOncesiInt
      unitFee: 5000
`

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(Document) bool
	}{
		{
			name:  "empty input yields skeleton",
			input: "  \n",
			check: func(d Document) bool { return reflect.DeepEqual(d, Default()) },
		},
		{
			name:  "json",
			input: `{"name":"JSON School","inflation":{"y2":0.1,"y3":0.05},"capacity":{"lise":{"caps":{"y3":200}}}}`,
			check: func(d Document) bool {
				return d.Name == "JSON School" && d.Inflation.Y3 == 0.05 && d.Capacity[kademe.Lise].Caps.Y3 == 200
			},
		},
		{
			name:  "yaml",
			input: yamlScenario,
			check: func(d Document) bool {
				fee := 0.0
				for _, row := range d.Income.Tuition {
					if row.Key == "okulOncesiInt" {
						fee = row.UnitFee
					}
				}
				return d.ProgramType == "international" && d.Currency.Entry == "USD" && d.Currency.FXRate == 32.5 &&
					len(d.Grades.Planning.Y3) == 1 && fee == 5000
			},
		},
		{
			name:  "json array normalizes to skeleton",
			input: `[1, 2, 3]`,
			check: func(d Document) bool { return reflect.DeepEqual(d, Default()) },
		},
		{
			name:    "malformed json",
			input:   `{"name": `,
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			input:   "name: [unterminated",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(doc) {
				t.Errorf("Decode() produced unexpected document: %+v", doc)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	doc := Normalize(sampleRaw())

	for name, encode := range map[string]func(Document) ([]byte, error){
		"json": EncodeJSON,
		"yaml": EncodeYAML,
	} {
		t.Run(name, func(t *testing.T) {
			data, err := encode(doc)
			if err != nil {
				t.Fatalf("encode error = %v", err)
			}
			decoded, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(doc, decoded) {
				t.Errorf("round trip changed the document")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(yamlScenario), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	doc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if doc.Name != "YAML School" {
		t.Errorf("name = %q", doc.Name)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestDecodeReader(t *testing.T) {
	doc, err := DecodeReader(strings.NewReader(`{"academicYear":"2026-2027"}`))
	if err != nil {
		t.Fatalf("DecodeReader() error = %v", err)
	}
	if doc.AcademicYear != "2026-2027" {
		t.Errorf("academic year = %q", doc.AcademicYear)
	}
}

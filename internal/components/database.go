package components

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PlatypusBytes/GoRoll/internal/simerr"
)

// railTable is the embedded rail profile database, a semicolon-delimited
// table with one header row and one row per profile.
//
//go:embed rails.csv
var railTable []byte

var railColumns = []string{
	"name", "E", "G", "nu", "kap", "mr", "rho", "etar", "fresr", "dr",
	"Iyr", "Izr", "Itr", "Ar", "Asr", "Vr",
}

// LoadRailTable reads a rail profile table from r. The table is a
// semicolon-delimited text file whose header must list the columns in the
// order of railColumns. Decimal commas are tolerated.
func LoadRailTable(r io.Reader) (map[string]Rail, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read rail table header: %w", err)
	}
	if len(header) != len(railColumns) {
		return nil, simerr.Configf("rail_table", "header has %d columns, want %d", len(header), len(railColumns))
	}
	for i, col := range header {
		if strings.TrimSpace(col) != railColumns[i] {
			return nil, simerr.Configf("rail_table", "column %d is %q, want %q", i, col, railColumns[i])
		}
	}

	rails := make(map[string]Rail)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rail table row: %w", err)
		}

		vals := make([]float64, len(rec)-1)
		for i, field := range rec[1:] {
			v, err := parseDecimal(field)
			if err != nil {
				return nil, simerr.Configf("rail_table", "row %q, column %s: %v", rec[0], railColumns[i+1], err)
			}
			vals[i] = v
		}
		rails[rec[0]] = Rail{
			Name: rec[0],
			E:    vals[0], G: vals[1], Nu: vals[2], Kap: vals[3],
			Mr: vals[4], Rho: vals[5], Etar: vals[6], Fresr: vals[7], Dr: vals[8],
			Iyr: vals[9], Izr: vals[10], Itr: vals[11],
			Ar: vals[12], Asr: vals[13], Vr: vals[14],
		}
	}
	return rails, nil
}

// LoadRailFile reads a rail profile table from a file path.
func LoadRailFile(path string) (map[string]Rail, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rail table: %w", err)
	}
	defer f.Close()
	return LoadRailTable(f)
}

// Rails returns the embedded rail profile database.
func Rails() map[string]Rail {
	rails, err := LoadRailTable(strings.NewReader(string(railTable)))
	if err != nil {
		// The embedded table is validated by tests; a parse failure here is
		// a build defect.
		panic(err)
	}
	return rails
}

// RailByName looks up a profile in the embedded database.
func RailByName(name string) (Rail, error) {
	rail, ok := Rails()[name]
	if !ok {
		return Rail{}, simerr.Configf("rail", "unknown rail profile %q", name)
	}
	return rail, nil
}

// parseDecimal parses a float accepting both dot and comma as the decimal
// separator.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

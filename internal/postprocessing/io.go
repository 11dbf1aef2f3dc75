package postprocessing

import (
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PlatypusBytes/GoRoll/internal/deflection"
)

// WriteResponseCSV writes the response of point p as CSV with columns
// (frequency, receptance magnitude, mobility magnitude).
func WriteResponseCSV(w io.Writer, r *Response, p int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"frequency", "receptance", "mobility"}); err != nil {
		return err
	}
	for i, f := range r.Freq {
		rec := []string{
			strconv.FormatFloat(f, 'g', -1, 64),
			strconv.FormatFloat(cmplxAbs(r.Rez[p][i]), 'e', 8, 64),
			strconv.FormatFloat(cmplxAbs(r.Mob[p][i]), 'e', 8, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDeflection persists a deflection history as a dense binary matrix:
// two int64 shape values (rows, columns) followed by the row-major float64
// payload, all little endian.
func WriteDeflection(w io.Writer, res *deflection.Result) error {
	cols := res.Grid.Nt + 1
	if err := binary.Write(w, binary.LittleEndian, int64(res.Rows)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, int64(cols)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, res.U)
}

// ReadDeflection reads a matrix persisted by WriteDeflection.
func ReadDeflection(r io.Reader) (rows, cols int, data []float64, err error) {
	var r64, c64 int64
	if err = binary.Read(r, binary.LittleEndian, &r64); err != nil {
		return 0, 0, nil, err
	}
	if err = binary.Read(r, binary.LittleEndian, &c64); err != nil {
		return 0, 0, nil, err
	}
	if r64 <= 0 || c64 <= 0 {
		return 0, 0, nil, fmt.Errorf("invalid deflection shape %dx%d", r64, c64)
	}
	data = make([]float64, r64*c64)
	if err = binary.Read(r, binary.LittleEndian, data); err != nil {
		return 0, 0, nil, err
	}
	return int(r64), int(c64), data, nil
}

// ValidationData is a reference dataset: a frequency vector and one value
// series per method name.
type ValidationData struct {
	Freq   []float64
	Series map[string][]float64
}

// LoadValidationData reads a reference dataset with the schema
// "Frequency; method-1; method-2; ..." using semicolon delimiters. Decimal
// commas are tolerated.
func LoadValidationData(r io.Reader) (*ValidationData, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read validation header: %w", err)
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "frequency") {
		return nil, fmt.Errorf("validation data must start with a Frequency column, got %q", header)
	}

	names := make([]string, len(header)-1)
	for i, h := range header[1:] {
		names[i] = strings.TrimSpace(h)
	}

	data := &ValidationData{Series: make(map[string][]float64, len(names))}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read validation row: %w", err)
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("validation row has %d fields, want %d", len(rec), len(header))
		}
		f, err := parseTolerant(rec[0])
		if err != nil {
			return nil, fmt.Errorf("bad frequency %q: %w", rec[0], err)
		}
		data.Freq = append(data.Freq, f)
		for i, field := range rec[1:] {
			v, err := parseTolerant(field)
			if err != nil {
				return nil, fmt.Errorf("bad value %q in column %s: %w", field, names[i], err)
			}
			data.Series[names[i]] = append(data.Series[names[i]], v)
		}
	}
	return data, nil
}

// parseTolerant parses a float accepting a decimal comma.
func parseTolerant(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

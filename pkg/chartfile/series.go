package chartfile

import (
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/cartesian/pkg/chart/data"
	"github.com/matzehuels/cartesian/pkg/errors"
)

// missing are cell texts read as missing values. A literal NaN is not
// missing: it is an invalid value and reported as such.
var missing = map[string]bool{"": true, "na": true, "n/a": true, "null": true, "-": true}

// LoadData reads a data file, picking the format from its extension. sheet
// applies to XLSX only. scalar places categories by numeric value.
func LoadData(path, sheet string, scalar bool) (*data.CartesianData, error) {
	if err := errors.ValidateDataFilename(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "data file %s not found", path)
		}
		return nil, err
	}
	defer f.Close()

	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		d, err := ReadJSON(f)
		if err != nil {
			return nil, err
		}
		if scalar && !d.IsScalar {
			return nil, errors.New(errors.ErrCodeInvalidData, "%s: scalar layers need numeric categories", name)
		}
		return d, nil
	case ".csv":
		return ReadCSV(name, f, scalar)
	default:
		return ReadXLSX(name, f, sheet, scalar)
	}
}

// ReadCSV reads a comma separated table. name labels errors.
func ReadCSV(name string, r io.Reader, scalar bool) (*data.CartesianData, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", name)
	}
	return FromRows(name, rows, scalar)
}

// ReadXLSX reads one worksheet of a workbook. An empty sheet selects the
// first one.
func ReadXLSX(name string, r io.Reader, sheet string, scalar bool) (*data.CartesianData, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook %s", name)
	}
	defer wb.Close()

	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New(errors.ErrCodeSheetNotFound, "%s has no worksheets", name)
		}
		sheet = sheets[0]
	}
	if idx, err := wb.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.New(errors.ErrCodeSheetNotFound, "sheet %q not found in %s", sheet, name)
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q of %s", sheet, name)
	}
	return FromRows(name+"!"+sheet, rows, scalar)
}

// FromRows converts a table to chart data. The first row is the header:
// category title, then one series name per column. Blank rows are skipped.
// Short rows are padded with missing values.
func FromRows(source string, rows [][]string, scalar bool) (*data.CartesianData, error) {
	if len(rows) == 0 || len(rows[0]) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidData, "%s: header needs a category column and at least one series", source)
	}
	header := rows[0]
	d := &data.CartesianData{
		CategoryTitle: strings.TrimSpace(header[0]),
		IsScalar:      scalar,
		Categories:    []data.Category{},
		Series:        make([]data.Series, len(header)-1),
	}
	for i, h := range header[1:] {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Series %d", i+1)
		}
		d.Series[i] = data.Series{Name: name, Values: []float64{}}
	}
	if len(d.Series) == 1 {
		d.ValueTitle = d.Series[0].Name
	}

	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		rowNum := n + 2
		key := strings.TrimSpace(row[0])
		c := data.Category{Key: key, Value: float64(len(d.Categories))}
		if scalar {
			v, err := strconv.ParseFloat(key, 64)
			if err != nil || !data.Finite(v) {
				return nil, &errors.RowError{Source: source, Row: rowNum, Column: d.CategoryTitle, Err: fmt.Errorf("category %q is not a number", key)}
			}
			c.Value = v
		}
		d.Categories = append(d.Categories, c)

		for i := range d.Series {
			cell := ""
			if i+1 < len(row) {
				cell = strings.TrimSpace(row[i+1])
			}
			v, err := parseCell(cell)
			if err != nil {
				return nil, &errors.RowError{Source: source, Row: rowNum, Column: d.Series[i].Name, Err: err}
			}
			d.Series[i].Values = append(d.Series[i].Values, v)
			if !data.Finite(v) && !missing[strings.ToLower(cell)] {
				d.Series[i].MarkInvalid(len(d.Series[i].Values) - 1)
			}
		}
	}
	return d, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseCell(s string) (float64, error) {
	if missing[strings.ToLower(s)] {
		return math.NaN(), nil
	}
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", s)
		}
		return v / 100, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var ne *strconv.NumError
		if stderrors.As(err, &ne) && stderrors.Is(ne.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// =============================================================================
// JSON
// =============================================================================

type jsonData struct {
	CategoryTitle string         `json:"category_title"`
	ValueTitle    string         `json:"value_title"`
	Scalar        bool           `json:"scalar"`
	Categories    []jsonCategory `json:"categories"`
	Series        []jsonSeries   `json:"series"`
}

type jsonSeries struct {
	Name       string      `json:"name"`
	Values     []jsonValue `json:"values"`
	Highlights []bool      `json:"highlights"`
}

// jsonValue is a number, null (missing) or one of the strings "NaN",
// "Infinity" and "-Infinity" (invalid).
type jsonValue struct {
	V       float64
	Missing bool
}

func (v *jsonValue) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		v.V, v.Missing = math.NaN(), true
		return nil
	}
	if err := json.Unmarshal(b, &v.V); err == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("value must be a number or null: %s", b)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nan":
		v.V = math.NaN()
	case "infinity", "inf", "+infinity", "+inf":
		v.V = math.Inf(1)
	case "-infinity", "-inf":
		v.V = math.Inf(-1)
	default:
		return fmt.Errorf("value must be a number or null: %s", b)
	}
	return nil
}

// jsonCategory accepts "key", 12.5 or {"key": "...", "value": 12.5}.
type jsonCategory struct {
	Key     string
	Value   float64
	Numeric bool
}

func (c *jsonCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		c.Key = s
		if v, err := strconv.ParseFloat(s, 64); err == nil && data.Finite(v) {
			c.Value, c.Numeric = v, true
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		c.Key = strconv.FormatFloat(v, 'f', -1, 64)
		c.Value, c.Numeric = v, true
		return nil
	}
	var obj struct {
		Key   string   `json:"key"`
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("category must be a string, number or object: %s", b)
	}
	c.Key = obj.Key
	if obj.Value != nil {
		c.Value, c.Numeric = *obj.Value, true
		if c.Key == "" {
			c.Key = strconv.FormatFloat(*obj.Value, 'f', -1, 64)
		}
	}
	return nil
}

// ReadJSON reads chart data:
//
//	{
//	  "category_title": "Month",
//	  "categories": ["Jan", "Feb", "Mar"],
//	  "series": [{"name": "Revenue", "values": [10, null, 12]}]
//	}
//
// Categories may also be numbers or {"key", "value"} objects. With
// "scalar": true every category must carry a number. null values are
// missing; "NaN" and "Infinity" strings are kept as invalid values.
func ReadJSON(r io.Reader) (*data.CartesianData, error) {
	var in jsonData
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode data")
	}
	if len(in.Series) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidData, "data has no series")
	}

	d := &data.CartesianData{
		CategoryTitle: in.CategoryTitle,
		ValueTitle:    in.ValueTitle,
		IsScalar:      in.Scalar,
		Categories:    make([]data.Category, len(in.Categories)),
		Series:        make([]data.Series, len(in.Series)),
	}
	for i, c := range in.Categories {
		if in.Scalar && !c.Numeric {
			return nil, errors.New(errors.ErrCodeInvalidData, "category %d (%q) has no numeric value", i+1, c.Key)
		}
		d.Categories[i] = data.Category{Key: c.Key, Value: float64(i)}
		if in.Scalar {
			d.Categories[i].Value = c.Value
		}
	}
	for i, s := range in.Series {
		if len(s.Values) != len(in.Categories) {
			return nil, errors.New(errors.ErrCodeInvalidData, "series %q has %d values for %d categories", s.Name, len(s.Values), len(in.Categories))
		}
		if len(s.Highlights) > 0 && len(s.Highlights) != len(s.Values) {
			return nil, errors.New(errors.ErrCodeInvalidData, "series %q has %d highlights for %d values", s.Name, len(s.Highlights), len(s.Values))
		}
		out := data.Series{Name: s.Name, Values: make([]float64, len(s.Values)), Highlights: s.Highlights}
		for j, v := range s.Values {
			out.Values[j] = v.V
			if !v.Missing && !data.Finite(v.V) {
				out.MarkInvalid(j)
			}
		}
		d.Series[i] = out
	}
	if d.ValueTitle == "" && len(d.Series) == 1 {
		d.ValueTitle = d.Series[0].Name
	}
	return d, nil
}

// Package tabular reads the library workbook: one sheet per record kind,
// first row as header. Workbooks can be .xlsx files, directories holding
// one <sheet>.csv per sheet, or YAML/JSON documents keyed by sheet name.
package tabular

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/auslib/core/model"
)

// Sheet names.
const (
	SheetPeople       = "people"
	SheetSchedules    = "schedules"
	SheetScheduleSets = "schedule_sets"
	SheetLights       = "lights"
	SheetEquipment    = "equipment"
	SheetInfiltration = "infiltration"
	SheetOutdoorAir   = "outdoor_air"
	SheetSpaceTypes   = "space_types"
)

// Sheets lists every sheet the library reads. Other sheets are ignored.
var Sheets = []string{
	SheetPeople, SheetSchedules, SheetScheduleSets, SheetLights,
	SheetEquipment, SheetInfiltration, SheetOutdoorAir, SheetSpaceTypes,
}

// Record is one sheet row keyed by column header.
type Record = map[string]any

// Load reads and decodes the workbook at path.
func Load(path string) (*model.Workbook, error) {
	raw, err := Read(path)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Read returns the raw records of every known sheet found at path.
func Read(path string) (map[string][]Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return readCSVDir(path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return readXLSX(path)
	case ".yaml", ".yml", ".json":
		return readDocument(path, ext)
	default:
		return nil, fmt.Errorf("unsupported workbook format: %s", ext)
	}
}

func readXLSX(path string) (map[string][]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}
	out := make(map[string][]Record)
	for _, sheet := range Sheets {
		if !present[sheet] {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		out[sheet] = toRecords(rows)
	}
	return out, nil
}

func readCSVDir(dir string) (map[string][]Record, error) {
	out := make(map[string][]Record)
	for _, sheet := range Sheets {
		path := filepath.Join(dir, sheet+".csv")
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		rows, err := readCSV(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		out[sheet] = toRecords(rows)
	}
	return out, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func readDocument(path, ext string) (map[string][]Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string][]Record
	if ext == ".json" {
		err = json.Unmarshal(b, &doc)
	} else {
		err = yaml.Unmarshal(b, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode workbook: %w", err)
	}
	out := make(map[string][]Record)
	for _, sheet := range Sheets {
		if recs, ok := doc[sheet]; ok {
			out[sheet] = recs
		}
	}
	return out, nil
}

// toRecords maps data rows onto the header row. Empty cells are left out so
// that required fields read as missing; fully empty rows are skipped.
func toRecords(rows [][]string) []Record {
	if len(rows) == 0 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	var out []Record
	for _, row := range rows[1:] {
		rec := make(Record)
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				rec[header[i]] = v
			}
		}
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out
}

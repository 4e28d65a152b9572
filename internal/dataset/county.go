package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"popdash/internal/domain"
)

const dateLayout = "2006-01-02"

// Identifier columns are carried on the record but never summed.
var identifierColumns = map[string]bool{
	"county": true,
	"state":  true,
	"fips":   true,
}

// LoadCountyDaily reads the US county time series from a .csv file or the
// first sheet of an .xlsx workbook.
func LoadCountyDaily(path string) ([]domain.CountyDailyRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: county data %s", domain.ErrDataUnavailable, path)
		}
		return nil, fmt.Errorf("open county data: %w", err)
	}
	defer file.Close()

	var rows [][]string
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readExcelRows(file)
	} else {
		rows, err = readCSVRows(file)
	}
	if err != nil {
		return nil, err
	}
	return ParseCountyRows(rows)
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: county csv: %v", domain.ErrFileFormat, err)
	}
	return rows, nil
}

func readExcelRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: county workbook: %v", domain.ErrFileFormat, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: county workbook has no sheets", domain.ErrFileFormat)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: county workbook: %v", domain.ErrFileFormat, err)
	}
	return rows, nil
}

// ParseCountyRows converts a header row plus data rows into records. The
// header needs a date column and a county or fips column; every other
// non-identifier column is numeric.
func ParseCountyRows(rows [][]string) ([]domain.CountyDailyRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: county data is empty", domain.ErrFileFormat)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	dateCol := indexOf(headers, "date")
	if dateCol < 0 {
		return nil, fmt.Errorf("%w: county data has no date column", domain.ErrFileFormat)
	}
	if indexOf(headers, "county") < 0 && indexOf(headers, "fips") < 0 {
		return nil, fmt.Errorf("%w: county data has no county or fips column", domain.ErrFileFormat)
	}

	var numericCols []int
	for i, h := range headers {
		if i != dateCol && h != "" && !identifierColumns[h] {
			numericCols = append(numericCols, i)
		}
	}
	if len(numericCols) == 0 {
		return nil, fmt.Errorf("%w: county data has no numeric columns", domain.ErrFileFormat)
	}

	records := make([]domain.CountyDailyRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		if isBlank(row) {
			continue
		}

		date, err := time.Parse(dateLayout, strings.TrimSpace(cell(row, dateCol)))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid date %q", domain.ErrFileFormat, line, cell(row, dateCol))
		}

		rec := domain.CountyDailyRecord{
			Date:   date,
			County: strings.TrimSpace(cell(row, indexOf(headers, "county"))),
			State:  strings.TrimSpace(cell(row, indexOf(headers, "state"))),
			FIPS:   strings.TrimSpace(cell(row, indexOf(headers, "fips"))),
			Values: make(map[string]float64, len(numericCols)),
		}
		for _, col := range numericCols {
			raw := strings.TrimSpace(cell(row, col))
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: column %s: %q is not numeric",
					domain.ErrFileFormat, line, headers[col], raw)
			}
			rec.Values[headers[col]] = v
		}
		records = append(records, rec)
	}

	return records, nil
}

func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

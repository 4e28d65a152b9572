package dataset

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/paulmach/orb/geojson"

	"popdash/internal/domain"
)

// naturalEarthLowres is the Natural Earth 1:110m admin-0 countries layer,
// reduced to the naturalearth_lowres properties.
//
//go:embed data/naturalearth_lowres.geojson
var naturalEarthLowres []byte

// LoadWorldBoundaries reads a Natural Earth style GeoJSON feature collection
// and returns one record per feature with its world population share set.
// An empty path loads the bundled naturalearth_lowres layer.
func LoadWorldBoundaries(path string) ([]domain.CountryRecord, error) {
	if path == "" {
		return ParseWorldBoundaries(naturalEarthLowres)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: world boundaries %s", domain.ErrDataUnavailable, path)
		}
		return nil, fmt.Errorf("read world boundaries: %w", err)
	}
	return ParseWorldBoundaries(data)
}

// ParseWorldBoundaries decodes a GeoJSON document into country records.
func ParseWorldBoundaries(data []byte) ([]domain.CountryRecord, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: world boundaries: %v", domain.ErrFileFormat, err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("%w: world boundaries contain no features", domain.ErrFileFormat)
	}

	records := make([]domain.CountryRecord, 0, len(fc.Features))
	for i, f := range fc.Features {
		popEst, ok := numberProperty(f.Properties, "pop_est")
		if !ok {
			return nil, fmt.Errorf("%w: feature %d has no numeric pop_est", domain.ErrFileFormat, i)
		}
		continent := f.Properties.MustString("continent", "")
		if continent == "" {
			return nil, fmt.Errorf("%w: feature %d has no continent", domain.ErrFileFormat, i)
		}
		records = append(records, domain.CountryRecord{
			Code:      f.Properties.MustString("iso_a3", ""),
			Name:      f.Properties.MustString("name", ""),
			Continent: continent,
			PopEst:    popEst,
			Geometry:  f.Geometry,
		})
	}

	return WithPopShares(records)
}

// WithPopShares sets WorldPopShare on every record from the total of all
// records, so the shares sum to one.
func WithPopShares(records []domain.CountryRecord) ([]domain.CountryRecord, error) {
	total := 0.0
	for _, r := range records {
		total += r.PopEst
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: total pop_est is %v", domain.ErrFileFormat, total)
	}

	out := make([]domain.CountryRecord, len(records))
	for i, r := range records {
		r.WorldPopShare = r.PopEst / total
		out[i] = r
	}
	return out, nil
}

// numberProperty accepts both JSON numbers and numeric strings; older
// Natural Earth exports stored pop_est as text.
func numberProperty(props geojson.Properties, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

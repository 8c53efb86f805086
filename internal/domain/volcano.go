package domain

// Region is a GVP volcanic region, e.g. "Alaska" or "Kamchatka and Mainland Asia".
type Region string

// VolcanoType is the GVP primary volcano type, e.g. "Stratovolcano".
type VolcanoType string

// TectonicSetting is the GVP tectonic setting, e.g. "Subduction zone / Continental crust (>25 km)".
type TectonicSetting string

// Canonical column names after header normalization.
const (
	ColumnNumber          = "volcano number"
	ColumnName            = "volcano name"
	ColumnCountry         = "country"
	ColumnRegion          = "volcanic region"
	ColumnType            = "primary volcano type"
	ColumnTectonicSetting = "tectonic setting"
	ColumnElevation       = "elevation (m)"
	ColumnLatitude        = "latitude"
	ColumnLongitude       = "longitude"
	ColumnLastEruption    = "last known eruption"
)

// RequiredColumns lists the canonical columns a dataset must carry to load.
// The volcano number is optional.
var RequiredColumns = []string{
	ColumnName,
	ColumnCountry,
	ColumnRegion,
	ColumnType,
	ColumnTectonicSetting,
	ColumnElevation,
	ColumnLatitude,
	ColumnLongitude,
	ColumnLastEruption,
}

// RawTable is a dataset as read from its source: a header row and string cells.
// Rows may be shorter than the header; missing cells read as empty.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// Volcano is one row of the normalized table. Nil pointers mark missing values.
type Volcano struct {
	Number          string           `json:"number,omitempty"`
	Name            string           `json:"name"`
	Country         string           `json:"country"`
	Region          Region           `json:"region"`
	Type            VolcanoType      `json:"type"`
	TectonicSetting *TectonicSetting `json:"tectonic_setting"`
	Elevation       *float64         `json:"elevation_m"`
	Latitude        *float64         `json:"latitude"`
	Longitude       *float64         `json:"longitude"`
	LastEruption    *string          `json:"last_known_eruption"`
	EruptionYear    *int             `json:"eruption_year"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (v Volcano) HasCoordinates() bool {
	return v.Latitude != nil && v.Longitude != nil
}

// Key identifies the volcano for downstream consumers: the GVP number when
// the dataset carries one, otherwise the name.
func (v Volcano) Key() string {
	if v.Number != "" {
		return v.Number
	}
	return v.Name
}

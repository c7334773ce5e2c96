package pipeline

// Column names of the Taipei transaction file.
const (
	ColDistrict     = "行政區"
	ColLandArea     = "土地面積"
	ColBuildingArea = "建物總面積"
	ColAge          = "屋齡"
	ColFloor        = "樓層"
	ColTotalFloors  = "總樓層"
	ColUsage        = "用途"
	ColRooms        = "房數"
	ColHalls        = "廳數"
	ColBaths        = "衛數"
	ColElevator     = "電梯"
	ColParking      = "車位類別"
	ColLongitude    = "經度"
	ColLatitude     = "緯度"
	ColTradeDate    = "交易日期"
	ColTotalPrice   = "總價"
)

// Schema describes how the columns of a transaction table are used.
type Schema struct {
	// Target is the column to predict.
	Target string
	// Excluded columns are dropped before training along with the target.
	Excluded []string
	// Categorical columns are one-hot encoded.
	Categorical []string
	// Numeric, when set, is the complete list of allowed passthrough
	// columns. Empty means every non-categorical column.
	Numeric []string
	// Defaults fill columns a query row does not provide.
	Defaults map[string]float64
}

// DefaultSchema returns the layout of the Taipei transaction dataset.
func DefaultSchema() Schema {
	return Schema{
		Target:      ColTotalPrice,
		Excluded:    []string{ColTradeDate},
		Categorical: []string{ColDistrict, ColParking},
		Defaults: map[string]float64{
			ColLandArea:  0,
			ColUsage:     0,
			ColLongitude: 121.5,
			ColLatitude:  25.0,
		},
	}
}

// IsCategorical reports whether name is one of the categorical columns.
func (s Schema) IsCategorical(name string) bool {
	for _, c := range s.Categorical {
		if c == name {
			return true
		}
	}
	return false
}

// NumericColumns returns the columns of names that pass through unchanged.
func (s Schema) NumericColumns(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !s.IsCategorical(n) {
			out = append(out, n)
		}
	}
	return out
}

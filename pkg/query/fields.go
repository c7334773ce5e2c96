package query

import "github.com/kailiang0817/House-Predict/pkg/pipeline"

// Kind is how an answer is parsed.
type Kind int

const (
	Text Kind = iota
	Float
	Int
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	default:
		return "text"
	}
}

// Field is one question put to the user.
type Field struct {
	Column string
	Label  string
	Kind   Kind
}

// DefaultFields are the attributes a buyer can be expected to know, in the
// order they are asked.
func DefaultFields() []Field {
	return []Field{
		{pipeline.ColDistrict, "行政區（例如：大安區）", Text},
		{pipeline.ColBuildingArea, "建物總面積（平方公尺）", Float},
		{pipeline.ColAge, "屋齡（幾年）", Float},
		{pipeline.ColFloor, "樓層（例如：3）", Int},
		{pipeline.ColTotalFloors, "總樓層（例如：10）", Int},
		{pipeline.ColRooms, "房數", Int},
		{pipeline.ColHalls, "廳數", Int},
		{pipeline.ColBaths, "衛浴數", Int},
		{pipeline.ColElevator, "有無電梯（有=1，無=0）", Int},
		{pipeline.ColParking, "車位類別（例如：坡道平面、無）", Text},
	}
}

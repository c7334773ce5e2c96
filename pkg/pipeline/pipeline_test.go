package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/kailiang0817/House-Predict/pkg/data"
	"github.com/kailiang0817/House-Predict/pkg/dataprep"
	"github.com/kailiang0817/House-Predict/pkg/model"
)

func testSchema() Schema {
	return Schema{
		Target:      "price",
		Categorical: []string{"district", "parking"},
	}
}

func trainingSet() (dataframe.DataFrame, []float64) {
	X := dataframe.New(
		series.New([]string{"A", "A", "B", "B", "A", "B", "A", "B"}, series.String, "district"),
		series.New([]float64{30, 45, 60, 80, 100, 25, 55, 70}, series.Float, "area"),
		series.New([]float64{5, 12, 30, 2, 8, 40, 15, 20}, series.Float, "age"),
		series.New([]int{3, 5, 2, 10, 7, 1, 4, 6}, series.Int, "floor"),
		series.New([]int{0, 1, 0, 1, 1, 0, 1, 0}, series.Int, "elevator"),
		series.New([]string{"none", "flat", "none", "flat", "flat", "none", "none", "flat"}, series.String, "parking"),
	)
	y := []float64{1200, 2500, 2600, 5200, 6100, 900, 2300, 4100}
	return X, y
}

func queryRow(district string) dataframe.DataFrame {
	return dataframe.New(
		series.New([]string{district}, series.String, "district"),
		series.New([]float64{50}, series.Float, "area"),
		series.New([]float64{10}, series.Float, "age"),
		series.New([]int{4}, series.Int, "floor"),
		series.New([]int{1}, series.Int, "elevator"),
		series.New([]string{"none"}, series.String, "parking"),
	)
}

func fitted(t *testing.T, schema Schema) *Pipeline {
	t.Helper()
	X, y := trainingSet()
	p := New(schema, model.NewRandomForestRegressor(model.WithNEstimators(10), model.WithSeed(0)))
	if err := p.Fit(X, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	return p
}

func TestPipeline_UnseenDistrict(t *testing.T) {
	p := fitted(t, testSchema())
	price, err := p.Predict(queryRow("C"))
	if err != nil {
		t.Fatalf("Predict with unseen district: %v", err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		t.Fatalf("price = %v, want finite", price)
	}
	if price < 900 || price > 6100 {
		t.Errorf("price %v outside training target range", price)
	}
}

func TestPipeline_ColumnOrderInvariant(t *testing.T) {
	p := fitted(t, testSchema())
	canonical, err := p.Predict(queryRow("B"))
	if err != nil {
		t.Fatal(err)
	}
	reordered := dataframe.New(
		series.New([]string{"none"}, series.String, "parking"),
		series.New([]int{1}, series.Int, "elevator"),
		series.New([]string{"B"}, series.String, "district"),
		series.New([]int{4}, series.Int, "floor"),
		series.New([]float64{10}, series.Float, "age"),
		series.New([]float64{50}, series.Float, "area"),
	)
	got, err := p.Predict(reordered)
	if err != nil {
		t.Fatal(err)
	}
	if got != canonical {
		t.Errorf("reordered prediction %v != canonical %v", got, canonical)
	}
}

func TestPipeline_RefitIsIdempotent(t *testing.T) {
	first, err := fitted(t, testSchema()).Predict(queryRow("A"))
	if err != nil {
		t.Fatal(err)
	}
	p := fitted(t, testSchema())
	X, y := trainingSet()
	if err := p.Fit(X, y); err != nil {
		t.Fatal(err)
	}
	second, err := p.Predict(queryRow("A"))
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("refit changed prediction: %v vs %v", first, second)
	}
}

func TestPipeline_FeatureLayout(t *testing.T) {
	p := fitted(t, testSchema())
	if got := len(p.FeatureNames()); got != 2+2+4 {
		t.Errorf("feature count = %d, want 8", got)
	}
	if got := len(p.Columns()); got != 6 {
		t.Errorf("input columns = %d, want 6", got)
	}
}

func TestPipeline_ColumnsFollowSchema(t *testing.T) {
	X, _ := trainingSet()
	schema := testSchema()
	p := fitted(t, schema)

	want := append([]string{"district", "parking"}, schema.NumericColumns(X.Names())...)
	got := p.Columns()
	if len(got) != len(want) {
		t.Fatalf("columns = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPipeline_Errors(t *testing.T) {
	t.Run("predict before fit", func(t *testing.T) {
		p := New(testSchema(), model.NewRandomForestRegressor(model.WithNEstimators(2)))
		if _, err := p.Predict(queryRow("A")); !errors.Is(err, ErrNotFitted) {
			t.Errorf("err = %v, want ErrNotFitted", err)
		}
	})
	t.Run("missing column at predict", func(t *testing.T) {
		p := fitted(t, testSchema())
		row := queryRow("A").Drop([]string{"age"})
		if _, err := p.Predict(row); !errors.Is(err, data.ErrMissingColumn) {
			t.Errorf("err = %v, want ErrMissingColumn", err)
		}
	})
	t.Run("more than one row", func(t *testing.T) {
		p := fitted(t, testSchema())
		X, _ := trainingSet()
		if _, err := p.Predict(X); err == nil {
			t.Error("expected error for multi-row input")
		}
	})
	t.Run("column outside configured numeric set", func(t *testing.T) {
		schema := testSchema()
		schema.Numeric = []string{"area", "age", "floor"}
		X, y := trainingSet()
		p := New(schema, model.NewRandomForestRegressor(model.WithNEstimators(2)))
		if err := p.Fit(X, y); !errors.Is(err, dataprep.ErrUnknownColumn) {
			t.Errorf("err = %v, want ErrUnknownColumn", err)
		}
	})
	t.Run("target length mismatch", func(t *testing.T) {
		X, y := trainingSet()
		p := New(testSchema(), model.NewRandomForestRegressor(model.WithNEstimators(2)))
		if err := p.Fit(X, y[:3]); err == nil {
			t.Error("expected error")
		}
	})
}

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()
	if s.Target != ColTotalPrice {
		t.Errorf("target = %q", s.Target)
	}
	if !s.IsCategorical(ColDistrict) || !s.IsCategorical(ColParking) || s.IsCategorical(ColBuildingArea) {
		t.Errorf("categorical = %v", s.Categorical)
	}
	want := map[string]float64{ColLandArea: 0, ColUsage: 0, ColLongitude: 121.5, ColLatitude: 25.0}
	for col, v := range want {
		if got, ok := s.Defaults[col]; !ok || got != v {
			t.Errorf("default %s = %v (%v), want %v", col, got, ok, v)
		}
	}
	nums := s.NumericColumns([]string{ColDistrict, ColAge, ColParking, ColFloor})
	if len(nums) != 2 || nums[0] != ColAge || nums[1] != ColFloor {
		t.Errorf("numeric = %v", nums)
	}
}

package app

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/kailiang0817/House-Predict/pkg/config"
	"github.com/kailiang0817/House-Predict/pkg/logging"
	"github.com/kailiang0817/House-Predict/pkg/pipeline"
	"github.com/kailiang0817/House-Predict/pkg/query"
	"github.com/kailiang0817/House-Predict/pkg/report"
)

const header = "行政區,土地面積,建物總面積,屋齡,樓層,總樓層,用途,房數,廳數,衛數,電梯,車位類別,經度,緯度,交易日期,總價"

func writeDataset(t *testing.T, rows int) string {
	t.Helper()
	districts := []string{"大安區", "信義區", "文山區"}
	parking := []string{"無", "坡道平面", "機械車位"}
	rng := rand.New(rand.NewSource(7))

	var b strings.Builder
	b.WriteString(header + "\n")
	for i := 0; i < rows; i++ {
		d := i % len(districts)
		area := 40 + rng.Float64()*120
		age := float64(rng.Intn(40))
		floor := 1 + rng.Intn(12)
		price := area*(60-float64(d)*15) - age*10 + float64(floor)*5
		fmt.Fprintf(&b, "%s,%.1f,%.1f,%.0f,%d,%d,%d,%d,%d,%d,%d,%s,%.4f,%.4f,%s,%.0f\n",
			districts[d], area/4, area, age, floor, floor+5, i%2,
			1+i%4, 1+i%2, 1+i%3, i%2, parking[i%3],
			121.5+rng.Float64()/10, 25.0+rng.Float64()/10,
			"2024-0"+strconv.Itoa(1+i%9)+"-01", price)
	}
	path := filepath.Join(t.TempDir(), "houses.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(path string) *config.Config {
	return &config.Config{
		DataPath:        path,
		DataDelimiter:   ",",
		DataEncoding:    "utf-8",
		TestFraction:    0.2,
		Seed:            0,
		NEstimators:     5,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		NJobs:           2,
	}
}

const answers = "大安區\n85\n10\n5\n12\n3\n2\n2\n1\n坡道平面\n"

func TestInitAndRun(t *testing.T) {
	a, err := Init(testConfig(writeDataset(t, 30)), pipeline.DefaultSchema(), logging.Discard())
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(a.Fields) != 10 {
		t.Errorf("fields = %d, want 10", len(a.Fields))
	}

	var out bytes.Buffer
	if err := a.Run(strings.NewReader(answers), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "萬元") {
		t.Errorf("output has no price line: %q", got)
	}
	found := false
	for _, tier := range []report.Tier{report.TierAffordable, report.TierAboveAverage, report.TierLuxury} {
		if strings.Contains(got, tier.Message()) {
			found = true
		}
	}
	if !found {
		t.Errorf("output has no tier message: %q", got)
	}
}

func TestInit_Deterministic(t *testing.T) {
	path := writeDataset(t, 30)
	var outputs []string
	for i := 0; i < 2; i++ {
		a, err := Init(testConfig(path), pipeline.DefaultSchema(), logging.Discard())
		if err != nil {
			t.Fatal(err)
		}
		var out bytes.Buffer
		if err := a.Run(strings.NewReader(answers), &out); err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, out.String())
	}
	if outputs[0] != outputs[1] {
		t.Errorf("same seed gave different reports:\n%s\n%s", outputs[0], outputs[1])
	}
}

func TestInit_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg := testConfig(filepath.Join(t.TempDir(), "nope.csv"))
		if _, err := Init(cfg, pipeline.DefaultSchema(), logging.Discard()); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("err = %v, want fs.ErrNotExist", err)
		}
	})
	t.Run("missing target", func(t *testing.T) {
		schema := pipeline.DefaultSchema()
		schema.Target = "單價"
		if _, err := Init(testConfig(writeDataset(t, 10)), schema, logging.Discard()); err == nil {
			t.Error("expected error")
		}
	})
}

func TestRun_MalformedAnswer(t *testing.T) {
	a, err := Init(testConfig(writeDataset(t, 20)), pipeline.DefaultSchema(), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	err = a.Run(strings.NewReader("大安區\n八十五\n"), &out)
	if err == nil {
		t.Fatal("expected error for non-numeric area")
	}
	if strings.Contains(out.String(), "萬元") {
		t.Error("report printed despite bad input")
	}

	err = a.Run(strings.NewReader("大安區\n"), &bytes.Buffer{})
	if !errors.Is(err, query.ErrNoInput) {
		t.Errorf("err = %v, want ErrNoInput", err)
	}
}

// Command export writes the test case definitions to JSON, so that
// reference images can be produced by other fractal programs.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/fractal/testcases"
)

func main() {
	var out struct {
		Limit     int            `json:"limit"`
		TestCases []jsonTestCase `json:"testcases"`
	}
	out.Limit = 255

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			out.TestCases = append(out.TestCases, toJSON(category, tc))
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name       string     `json:"name"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	UpperLeft  [2]float64 `json:"upper_left"`
	LowerRight [2]float64 `json:"lower_right"`
}

func toJSON(category string, tc testcases.TestCase) jsonTestCase {
	return jsonTestCase{
		Name:       category + "_" + tc.Name,
		Width:      tc.Width,
		Height:     tc.Height,
		UpperLeft:  [2]float64{tc.UpperLeft.X, tc.UpperLeft.Y},
		LowerRight: [2]float64{tc.LowerRight.X, tc.LowerRight.Y},
	}
}

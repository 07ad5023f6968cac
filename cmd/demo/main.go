package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"discharge-analyzer/internal/chart"
	"discharge-analyzer/internal/config"
	"discharge-analyzer/internal/data"
	"discharge-analyzer/internal/discharge"
	"discharge-analyzer/internal/logging"
	"discharge-analyzer/internal/model"
)

// Demo:
// - Generate one synthetic discharge workbook per temperature (data_<label>.xlsx)
// - Discover them the same way a data_dir config does
// - Run the pipeline and print the report, peaks and charts
func main() {
	outDir := flag.String("out", "results/demo", "Directory for generated workbooks and charts")
	cutoff := flag.Float64("cutoff", config.DefaultCutoffVoltage, "Cut-off voltage (V)")
	seed := flag.Int64("seed", 1, "Random seed for sample jitter")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fail(err)
	}

	rng := rand.New(rand.NewSource(*seed))
	// Warmer cells hold voltage longer and deliver slightly more current.
	profiles := []struct {
		label    string
		currentA float64
		hours    float64
	}{
		{"20°C", 0.50, 3.6},
		{"30°C", 0.55, 3.9},
		{"40°C", 0.58, 4.1},
	}
	for _, p := range profiles {
		samples := synthesize(rng, p.currentA, p.hours)
		path := filepath.Join(*outDir, data.SourcePrefix+p.label+".xlsx")
		if err := data.WriteXLSX(path, "Discharge", samples); err != nil {
			fail(err)
		}
		fmt.Printf("Generated %d samples for %s in %s\n", len(samples), p.label, path)
	}

	cfg := config.Default()
	cfg.CutoffVoltage = *cutoff
	cfg.DataDir = *outDir
	cfg.Output.ChartDir = filepath.Join(*outDir, "charts")
	if err := cfg.Discover(); err != nil {
		fail(err)
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}

	logger := logging.Init(cfg.Logging)
	res, err := discharge.New(cfg, logger).Run()
	if err != nil {
		fail(err)
	}

	fmt.Println()
	if err := discharge.WriteReport(os.Stdout, res); err != nil {
		fail(err)
	}
	fmt.Println()
	if err := discharge.WritePeaks(os.Stdout, res); err != nil {
		fail(err)
	}

	if len(res.Conditions) > 0 {
		paths, err := chart.RenderAll(cfg.Output.ChartDir, res)
		if err != nil {
			fail(err)
		}
		fmt.Printf("\nWrote %d charts to %s\n", len(paths), cfg.Output.ChartDir)
	}
}

// synthesize produces a 2S pack discharge: voltage sags from 8.4 V to 5.0 V
// over hours, sampled roughly every 10 s.
func synthesize(rng *rand.Rand, currentA, hours float64) []model.Sample {
	end := hours * 3600
	var out []model.Sample
	for t := 0.0; t <= end; t += 8 + 4*rng.Float64() {
		frac := t / end
		// Flat plateau with a knee near the end of discharge.
		v := 8.4 - 1.6*frac - 1.8*math.Pow(frac, 8) + 0.01*rng.NormFloat64()
		i := currentA * (1 + 0.02*rng.NormFloat64())
		out = append(out, model.Sample{
			Time:    math.Round(t*10) / 10,
			Voltage: v,
			Current: i,
			Power:   v * i,
		})
	}
	return out
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

//go:build analysis

// Command analysis benchmarks keygen/sign/verify latency and renders the
// distributions as an HTML histogram page plus a stats JSON report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"loquat-signature/digest"
	"loquat-signature/internal/timing"
	"loquat-signature/loquat"
)

type summaryStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	IQR    float64 `json:"iqr"`
}

// ------------------------------ stats utilities ------------------------------

func computeStats(x []float64) summaryStats {
	n := len(x)
	if n == 0 {
		return summaryStats{}
	}
	cp := append([]float64(nil), x...)
	sort.Float64s(cp)
	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)
	var variance float64
	for _, v := range x {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)
	q1 := quantileSorted(cp, 0.25)
	q3 := quantileSorted(cp, 0.75)
	return summaryStats{
		Count:  n,
		Mean:   mean,
		Std:    math.Sqrt(variance),
		Min:    cp[0],
		Q1:     q1,
		Median: quantileSorted(cp, 0.5),
		Q3:     q3,
		Max:    cp[n-1],
		IQR:    q3 - q1,
	}
}

func quantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func computeHistogram(values []float64, nbins int) ([]float64, []int) {
	minv, maxv := values[0], values[0]
	for _, v := range values {
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	if maxv == minv {
		maxv = minv + 1
	}
	edges := make([]float64, nbins+1)
	width := (maxv - minv) / float64(nbins)
	for i := range edges {
		edges[i] = minv + float64(i)*width
	}
	counts := make([]int, nbins)
	for _, v := range values {
		idx := int((v - minv) / width)
		if idx >= nbins {
			idx = nbins - 1
		}
		counts[idx]++
	}
	return edges, counts
}

// ------------------------- plotting: go-echarts HTML -------------------------

func toBarItems(vals []int) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

func newHistogramChart(title string, values []float64, stats summaryStats) *charts.Bar {
	nbins := 20
	if len(values) < nbins {
		nbins = len(values)
	}
	edges, counts := computeHistogram(values, nbins)
	xLabels := make([]string, nbins)
	for i := 0; i < nbins; i++ {
		center := 0.5 * (edges[i] + edges[i+1])
		xLabels[i] = fmt.Sprintf("%.3f", center)
	}
	bar := charts.NewBar()
	subtitle := fmt.Sprintf("n=%d, mean=%.3fms, std=%.3fms, median=%.3fms, IQR=%.3fms",
		stats.Count, stats.Mean, stats.Std, stats.Median, stats.IQR)
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "inside"}, opts.DataZoom{Type: "slider"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(xLabels).
		AddSeries("count", toBarItems(counts)).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

func saveJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ------------------------------- main routine -------------------------------

func main() {
	runs := flag.Int("runs", 100, "number of keygen/sign/verify runs")
	algName := flag.String("alg", "sha3-256", "digest algorithm: sha3-256|shake128|poseidon|griffin")
	outDir := flag.String("out", "Measure_Reports", "output directory for reports")
	flag.Parse()

	alg, err := digest.Parse(*algName)
	if err != nil {
		log.Fatalf("digest: %v", err)
	}
	h, err := digest.New(alg)
	if err != nil {
		log.Fatalf("digest: %v", err)
	}
	scheme := loquat.NewScheme(h)
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("mkdir %s: %v", *outDir, err)
	}

	col := timing.NewCollector()
	for i := 0; i < *runs; i++ {
		t0 := time.Now()
		kp, err := scheme.Keygen(nil)
		if err != nil {
			log.Fatalf("run %d keygen: %v", i, err)
		}
		col.Track(t0, "keygen")

		msg := []byte(fmt.Sprintf("analysis-%d", i))
		t1 := time.Now()
		sig, err := scheme.Sign(kp.SecretKey, msg)
		if err != nil {
			log.Fatalf("run %d sign: %v", i, err)
		}
		col.Track(t1, "sign")

		t2 := time.Now()
		ok := scheme.Verify(kp.PublicKey, msg, sig)
		col.Track(t2, "verify")
		if !ok {
			log.Fatalf("run %d: benchmark signature failed to verify", i)
		}
	}
	keygenMs := col.Millis("keygen")
	signMs := col.Millis("sign")
	verifyMs := col.Millis("verify")

	outStats := map[string]summaryStats{
		"keygen_ms": computeStats(keygenMs),
		"sign_ms":   computeStats(signMs),
		"verify_ms": computeStats(verifyMs),
	}
	ts := time.Now().Format("20060102_150405")
	jsonPath := filepath.Join(*outDir, fmt.Sprintf("latency_stats_%s.json", ts))
	if err := saveJSON(jsonPath, outStats); err != nil {
		log.Printf("warn: save stats: %v", err)
	}

	page := components.NewPage()
	add := func(name string, vals []float64) {
		if len(vals) == 0 {
			return
		}
		page.AddCharts(newHistogramChart(name, vals, computeStats(vals)))
	}
	add(fmt.Sprintf("keygen latency (ms, %s)", alg), keygenMs)
	add(fmt.Sprintf("sign latency (ms, %s)", alg), signMs)
	add(fmt.Sprintf("verify latency (ms, %s)", alg), verifyMs)

	htmlPath := filepath.Join(*outDir, fmt.Sprintf("latency_histograms_%s.html", ts))
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}
	fmt.Println("Histogram page:", htmlPath)
	fmt.Println("Stats JSON:", jsonPath)
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
)

type modelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

type askRequest struct {
	Text    string `json:"text"`
	Persona string `json:"persona"`
	ModelID string `json:"model_id"`
}

type askResponse struct {
	Answer    string `json:"answer"`
	Persona   string `json:"persona"`
	Model     string `json:"model"`
	Notice    bool   `json:"notice"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type result struct {
	Sample    string
	Persona   string
	Chars     int
	Model     string
	Run       int
	ElapsedMs int64
	WallMs    int64
	OutChars  int
	Error     string
}

var (
	baseURL string
	apiKey  string
	runs    int
	model   string
	quality bool
	jsonOut string
	warmup  bool
)

var errFailures = errors.New("one or more requests failed")

var rootCmd = &cobra.Command{
	Use:          "benchmark",
	Short:        "Measure /api/ask latency per persona",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&baseURL, "url", "http://localhost:8090", "API base URL")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "API key (optional)")
	rootCmd.Flags().IntVar(&runs, "runs", 3, "Number of runs per sample")
	rootCmd.Flags().StringVar(&model, "model", "", "Model ID to use (default: first available)")
	rootCmd.Flags().BoolVar(&quality, "quality", false, "Quality mode: show question/answer for each sample (1 run, no timing table)")
	rootCmd.Flags().StringVar(&jsonOut, "json", "", "Write results to JSON file (e.g. results.json)")
	rootCmd.Flags().BoolVar(&warmup, "warmup", false, "Run one warmup request per sample before measuring")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	base := strings.TrimRight(baseURL, "/")
	client := &http.Client{Timeout: 180 * time.Second}

	modelID := model
	if modelID == "" {
		var err error
		modelID, err = discoverModel(client, base, apiKey)
		if err != nil {
			return err
		}
	}

	if quality {
		return runQualityMode(client, base, apiKey, modelID)
	}

	fmt.Printf("Benchmarking against %s using model: %s (%d runs per sample", base, modelID, runs)
	if warmup {
		fmt.Print(", warmup enabled")
	}
	fmt.Println(")")

	var results []result
	var failures int
	for _, sample := range Samples {
		if warmup {
			fmt.Printf("  Warming up %s...", sample.Name)
			w := benchmark(client, base, apiKey, modelID, sample, 0)
			if w.Error != "" {
				fmt.Printf(" FAILED (%s)\n", w.Error)
			} else {
				fmt.Printf(" %dms (discarded)\n", w.ElapsedMs)
			}
		}
		for i := 1; i <= runs; i++ {
			fmt.Printf("  Running %s (run %d/%d)...", sample.Name, i, runs)
			r := benchmark(client, base, apiKey, modelID, sample, i)
			results = append(results, r)
			if r.Error != "" {
				fmt.Printf(" FAILED (%s)\n", r.Error)
				failures++
			} else {
				fmt.Printf(" %dms\n", r.ElapsedMs)
			}
		}
	}

	fmt.Println()
	printTable(results)
	printSummary(results)

	if jsonOut != "" {
		if err := writeJSON(jsonOut, results, base, modelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		} else {
			fmt.Printf("\nResults written to %s\n", jsonOut)
		}
	}

	if failures > 0 {
		return errFailures
	}
	return nil
}

func discoverModel(client *http.Client, base, apiKey string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, base+"/api/models", nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("models endpoint returned %d: %s", resp.StatusCode, body)
	}

	var models []modelInfo
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return "", fmt.Errorf("decoding models: %w", err)
	}
	if len(models) == 0 {
		return "", errors.New("no models available")
	}
	return models[0].ID, nil
}

// ask posts one sample and decodes the answer. Notice answers count as
// failures: they mean the server has no credential and never reached the model.
func ask(client *http.Client, base, apiKey, modelID string, sample Sample) (askResponse, int64, error) {
	payload, _ := json.Marshal(askRequest{Text: sample.Text, Persona: sample.Persona, ModelID: modelID})

	req, err := http.NewRequest(http.MethodPost, base+"/api/ask", strings.NewReader(string(payload)))
	if err != nil {
		return askResponse{}, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	start := time.Now()
	resp, err := client.Do(req)
	wallMs := time.Since(start).Milliseconds()
	if err != nil {
		return askResponse{}, wallMs, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return askResponse{}, wallMs, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var ar askResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return askResponse{}, wallMs, err
	}
	if ar.Notice {
		return ar, wallMs, errors.New("credential missing on server")
	}
	return ar, wallMs, nil
}

func benchmark(client *http.Client, base, apiKey, modelID string, sample Sample, run int) result {
	r := result{
		Sample:  sample.Name,
		Persona: sample.Persona,
		Chars:   utf8.RuneCountInString(sample.Text),
		Run:     run,
	}

	ar, wallMs, err := ask(client, base, apiKey, modelID, sample)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Model = ar.Model
	r.ElapsedMs = ar.ElapsedMs
	r.WallMs = wallMs
	r.OutChars = utf8.RuneCountInString(ar.Answer)
	return r
}

func printTable(results []result) {
	fmt.Println("| Sample | Persona | Chars | Model | Run | Elapsed (ms) | Wall (ms) | Out Chars | Ratio |")
	fmt.Println("|--------|---------|-------|-------|-----|--------------|-----------|-----------|-------|")
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("| %-8s | %-7s | %5d | %-20s | %d | %12s | %9s | %9s | %5s |\n",
				r.Sample, r.Persona, r.Chars, "-", r.Run, "FAIL", "-", "-", "-")
			continue
		}
		ratio := float64(r.OutChars) / float64(r.Chars)
		fmt.Printf("| %-8s | %-7s | %5d | %-20s | %d | %12d | %9d | %9d | %5.2f |\n",
			r.Sample, r.Persona, r.Chars, r.Model, r.Run, r.ElapsedMs, r.WallMs, r.OutChars, ratio)
	}
}

func runQualityMode(client *http.Client, base, apiKey, modelID string) error {
	fmt.Printf("Quality test against %s using model: %s\n", base, modelID)
	fmt.Println(strings.Repeat("=", 72))

	var failures int
	for i, sample := range QualitySamples {
		fmt.Printf("\n--- %d/%d: %s [persona %s] ---\n", i+1, len(QualitySamples), sample.Name, sample.Persona)
		fmt.Printf("Q: %s\n", sample.Text)

		ar, _, err := ask(client, base, apiKey, modelID, sample)
		if err != nil {
			fmt.Printf("ERR: %s\n", err)
			failures++
			continue
		}

		fmt.Printf("A: %s\n", ar.Answer)
		fmt.Printf("   [%dms, %d->%d chars]\n", ar.ElapsedMs,
			utf8.RuneCountInString(sample.Text), utf8.RuneCountInString(ar.Answer))
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 72))
	fmt.Printf("Done: %d/%d passed\n", len(QualitySamples)-failures, len(QualitySamples))
	if failures > 0 {
		return errFailures
	}
	return nil
}

func printSummary(results []result) {
	var ok []result
	for _, r := range results {
		if r.Error == "" {
			ok = append(ok, r)
		}
	}

	failed := len(results) - len(ok)

	if len(ok) == 0 {
		fmt.Printf("\nSummary: all %d runs failed\n", len(results))
		return
	}

	var totalElapsed int64
	minElapsed, maxElapsed := ok[0].ElapsedMs, ok[0].ElapsedMs
	minSample, maxSample := ok[0].Sample, ok[0].Sample
	perPersona := make(map[string][]int64)

	for _, r := range ok {
		totalElapsed += r.ElapsedMs
		perPersona[r.Persona] = append(perPersona[r.Persona], r.ElapsedMs)
		if r.ElapsedMs < minElapsed {
			minElapsed = r.ElapsedMs
			minSample = r.Sample
		}
		if r.ElapsedMs > maxElapsed {
			maxElapsed = r.ElapsedMs
			maxSample = r.Sample
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Avg elapsed: %dms\n", totalElapsed/int64(len(ok)))
	for _, p := range []string{"A", "B", "C"} {
		if xs := perPersona[p]; len(xs) > 0 {
			fmt.Printf("- Persona %s avg: %dms\n", p, mean(xs))
		}
	}
	fmt.Printf("- Min elapsed: %dms (%s)\n", minElapsed, minSample)
	fmt.Printf("- Max elapsed: %dms (%s)\n", maxElapsed, maxSample)
	fmt.Printf("- Total runs: %d (%d ok, %d failed)\n", len(results), len(ok), failed)
}

func mean(xs []int64) int64 {
	var sum int64
	for _, x := range xs {
		sum += x
	}
	return sum / int64(len(xs))
}

type jsonReport struct {
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Model     string   `json:"model"`
	Results   []result `json:"results"`
}

func writeJSON(path string, results []result, base, modelID string) error {
	report := jsonReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       base,
		Model:     modelID,
		Results:   results,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Command loadgen posts synthetic recommend and click traffic against a
// running server so the full log-train-reload loop can be exercised locally.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

var categories = []string{"wash", "maintenance", "detailing"}

type recommendResponse struct {
	RequestID       string `json:"request_id"`
	Mode            string `json:"mode"`
	Recommendations []struct {
		ID     int64   `json:"id"`
		Rating float64 `json:"rating"`
	} `json:"recommendations"`
}

func main() {
	addr := flag.String("addr", "http://localhost:9080", "server base URL")
	requests := flag.Int("requests", 100, "number of recommend requests")
	concurrency := flag.Int("concurrency", 8, "concurrent workers")
	clickRate := flag.Float64("click-rate", 0.4, "probability of clicking a result")
	learned := flag.Bool("learned", false, "request learned ranking")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if err := run(context.Background(), *addr, *requests, *concurrency, *clickRate, *learned, *seed); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, addr string, requests, concurrency int, clickRate float64, learned bool, seed int64) error {
	client := &http.Client{Timeout: 10 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := 0; i < requests; i++ {
		g.Go(func() error {
			// Per-goroutine rand; the shared source would contend.
			rng := rand.New(rand.NewSource(seed + int64(i)))
			return oneSession(ctx, client, addr, rng, clickRate, learned)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("posted %d recommend requests to %s\n", requests, addr)
	return nil
}

// oneSession requests recommendations for a random user and maybe clicks
// one result, preferring higher-rated candidates the way real users do.
func oneSession(ctx context.Context, client *http.Client, addr string, rng *rand.Rand, clickRate float64, learned bool) error {
	category := categories[rng.Intn(len(categories))]
	lat := 52.52 + rng.Float64()*0.04 - 0.02
	lng := 13.405 + rng.Float64()*0.04 - 0.02
	userID := fmt.Sprintf("u-%03d", rng.Intn(50))

	rec, err := postRecommend(ctx, client, addr, map[string]any{
		"category": category,
		"lat":      lat,
		"lng":      lng,
		"user_id":  userID,
		"learned":  learned,
	})
	if err != nil {
		return err
	}
	if len(rec.Recommendations) == 0 || rng.Float64() >= clickRate {
		return nil
	}

	// Bias clicks toward the top of the list.
	pos := 0
	if len(rec.Recommendations) > 1 && rng.Float64() < 0.3 {
		pos = 1 + rng.Intn(len(rec.Recommendations)-1)
	}
	return postClick(ctx, client, addr, map[string]any{
		"request_id":   rec.RequestID,
		"category":     category,
		"lat":          lat,
		"lng":          lng,
		"candidate_id": rec.Recommendations[pos].ID,
		"position":     pos,
		"user_id":      userID,
	})
}

func postRecommend(ctx context.Context, client *http.Client, addr string, body map[string]any) (*recommendResponse, error) {
	resp, err := postJSON(ctx, client, addr+"/api/recommend", body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommend returned %s", resp.Status)
	}
	var rec recommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode recommend response: %w", err)
	}
	return &rec, nil
}

func postClick(ctx context.Context, client *http.Client, addr string, body map[string]any) error {
	resp, err := postJSON(ctx, client, addr+"/api/click", body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("click returned %s", resp.Status)
	}
	return nil
}

func postJSON(ctx context.Context, client *http.Client, url string, body map[string]any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", url, err)
	}
	return resp, nil
}

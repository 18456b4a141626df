package members

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"statehouse-backend/lib/telemetry"
)

var tracer = otel.Tracer("statehouse.services.members")

const (
	baseURL      = "https://ballotpedia.org"
	fetchRetries = 3
)

type Scraper struct {
	http     *resty.Client
	cacheDir string
	useCache bool
}

type ScraperOptions struct {
	CacheDir string
	// NoCache forces a re-download even when a cached page exists.
	NoCache bool
}

func NewScraper(opts ScraperOptions) *Scraper {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (compatible; ElectionsBot/1.0)")
	client.SetTimeout(time.Second * 30)

	// the source throttles aggressively, keep well under one page per second
	limiter := rate.NewLimiter(rate.Every(1500*time.Millisecond), 1)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, "statehouse.services.members")

	return &Scraper{
		http:     client,
		cacheDir: opts.CacheDir,
		useCache: !opts.NoCache,
	}
}

func cacheKey(pageName string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_")
	return replacer.Replace(pageName) + ".html"
}

// FetchPage returns the raw HTML for one source page, consulting the
// on-disk cache first. A 202 response means the CDN is still warming the
// page and a 429 means we are throttled; both are retried with backoff.
func (s *Scraper) FetchPage(ctx context.Context, pageName string) (string, error) {
	ctx, span := tracer.Start(ctx, "FetchPage")
	defer span.End()
	span.SetAttributes(attribute.String("page", pageName))

	cacheFile := filepath.Join(s.cacheDir, cacheKey(pageName))
	if s.useCache {
		if cached, err := os.ReadFile(cacheFile); err == nil {
			return string(cached), nil
		}
	}

	var body string
	for attempt := 0; attempt < fetchRetries; attempt++ {
		resp, err := s.http.R().SetContext(ctx).Get("/" + pageName)
		if err != nil {
			return "", fmt.Errorf("fetch %s: %w", pageName, err)
		}
		switch resp.StatusCode() {
		case 202, 429:
			wait := time.Duration(attempt+1) * 5 * time.Second
			slog.WarnContext(ctx, "page not ready, backing off",
				"page", pageName, "status", resp.StatusCode(), "wait", wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			continue
		}
		if resp.IsError() {
			return "", fmt.Errorf("fetch %s: status %d", pageName, resp.StatusCode())
		}
		body = resp.String()
		break
	}
	if body == "" {
		return "", fmt.Errorf("fetch %s: retries exhausted", pageName)
	}

	if err := os.MkdirAll(s.cacheDir, 0755); err == nil {
		if err := os.WriteFile(cacheFile, []byte(body), 0644); err != nil {
			slog.WarnContext(ctx, "failed to cache page", "page", pageName, "err", err)
		}
	}
	return body, nil
}

// ScrapeState downloads and parses every chamber roster for one state.
// A failed page is logged and contributes no records.
func (s *Scraper) ScrapeState(ctx context.Context, state string) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "ScrapeState")
	defer span.End()
	span.SetAttributes(attribute.String("state", state))

	pages, ok := StatePages[state]
	if !ok {
		return nil, fmt.Errorf("unknown state %q", state)
	}

	var records []Record
	for _, page := range pages {
		html, err := s.FetchPage(ctx, page.PageName)
		if err != nil {
			slog.WarnContext(ctx, "roster page unavailable, skipping",
				"state", state, "chamber", page.Chamber, "err", err)
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			slog.WarnContext(ctx, "roster page unparseable, skipping",
				"state", state, "chamber", page.Chamber, "err", err)
			continue
		}
		parsed, err := ParseMemberTable(doc, state, page.Chamber)
		if err != nil {
			slog.WarnContext(ctx, "no member table, skipping",
				"state", state, "chamber", page.Chamber, "err", err)
			continue
		}
		vacant := 0
		for _, r := range parsed {
			if r.IsVacant {
				vacant++
			}
		}
		slog.InfoContext(ctx, "parsed chamber roster",
			"state", state, "chamber", page.Chamber,
			"members", len(parsed), "vacant", vacant)
		records = append(records, parsed...)
	}
	return records, nil
}

// ScrapeAll scrapes every state, or just the given ones.
func (s *Scraper) ScrapeAll(ctx context.Context, states []string) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "ScrapeAll")
	defer span.End()

	if len(states) == 0 {
		for state := range StatePages {
			states = append(states, state)
		}
		sort.Strings(states)
	}

	var all []Record
	for _, state := range states {
		records, err := s.ScrapeState(ctx, state)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}

// WriteArtifact saves scraped records so the audit step can run offline.
// When merging, existing records for the scraped states are replaced.
func WriteArtifact(path string, records []Record, merge bool) error {
	if merge {
		existing, err := ReadArtifact(path)
		if err == nil {
			scraped := map[string]bool{}
			for _, r := range records {
				scraped[r.State] = true
			}
			var kept []Record
			for _, r := range existing {
				if !scraped[r.State] {
					kept = append(kept, r)
				}
			}
			records = append(kept, records...)
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ReadArtifact(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// Package research enriches actionable gaps with how the new holder was
// installed and why the seat fell vacant, inferred from the individual
// district pages.
package research

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"statehouse-backend/lib/telemetry"
	"statehouse-backend/services/members"
	"statehouse-backend/services/reconcile"
)

var tracer = otel.Tracer("statehouse.services.research")

const baseURL = "https://ballotpedia.org"

// chamberURLPart maps store chamber names to their URL form.
var chamberURLPart = map[string]string{
	"Senate":             "State_Senate",
	"House":              "House_of_Representatives",
	"Assembly":           "State_Assembly",
	"House of Delegates": "House_of_Delegates",
	"Legislature":        "Legislature",
}

var chamberURLOverrides = map[[2]string]string{
	{"NJ", "Assembly"}: "General_Assembly",
}

// DistrictPagePath builds the source page path for one district.
func DistrictPagePath(state, chamber, district string) string {
	// Nebraska's unicameral legislature uses Senate-style district pages
	if state == "NE" {
		return fmt.Sprintf("Nebraska_State_Senate_District_%s", district)
	}
	part, ok := chamberURLOverrides[[2]string{state, chamber}]
	if !ok {
		part = chamberURLPart[chamber]
		if part == "" {
			part = strings.ReplaceAll(chamber, " ", "_")
		}
	}
	return fmt.Sprintf("%s_%s_District_%s", members.StateNames[state], part, district)
}

// PageFacts is what a district page yields about a transition.
type PageFacts struct {
	// InstallationMethod is "appointed" or "special_election" when the
	// page says how the current holder took office.
	InstallationMethod string
	// VacancyReason is the store end_reason vocabulary, or a research
	// label the planner maps onto it.
	VacancyReason string
	Notes         string
}

var appointedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)appointed.*?to\s+(?:the\s+)?(?:seat|office|district)`),
	regexp.MustCompile(`(?i)was\s+appointed\s+(?:to|by)`),
	regexp.MustCompile(`(?i)Governor.*?appointed`),
	regexp.MustCompile(`(?i)appointed\s+by\s+(?:the\s+)?(?:Governor|governor)`),
}

var appointedByRegex = regexp.MustCompile(`appointed\s+by\s+(?:the\s+)?(?:Governor\s+)?([A-Z][a-z]+\s+[A-Z][a-z]+)`)

var specialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)special\s+election`),
	regexp.MustCompile(`(?i)won\s+(?:a\s+)?special`),
}

// vacancy reasons in priority order; the first pattern found wins
var reasonPatterns = []struct {
	re     *regexp.Regexp
	reason string
}{
	{regexp.MustCompile(`(?i)resigned|resignation`), "resigned"},
	{regexp.MustCompile(`(?i)died|death|passed away`), "died"},
	{regexp.MustCompile(`(?i)expelled|expulsion|removed`), "removed"},
	{regexp.MustCompile(`(?i)appointed to|took a position|left to serve`), "appointed_elsewhere"},
	{regexp.MustCompile(`(?i)(?:elected to|won election to)\s+(?:the\s+)?(?:Senate|House|Congress|U\.S\.)`), "appointed_elsewhere"},
	{regexp.MustCompile(`(?i)term.?limited|term limit`), "term_expired"},
}

// ParsePage scans a district page for transition facts. The page prose
// varies too much for structured extraction, so this is pattern matching
// over the raw HTML with explicit priority orders.
func ParsePage(html string) PageFacts {
	var facts PageFacts

	for _, re := range appointedPatterns {
		if re.MatchString(html) {
			facts.InstallationMethod = "appointed"
			if m := appointedByRegex.FindStringSubmatch(html); m != nil {
				facts.Notes = "Appointed by " + m[1] + ". "
			}
			break
		}
	}
	if facts.InstallationMethod == "" {
		for _, re := range specialPatterns {
			if re.MatchString(html) {
				facts.InstallationMethod = "special_election"
				break
			}
		}
	}

	for _, rp := range reasonPatterns {
		if rp.re.MatchString(html) {
			facts.VacancyReason = rp.reason
			break
		}
	}

	return facts
}

type Researcher struct {
	http     *resty.Client
	cacheDir string
	useCache bool
}

type ResearcherOptions struct {
	CacheDir string
	NoCache  bool
}

func NewResearcher(opts ResearcherOptions) *Researcher {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (compatible; ElectionsBot/1.0)")
	client.SetTimeout(time.Second * 30)

	limiter := rate.NewLimiter(rate.Every(1500*time.Millisecond), 1)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(client, "statehouse.services.research")

	return &Researcher{
		http:     client,
		cacheDir: opts.CacheDir,
		useCache: !opts.NoCache,
	}
}

func (r *Researcher) fetchDistrictPage(ctx context.Context, state, chamber, district string) (string, error) {
	ctx, span := tracer.Start(ctx, "fetchDistrictPage")
	defer span.End()
	span.SetAttributes(
		attribute.String("state", state),
		attribute.String("chamber", chamber),
		attribute.String("district", district),
	)

	replacer := strings.NewReplacer(" ", "_", "/", "_")
	cacheFile := filepath.Join(r.cacheDir, replacer.Replace(state+"_"+chamber+"_"+district)+".html")
	if r.useCache {
		if cached, err := os.ReadFile(cacheFile); err == nil {
			return string(cached), nil
		}
	}

	path := DistrictPagePath(state, chamber, district)
	resp, err := r.http.R().SetContext(ctx).Get("/" + path)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() == 202 {
		slog.InfoContext(ctx, "page warming, retrying", "path", path)
		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		resp, err = r.http.R().SetContext(ctx).Get("/" + path)
		if err != nil {
			return "", err
		}
	}
	if resp.StatusCode() == 404 {
		return "", fmt.Errorf("district page not found: %s", path)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch %s: status %d", path, resp.StatusCode())
	}

	body := resp.String()
	if err := os.MkdirAll(r.cacheDir, 0755); err == nil {
		if err := os.WriteFile(cacheFile, []byte(body), 0644); err != nil {
			slog.WarnContext(ctx, "failed to cache page", "path", path, "err", err)
		}
	}
	return body, nil
}

// needsResearch reports whether a gap's action depends on facts only the
// district page has.
func needsResearch(g reconcile.Gap) bool {
	switch g.Action {
	case reconcile.ActionCreateSeatTerm, reconcile.ActionCloseSeatTerm:
		return true
	case reconcile.ActionReplaceHolder:
		return g.Classification == "real_replacement"
	}
	return false
}

// Enrich fills in start and end reasons for the actionable gaps by
// reading each district page. A page that cannot be fetched leaves the
// gap unenriched; the planner falls back to its defaults.
func (r *Researcher) Enrich(ctx context.Context, gaps []reconcile.Gap) []reconcile.Gap {
	ctx, span := tracer.Start(ctx, "Enrich")
	defer span.End()

	enriched := make([]reconcile.Gap, len(gaps))
	copy(enriched, gaps)

	for i := range enriched {
		g := &enriched[i]
		if !needsResearch(*g) {
			continue
		}
		html, err := r.fetchDistrictPage(ctx, g.State, g.Chamber, g.District)
		if err != nil {
			slog.WarnContext(ctx, "district page unavailable, using defaults",
				"seat", g.SeatLabel, "err", err)
			continue
		}
		facts := ParsePage(html)
		if facts.InstallationMethod != "" {
			g.StartReason = facts.InstallationMethod
		}
		if facts.VacancyReason != "" {
			g.EndReason = facts.VacancyReason
		}
		if facts.Notes != "" {
			g.Notes += facts.Notes
		}
		slog.InfoContext(ctx, "researched gap",
			"seat", g.SeatLabel, "start_reason", g.StartReason, "end_reason", g.EndReason)
	}
	return enriched
}

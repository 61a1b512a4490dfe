// Command genwages scrapes the prefectural minimum wage table (地域別最低賃金)
// published by the Ministry of Health, Labour and Welfare and writes it as
// a dataset file readable by package minwage.
//
// The table lists, per prefecture, the hourly amount and its effective
// date (発効年月日). Run it once against the page announcing the coming
// revision to produce next.json; promote the previous next.json to
// current.json when the revision takes effect.
//
// Usage:
//
//	go run ./cmd/genwages -epoch next
//	go run ./cmd/genwages -config minwage.toml -epoch current -url https://www.mhlw.go.jp/...
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"

	minwage "github.com/rabitt1ove/minimum-wages-jp"
)

const (
	// MHLW page listing the minimum wage of every prefecture.
	defaultURL = "https://www.mhlw.go.jp/stf/seisakunitsuite/bunya/koyou_roudou/roudoukijun/minimumichiran/"

	httpTimeout = 30 * time.Second
	maxRetries  = 3

	// Maximum response size to prevent memory exhaustion.
	maxHTMLResponseSize = 5 * 1024 * 1024

	userAgent = "minimum-wages-jp-generator/1.0 (https://github.com/rabitt1ove/minimum-wages-jp)"
)

// retryBaseDelay is the base delay between retry attempts (variable for testing).
var retryBaseDelay = 2 * time.Second

// allowedHosts is the set of hostnames the table may be fetched from.
var allowedHosts = map[string]bool{
	"www.mhlw.go.jp": true,
}

// record is one row of the output dataset, in the source field naming
// that minwage's loader maps.
type record struct {
	PrefectureName     minwage.Prefecture `json:"prefecture_name"`
	HourlyWage         int                `json:"hourly_wage"`
	EffectiveStartDate string             `json:"effective_start_date"`
}

type document struct {
	MinimumWages []record `json:"minimum_wages"`
}

func main() {
	configPath := flag.String("config", "minwage.toml", "config file providing data_dir")
	epoch := flag.String("epoch", string(minwage.Next), `dataset to write: "current" or "next"`)
	output := flag.String("output", "", "output file path (default <data_dir>/<epoch>.json)")
	source := flag.String("url", defaultURL, "MHLW page containing the minimum wage table")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("genwages: ")

	path, err := outputPath(*configPath, *epoch, *output)
	if err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	if err := validateURL(*source); err != nil {
		log.Fatalf("invalid URL: %v", err)
	}

	client := &http.Client{Timeout: httpTimeout}

	body, err := fetchWithRetry(client, *source)
	if err != nil {
		log.Fatalf("failed to fetch table: %v", err)
	}

	records, err := parseTable(body)
	if err != nil {
		log.Fatalf("failed to parse table: %v", err)
	}

	if err := validate(records); err != nil {
		log.Fatalf("validation failed: %v", err)
	}

	out, err := encode(records)
	if err != nil {
		log.Fatalf("failed to encode dataset: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}

	log.Printf("wrote %d prefectures to %s", len(records), path)
}

// outputPath resolves where the dataset is written. An explicit output
// wins; otherwise the file goes into the configured data directory.
func outputPath(configPath, epoch, output string) (string, error) {
	switch minwage.Epoch(epoch) {
	case minwage.Current, minwage.Next:
	default:
		return "", fmt.Errorf("unknown epoch %q", epoch)
	}
	if output != "" {
		return output, nil
	}
	cfg, err := minwage.LoadConfig(configPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.DataDir, epoch+".json"), nil
}

// validateURL checks that a URL points to an allowed host (SSRF prevention).
func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if parsed.Scheme != "https" {
		return fmt.Errorf("URL %q: only HTTPS is allowed", rawURL)
	}
	if !allowedHosts[parsed.Hostname()] {
		return fmt.Errorf("URL %q: host %q is not in the allowed list", rawURL, parsed.Hostname())
	}
	return nil
}

// fetchWithRetry fetches a URL with exponential backoff retries and
// returns the body decoded to UTF-8.
func fetchWithRetry(client *http.Client, url string) (io.Reader, error) {
	var lastErr error
	for attempt := range maxRetries {
		if attempt > 0 {
			delay := retryBaseDelay * time.Duration(1<<(attempt-1))
			log.Printf("  retrying in %v (attempt %d/%d)", delay, attempt+1, maxRetries)
			time.Sleep(delay)
		}

		log.Printf("fetching %s", url)
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("GET %s: %w", url, err)
			log.Printf("  failed: %v", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
			log.Printf("  failed: status %d (retryable)", resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxHTMLResponseSize))
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("GET %s: reading body: %w", url, err)
			log.Printf("  failed: %v", err)
			continue
		}
		return decodeCharset(bytes.NewReader(body), resp.Header.Get("Content-Type"))
	}
	return nil, lastErr
}

// decodeCharset wraps r in a decoder for the charset named in contentType.
// Without a charset parameter the body is assumed to be UTF-8.
func decodeCharset(r io.Reader, contentType string) (io.Reader, error) {
	if contentType == "" {
		return r, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("content type %q: %w", contentType, err)
	}
	name := params["charset"]
	if name == "" {
		return r, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", name, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// normalize folds full-width characters to their narrow forms and drops
// all white space, so "１，１６３　円" becomes "1,163円".
func normalize(s string) string {
	return strings.Join(strings.Fields(width.Fold.String(s)), "")
}

// parseTable extracts one record per prefecture row from the HTML page.
// Rows whose first cell is not a prefecture name are skipped.
func parseTable(r io.Reader) ([]record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var (
		records []record
		seen    = make(map[minwage.Prefecture]bool)
		rowErr  error
	)
	doc.Find("table tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("th, td")
		if cells.Length() < 3 {
			return true
		}
		pref, ok := minwage.ParsePrefecture(normalize(cells.Eq(0).Text()))
		if !ok {
			return true
		}
		if seen[pref] {
			rowErr = fmt.Errorf("row %d: duplicate prefecture %s", i+1, pref)
			return false
		}
		wage, err := parseAmount(normalize(cells.Eq(1).Text()))
		if err != nil {
			rowErr = fmt.Errorf("row %d (%s): %w", i+1, pref, err)
			return false
		}
		start, err := parseJapaneseDate(normalize(cells.Eq(2).Text()))
		if err != nil {
			rowErr = fmt.Errorf("row %d (%s): %w", i+1, pref, err)
			return false
		}
		seen[pref] = true
		records = append(records, record{
			PrefectureName:     pref,
			HourlyWage:         wage,
			EffectiveStartDate: start.Format(time.DateOnly),
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	log.Printf("parsed %d prefecture rows", len(records))
	return records, nil
}

// parseAmount reads the leading yen amount of a cell such as
// "1,163(1,113)" or "1,163円"; anything after the number is ignored.
func parseAmount(s string) (int, error) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != ','
	})
	if end < 0 {
		end = len(s)
	}
	digits := strings.ReplaceAll(s[:end], ",", "")
	if digits == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return n, nil
}

var (
	eraOffsets = map[string]int{
		"令和": 2018,
		"平成": 1988,
	}

	// 令和6年10月1日, 令和元年10月1日, 2024年10月1日
	japaneseDateRe = regexp.MustCompile(`^(令和|平成)?(元|\d+)年(\d+)月(\d+)日`)

	errInvalidDate = errors.New("invalid date")
)

// parseJapaneseDate parses an era or western date into midnight JST.
func parseJapaneseDate(s string) (time.Time, error) {
	m := japaneseDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w %q", errInvalidDate, s)
	}

	year := 1
	if m[2] != "元" {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w %q: %v", errInvalidDate, s, err)
		}
		year = n
	}
	if m[1] != "" {
		if m[2] == "0" {
			return time.Time{}, fmt.Errorf("%w %q: era year 0", errInvalidDate, s)
		}
		year += eraOffsets[m[1]]
	} else if m[2] == "元" || year < 1000 {
		return time.Time{}, fmt.Errorf("%w %q: missing era", errInvalidDate, s)
	}
	month, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", errInvalidDate, s, err)
	}
	day, err := strconv.Atoi(m[4])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", errInvalidDate, s, err)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, minwage.JST())
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("%w %q: no such day", errInvalidDate, s)
	}
	return t, nil
}

// validate checks that every prefecture is present exactly once.
func validate(records []record) error {
	have := make(map[minwage.Prefecture]bool, len(records))
	for _, r := range records {
		have[r.PrefectureName] = true
	}
	var missing []string
	for _, p := range minwage.Prefectures() {
		if !have[p] {
			missing = append(missing, string(p))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("expected %d prefectures, got %d (missing %s)",
			len(minwage.Prefectures()), len(records), strings.Join(missing, ", "))
	}
	return nil
}

// encode produces the dataset JSON, ordered by JIS prefecture code.
func encode(records []record) ([]byte, error) {
	sorted := make([]record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PrefectureName.Code() < sorted[j].PrefectureName.Code()
	})

	out, err := json.MarshalIndent(document{MinimumWages: sorted}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

package dataflows

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/redreef/alphaflow/internal/models"
)

// NewsScraperClient scrapes Google News as the keyless fallback when no
// Finnhub key is configured.
type NewsScraperClient struct {
	client *resty.Client
	cache  *CacheManager
}

func NewNewsScraperClient(cfg *Config) *NewsScraperClient {
	cacheDir := filepath.Join(cfg.DataCacheDir, "news_scraper")

	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; alphaflow/1.0)")

	return &NewsScraperClient{
		client: client,
		cache:  NewCacheManager(cacheDir, 2*time.Hour, cfg.CacheEnabled),
	}
}

// GoogleNewsParams represents parameters for Google News search
type GoogleNewsParams struct {
	Query      string    `json:"query"`
	Language   string    `json:"language"`
	Country    string    `json:"country"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	MaxResults int       `json:"max_results"`
}

// GetGoogleNews scrapes Google News for articles matching the params.
func (ns *NewsScraperClient) GetGoogleNews(params GoogleNewsParams) ([]models.NewsArticle, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if params.Language == "" {
		params.Language = "en"
	}
	if params.Country == "" {
		params.Country = "US"
	}
	if params.MaxResults <= 0 {
		params.MaxResults = 20
	}

	var cached []models.NewsArticle
	if ns.cache.Get("google_news", "search", params, &cached) {
		return cached, nil
	}

	googleURL := buildGoogleNewsURL(params)

	var result []models.NewsArticle
	err := WithRetry(DefaultRetryConfig(), func() error {
		resp, err := ns.client.R().Get(googleURL)
		if err != nil {
			return fmt.Errorf("failed to fetch Google News: %w", err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching Google News", resp.StatusCode())
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
		if err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}

		result = parseGoogleNewsHTML(doc)
		if len(result) > params.MaxResults {
			result = result[:params.MaxResults]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ns.cache.Set("google_news", "search", params, result)
	return result, nil
}

func buildGoogleNewsURL(params GoogleNewsParams) string {
	query := url.QueryEscape(params.Query)
	if !params.StartDate.IsZero() && !params.EndDate.IsZero() {
		dateQuery := fmt.Sprintf(" after:%s before:%s",
			params.StartDate.Format("2006-01-02"),
			params.EndDate.Format("2006-01-02"))
		query += url.QueryEscape(dateQuery)
	}
	return fmt.Sprintf("https://news.google.com/search?q=%s&hl=%s&gl=%s&ceid=%s:%s",
		query, params.Language, params.Country, params.Country, params.Language)
}

func parseGoogleNewsHTML(doc *goquery.Document) []models.NewsArticle {
	var articles []models.NewsArticle

	// Google News markup shifts; this targets the stable article elements.
	doc.Find("article").Each(func(i int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("h4").Text())
		}
		if title == "" {
			return
		}

		href, exists := s.Find("a").First().Attr("href")
		if !exists {
			return
		}

		source := strings.TrimSpace(s.Find("div[data-n-tid]").Text())
		if source == "" {
			source = "Google News"
		}

		timeText := strings.TrimSpace(s.Find("time").Text())
		summary := strings.TrimSpace(s.Find("span").Last().Text())

		articles = append(articles, models.NewsArticle{
			Title:       title,
			Summary:     summary,
			Source:      source,
			URL:         cleanGoogleNewsURL(href),
			PublishedAt: parseRelativeTime(timeText, time.Now()).Format("2006-01-02 15:04:05"),
		})
	})

	return articles
}

// cleanGoogleNewsURL removes the Google News redirect wrapper.
func cleanGoogleNewsURL(googleURL string) string {
	if strings.Contains(googleURL, "url=") {
		parts := strings.Split(googleURL, "url=")
		if len(parts) > 1 {
			if decoded, err := url.QueryUnescape(parts[1]); err == nil {
				return decoded
			}
		}
	}
	if strings.HasPrefix(googleURL, "./") {
		return "https://news.google.com" + googleURL[1:]
	}
	if strings.HasPrefix(googleURL, "/") {
		return "https://news.google.com" + googleURL
	}
	return googleURL
}

var (
	minutesAgoRe = regexp.MustCompile(`(\d+)\s*minutes?\s*ago`)
	hoursAgoRe   = regexp.MustCompile(`(\d+)\s*hours?\s*ago`)
	daysAgoRe    = regexp.MustCompile(`(\d+)\s*days?\s*ago`)
)

// parseRelativeTime converts Google's relative timestamps ("3 hours ago")
// to absolute times. Unparseable text falls back to now.
func parseRelativeTime(timeText string, now time.Time) time.Time {
	timeText = strings.ToLower(strings.TrimSpace(timeText))
	if timeText == "" || timeText == "just now" {
		return now
	}

	if m := minutesAgoRe.FindStringSubmatch(timeText); len(m) > 1 {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return now.Add(-time.Duration(n) * time.Minute)
		}
	}
	if m := hoursAgoRe.FindStringSubmatch(timeText); len(m) > 1 {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return now.Add(-time.Duration(n) * time.Hour)
		}
	}
	if m := daysAgoRe.FindStringSubmatch(timeText); len(m) > 1 {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return now.AddDate(0, 0, -n)
		}
	}

	if t, err := time.Parse("Jan 2, 2006", timeText); err == nil {
		return t
	}
	return now
}

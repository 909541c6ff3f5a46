package briefing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Briefing is the mission text shown before a run.
type Briefing struct {
	Codename  string `json:"codename"`
	Objective string `json:"objective"`
	Intel     string `json:"intel"`
}

// Fallback is shown whenever no briefing can be fetched.
var Fallback = Briefing{
	Codename:  "OPERATION IRON RAIN",
	Objective: "Reach the extraction point and eliminate all hostiles.",
	Intel:     "Enemy forces are massing. Expect heavy resistance.",
}

// ErrNoSource is returned when no briefing URL is configured.
var ErrNoSource = errors.New("no briefing source configured")

// maxBody caps how much of a response is read.
const maxBody = 64 << 10

type Source interface {
	Fetch(ctx context.Context) (Briefing, error)
}

// HTTPSource fetches a briefing as JSON with a GET request.
type HTTPSource struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Timeout: timeout, Client: http.DefaultClient}
}

func (s *HTTPSource) Fetch(ctx context.Context) (Briefing, error) {
	if strings.TrimSpace(s.URL) == "" {
		return Briefing{}, ErrNoSource
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return Briefing{}, fmt.Errorf("build briefing request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Briefing{}, fmt.Errorf("fetch briefing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Briefing{}, fmt.Errorf("fetch briefing: unexpected status %s", resp.Status)
	}

	var b Briefing
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&b); err != nil {
		return Briefing{}, fmt.Errorf("decode briefing: %w", err)
	}
	if b.Codename == "" || b.Objective == "" {
		return Briefing{}, errors.New("decode briefing: missing codename or objective")
	}
	return b, nil
}

type fallbackSource struct {
	src Source
	log *zap.Logger
}

// WithFallback wraps src so that Fetch never fails: any error is logged and
// replaced by the Fallback briefing.
func WithFallback(src Source, log *zap.Logger) Source {
	return &fallbackSource{src: src, log: log}
}

func (f *fallbackSource) Fetch(ctx context.Context) (Briefing, error) {
	b, err := f.src.Fetch(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSource) {
			f.log.Debug("no briefing source, using fallback")
		} else {
			f.log.Warn("briefing unavailable, using fallback", zap.Error(err))
		}
		return Fallback, nil
	}
	return b, nil
}

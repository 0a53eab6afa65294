// Package checker probes stashed links and reports which ones no longer resolve.
package checker

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kshyr/linkstash/internal/model"
)

// Status is the health of a link.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx
	Dead                      // 404 or 410
	Unreachable               // timeout, DNS failure, refused, other statuses
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "ok"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result is the outcome for one link.
type Result struct {
	Index      int // display index
	Link       model.Link
	Status     Status
	StatusCode int    // 0 if no response
	Reason     string // short explanation for Unreachable
}

// Params configures a Checker.
type Params struct {
	Concurrency int           // defaults to 8
	Timeout     time.Duration // per request; 0 = none
	HTTPClient  *http.Client  // overrides Timeout when set
}

// Checker probes links concurrently.
type Checker struct {
	client      *http.Client
	concurrency int
}

// New creates a Checker.
func New(params Params) *Checker {
	client := params.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: params.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	concurrency := params.Concurrency
	if concurrency < 1 {
		concurrency = 8
	}

	return &Checker{client: client, concurrency: concurrency}
}

// Check probes links, which must be newest first, and returns one Result
// per link in the same order.
func (c *Checker) Check(ctx context.Context, links []model.Link) []Result {
	if len(links) == 0 {
		return nil
	}

	results := make([]Result, len(links))
	jobs := make(chan int, len(links))
	var wg sync.WaitGroup

	workers := min(c.concurrency, len(links))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = c.check(ctx, links[i])
				results[i].Index = i + 1
			}
		}()
	}

	for i := range links {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func (c *Checker) check(ctx context.Context, link model.Link) Result {
	result := Result{Link: link}

	// HEAD first; some servers only answer GET
	resp, err := c.do(ctx, http.MethodHead, link.URL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = c.do(ctx, http.MethodGet, link.URL)
		if err != nil {
			result.Status = Unreachable
			result.Reason = reason(err)
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		result.Status = Dead
	default:
		result.Status = Unreachable
		result.Reason = http.StatusText(resp.StatusCode)
	}
	return result
}

func (c *Checker) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "linkstash/1.0 (+https://github.com/kshyr/linkstash)")
	return c.client.Do(req)
}

// reason turns a transport error into a short label.
func reason(err error) string {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "no such host"):
		return "DNS failure"
	case strings.Contains(msg, "context deadline exceeded"), strings.Contains(msg, "timeout"):
		return "Timeout"
	case strings.Contains(msg, "context canceled"):
		return "Cancelled"
	case strings.Contains(msg, "connection refused"):
		return "Connection refused"
	case strings.Contains(msg, "certificate"), strings.Contains(msg, "tls:"):
		return "TLS error"
	case strings.Contains(msg, "unsupported protocol scheme"):
		return "Unsupported scheme"
	default:
		return err.Error()
	}
}

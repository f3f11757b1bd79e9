package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"runtime-setup/internal/logger"
	"runtime-setup/internal/platform"
)

const (
	// downloadTimeout bounds a single mirror attempt end to end.
	downloadTimeout = 5 * time.Minute
	// maxRedirects caps redirect chains; release hosts typically bounce
	// through one or two CDN hops.
	maxRedirects = 10
)

var userAgent = "runtime-setup/" + platform.Version

// Fetcher downloads a bundle archive from an ordered list of mirrors.
type Fetcher struct {
	Client *http.Client
	// Quiet suppresses the progress bar; it defaults to true whenever
	// stderr is not a terminal.
	Quiet bool
}

// NewFetcher creates a fetcher with redirect-following, fail-on-HTTP-error
// GET semantics.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client: &http.Client{
			Timeout: downloadTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		Quiet: !term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Fetch tries each mirror in order until one yields a file at dest whose
// SHA-256 matches expected. A transport or HTTP failure and a digest
// mismatch are treated identically: the partial file is removed and the
// next mirror is tried. The first verified mirror wins and the rest are
// never contacted. When every mirror is exhausted the last failure is
// returned wrapped in an all-mirrors-failed error.
func (f *Fetcher) Fetch(ctx context.Context, mirrors []string, dest, expected string) error {
	if len(mirrors) == 0 {
		return errors.New("no mirrors to fetch from")
	}

	var lastErr error
	for _, url := range mirrors {
		logger.Debug("[DEBUG] Trying mirror %s\n", url)
		if err := f.fetchOne(ctx, url, dest); err != nil {
			logger.Warn("[WARN] Mirror %s failed: %v\n", url, err)
			os.Remove(dest)
			lastErr = err
			continue
		}
		if !VerifyFile(dest, expected) {
			logger.Warn("[WARN] Checksum mismatch from %s\n", url)
			os.Remove(dest)
			lastErr = fmt.Errorf("checksum mismatch from %s", url)
			continue
		}
		logger.Debug("[DEBUG] Verified download from %s\n", url)
		return nil
	}

	return fmt.Errorf("all %d mirrors failed: %w", len(mirrors), lastErr)
}

// fetchOne performs a single GET, streaming the body to dest. The caller
// removes dest on failure.
func (f *Fetcher) fetchOne(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}

	var body io.Reader = resp.Body
	if !f.Quiet {
		bar := progressbar.NewOptions64(
			resp.ContentLength,
			progressbar.OptionSetDescription("   "),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(10*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
		body = io.TeeReader(resp.Body, bar)
	}

	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		return fmt.Errorf("write body: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}
	return nil
}

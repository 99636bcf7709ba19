// Package fetch reads raw resource bytes for the engine in the background.
package fetch

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/semaphore"
)

// Job is one resource to read.
type Job struct {
	ID    string
	URL   string
	Sound bool
}

type Result struct {
	Job  Job
	Data []byte
	Err  error
}

// Options configures a Fetcher. BaseURL, when set, takes precedence over FS.
type Options struct {
	FS            fs.FS
	BaseURL       string
	Client        *http.Client
	Timeout       time.Duration
	MaxConcurrent int
}

// Fetcher reads raw resource bytes, either from a file system or from an
// HTTP base URL. At most MaxConcurrent reads run at once.
type Fetcher struct {
	fsys    fs.FS
	baseURL string
	client  *http.Client
	timeout time.Duration
	sem     *semaphore.Weighted
}

func New(opts Options) *Fetcher {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	limit := opts.MaxConcurrent
	if limit <= 0 {
		limit = 4
	}
	return &Fetcher{
		fsys:    opts.FS,
		baseURL: opts.BaseURL,
		client:  client,
		timeout: opts.Timeout,
		sem:     semaphore.NewWeighted(int64(limit)),
	}
}

// Fetch reads j and delivers the result on out. It gives up on delivery
// once ctx is done, so it never outlives a cancelled reader.
func (f *Fetcher) Fetch(ctx context.Context, j Job, out chan<- Result) {
	var r Result
	if err := f.sem.Acquire(ctx, 1); err != nil {
		r = Result{Job: j, Err: eris.Wrap(err, "fetch cancelled")}
	} else {
		data, err := f.read(ctx, j.URL)
		f.sem.Release(1)
		r = Result{Job: j, Data: data, Err: err}
	}

	select {
	case out <- r:
	case <-ctx.Done():
	}
}

func (f *Fetcher) read(ctx context.Context, p string) ([]byte, error) {
	if f.baseURL == "" {
		if f.fsys == nil {
			return nil, eris.Errorf("no resource source configured for %s", p)
		}
		data, err := fs.ReadFile(f.fsys, p)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to read %s", p)
		}
		return data, nil
	}

	target, err := url.JoinPath(f.baseURL, strings.TrimPrefix(p, "/"))
	if err != nil {
		return nil, eris.Wrapf(err, "bad resource url %s", p)
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to build request for %s", target)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to fetch %s", target)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("fetch %s: unexpected status %d", target, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read body of %s", target)
	}
	return data, nil
}

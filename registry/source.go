package registry

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
)

// Source retrieves manifest documents by path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FSSource reads manifests from a file system such as an embed.FS or os.DirFS.
type FSSource struct {
	FS fs.FS
}

func (s FSSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(ErrManifestFetch, err.Error())
	}
	data, err := fs.ReadFile(s.FS, path)
	if err != nil {
		return nil, eris.Wrapf(ErrManifestFetch, "read %s: %v", path, err)
	}
	return data, nil
}

// HTTPSource fetches manifests relative to BaseURL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	target, err := s.resolve(path)
	if err != nil {
		return nil, eris.Wrapf(ErrManifestFetch, "bad manifest url %q: %v", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, eris.Wrapf(ErrManifestFetch, "build request for %s: %v", target, err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(ErrManifestFetch, "get %s: %v", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Wrapf(ErrManifestFetch, "get %s: unexpected status %s", target, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(ErrManifestFetch, "read body of %s: %v", target, err)
	}
	return data, nil
}

func (s HTTPSource) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	base, err := url.Parse(strings.TrimSuffix(s.BaseURL, "/") + "/")
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

package transform

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// RewriteStats summarizes a URL rewriting pass.
type RewriteStats struct {
	Total     int `json:"total"`
	Rewritten int `json:"rewritten"`
	Skipped   int `json:"skipped"` // already remote
}

// Rewrite replaces local file paths in image/thumb fields (singular and
// plural variants) with URLs under baseURL. Paths that are already
// absolute URLs are left alone, so the pass is idempotent.
func Rewrite(items []Item, baseURL string) (RewriteStats, error) {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return RewriteStats{}, fmt.Errorf("transform: base url %q is not absolute", baseURL)
	}

	stats := RewriteStats{Total: len(items)}
	rewriteOne := func(p string) string {
		if p == "" || isRemote(p) {
			if p != "" {
				stats.Skipped++
			}
			return p
		}
		stats.Rewritten++
		return joinURL(base, p)
	}

	for _, item := range items {
		for _, key := range []string{"image", "thumb"} {
			if v := stringField(item, key); v != "" {
				item[key] = rewriteOne(v)
			}
		}
		for _, key := range []string{"images", "thumbs"} {
			if vs := stringSlice(item, key); vs != nil {
				out := make([]string, len(vs))
				for i, v := range vs {
					out[i] = rewriteOne(v)
				}
				item[key] = anySlice(out)
			}
		}
	}
	return stats, nil
}

func isRemote(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// joinURL appends a local relative path to the base, normalizing
// separators and collapsing duplicate slashes.
func joinURL(base *url.URL, local string) string {
	u := *base
	rel := strings.TrimPrefix(strings.ReplaceAll(local, "\\", "/"), "./")
	u.Path = path.Join(u.Path, rel)
	return u.String()
}

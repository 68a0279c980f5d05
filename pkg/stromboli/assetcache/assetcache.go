// Package assetcache downloads remote assets over HTTP and caches them
// on disk under per-type subdirectories, keyed by a hash of the URL.
// Downloads on embedded devices need a trust store, hence the
// certificate bundle import.
package assetcache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store
	"github.com/zeebo/blake3"

	"github.com/BrandonKowalski/stromboli/pkg/stromboli"
	"github.com/BrandonKowalski/stromboli/pkg/stromboli/internal"
)

// Type categorizes a cached asset, deciding its subdirectory and file
// extension.
type Type struct {
	name string
	ext  string
}

var (
	TypeImage    = Type{name: "images", ext: "jpg"}
	TypeVideo    = Type{name: "videos", ext: "mp4"}
	TypeAudio    = Type{name: "audio", ext: "mp3"}
	TypeDocument = Type{name: "documents", ext: "pdf"}
)

// TypeOther returns an asset type for an arbitrary file extension,
// cached in the "other" subdirectory.
func TypeOther(ext string) Type {
	return Type{name: "other", ext: ext}
}

// String returns the subdirectory name of the type.
func (t Type) String() string {
	return t.name
}

// Info describes a loaded asset.
type Info struct {
	// Path is the absolute path of the cached file.
	Path string
	// Cached is true when the asset was already on disk and false when
	// this call downloaded it.
	Cached bool
}

// Cache stores downloaded assets under a root directory. Safe for
// concurrent use; concurrent loads of the same URL may download twice
// but land on the same file atomically.
type Cache struct {
	root   string
	client *http.Client
	log    *slog.Logger
}

// New creates a cache rooted at dir. The directory is created on first
// use, not here.
func New(dir string) *Cache {
	return &Cache{
		root:   dir,
		client: &http.Client{Timeout: 60 * time.Second},
		log:    internal.GetLogger(),
	}
}

// filename hashes the URL into a stable cache filename for the type.
func (c *Cache) filename(url string, t Type) string {
	sum := blake3.Sum256([]byte(url))
	return fmt.Sprintf("%x.%s", sum[:16], t.ext)
}

// Path returns where the asset is or would be cached, without touching
// the network or the disk.
func (c *Cache) Path(url string, t Type) string {
	return filepath.Join(c.root, t.name, c.filename(url, t))
}

// IsCached reports whether the asset is already on disk.
func (c *Cache) IsCached(url string, t Type) bool {
	_, err := os.Stat(c.Path(url, t))
	return err == nil
}

// Load returns the asset's local path, downloading it first if it is
// not cached. The write is atomic: a partial download never becomes
// visible under the final name.
func (c *Cache) Load(ctx context.Context, url string, t Type) (Info, error) {
	path := c.Path(url, t)

	if _, err := os.Stat(path); err == nil {
		return Info{Path: path, Cached: true}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Info{}, stromboli.NewInfrastructureError("create_cache_dir", err)
	}

	if err := c.download(ctx, url, path); err != nil {
		return Info{}, err
	}

	c.log.Info("asset downloaded", "url", url, "type", t.name, "path", path)
	return Info{Path: path, Cached: false}, nil
}

func (c *Cache) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return stromboli.NewInfrastructureError("download_asset", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return stromboli.NewInfrastructureError("download_asset", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return stromboli.NewInfrastructureError("download_asset",
			fmt.Errorf("http status %s for %s", resp.Status, url))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return stromboli.NewInfrastructureError("save_asset", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return stromboli.NewInfrastructureError("save_asset", err)
	}
	if err := tmp.Close(); err != nil {
		return stromboli.NewInfrastructureError("save_asset", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return stromboli.NewInfrastructureError("save_asset", err)
	}
	return nil
}

// Clear removes every cached asset of one type.
func (c *Cache) Clear(t Type) error {
	dir := filepath.Join(c.root, t.name)
	if err := os.RemoveAll(dir); err != nil {
		return stromboli.NewInfrastructureError("clear_cache", err)
	}
	c.log.Info("asset cache cleared", "type", t.name)
	return nil
}

// ClearAll removes the entire cache root.
func (c *Cache) ClearAll() error {
	if err := os.RemoveAll(c.root); err != nil {
		return stromboli.NewInfrastructureError("clear_cache", err)
	}
	c.log.Info("asset cache cleared", "type", "all")
	return nil
}

package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"co/internal/diag"
	"co/internal/source"
)

// Bump when the payload layout changes so stale entries self-invalidate.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores check results keyed by source digest, so repeated
// `co check` runs over an unchanged file skip the pipeline entirely.
type DiskCache struct {
	dir string
}

// cachedNote mirrors diag.Note without the package dependency in the
// serialised form.
type cachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type cachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []cachedNote
}

// DiskPayload is one serialised check result.
type DiskPayload struct {
	Schema      uint16
	Locale      string
	Diagnostics []cachedDiag
}

// OpenDiskCache initialises the cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(filepath.Join(dir, "checks"), 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [sha256.Size]byte) string {
	return filepath.Join(c.dir, "checks", hex.EncodeToString(key[:])+".mp")
}

// Put serialises and writes one check result.
func (c *DiskCache) Put(key [sha256.Size]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	payload.Schema = diskCacheSchemaVersion
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}
	tmp := c.pathFor(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.pathFor(key))
}

// Get loads a check result; a miss is (nil, nil).
func (c *DiskCache) Get(key [sha256.Size]byte) (*DiskPayload, error) {
	if c == nil {
		return nil, nil
	}
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		// A corrupt entry is treated as a miss.
		return nil, nil
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, nil
	}
	return &payload, nil
}

// encodeDiagnostics flattens a bag for serialisation. Spans keep byte
// offsets only; the file is re-identified by its digest on the way back.
func encodeDiagnostics(bag *diag.Bag) []cachedDiag {
	items := bag.Items()
	out := make([]cachedDiag, 0, len(items))
	for _, d := range items {
		cd := cachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		out = append(out, cd)
	}
	return out
}

func decodeDiagnostics(file source.FileID, cached []cachedDiag) *diag.Bag {
	bag := diag.NewBag(len(cached) + 1)
	for _, cd := range cached {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: file, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: file, Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		bag.Add(d)
	}
	return bag
}

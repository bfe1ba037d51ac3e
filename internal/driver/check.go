package driver

import (
	"co/internal/source"
)

// Check runs the analysis pipeline without emitting C, consulting the
// disk cache first. Entries are keyed by the source digest; each records
// its locale and is reused only for the same locale, since messages are
// rendered into the cached diagnostics.
func Check(path string, opts Options, cache *DiskCache) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	if cache != nil {
		if payload, err := cache.Get(file.Hash); err == nil && payload != nil &&
			payload.Locale == opts.Locale.String() {
			return &Result{
				FileSet: fs,
				Bag:     decodeDiagnostics(fileID, payload.Diagnostics),
			}, nil
		}
	}

	opts.EmitC = false
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	res := compileFile(fs, fileID, opts)
	if cache != nil && res.Internal == nil {
		// Best effort: a failed write never fails the check.
		_ = cache.Put(file.Hash, &DiskPayload{
			Locale:      opts.Locale.String(),
			Diagnostics: encodeDiagnostics(res.Bag),
		})
	}
	return res, nil
}

package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"sort"

	"fortio.org/safecast"
)

// FileID identifies a file inside a FileSet.
type FileID uint32

// NoFileID marks the absence of a file reference.
const NoFileID FileID = ^FileID(0)

// File holds one loaded source file with its line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offset of the start of each line
	Hash    [sha256.Size]byte
}

// Position is a 1-based line/column pair resolved from a byte offset.
type Position struct {
	Line uint32
	Col  uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// FileSet manages loaded source files and resolves spans to positions.
type FileSet struct {
	files []File
	index map[string]FileID
}

func NewFileSet() *FileSet {
	return &FileSet{
		index: make(map[string]FileID),
	}
}

// Add stores normalized content under path and returns a fresh FileID.
func (fs *FileSet) Add(path string, content []byte) FileID {
	content = normalize(content)
	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	id := FileID(lenFiles)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
	})
	fs.index[path] = id
	return id
}

// Load reads path from disk and adds it to the set.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return NoFileID, err
	}
	return fs.Add(path, content), nil
}

// Get returns the file for id, or nil.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// Position resolves a byte offset inside a file to 1-based line/column.
func (fs *FileSet) Position(file FileID, offset uint32) Position {
	f := fs.Get(file)
	if f == nil {
		return Position{Line: 1, Col: 1}
	}
	line := sort.Search(len(f.LineIdx), func(i int) bool {
		return f.LineIdx[i] > offset
	})
	// line is 1-based already: LineIdx[0] == 0 is always <= offset.
	start := f.LineIdx[line-1]
	lineNo, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return Position{Line: lineNo, Col: offset - start + 1}
}

// LineText returns the text of the 1-based line without the trailing newline.
func (fs *FileSet) LineText(file FileID, line uint32) string {
	f := fs.Get(file)
	if f == nil || line == 0 || int(line) > len(f.LineIdx) {
		return ""
	}
	start := f.LineIdx[line-1]
	end := uint32(len(f.Content))
	if int(line) < len(f.LineIdx) {
		end = f.LineIdx[line]
	}
	return string(bytes.TrimRight(f.Content[start:end], "\r\n"))
}

// normalize strips a UTF-8 BOM and rewrites CRLF to LF so that
// byte offsets are stable across platforms.
func normalize(content []byte) []byte {
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}

func buildLineIndex(content []byte) []uint32 {
	idx := []uint32{0}
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i)+1)
		}
	}
	return idx
}

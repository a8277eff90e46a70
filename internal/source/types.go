package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileBinary marks content that contains bytes outside printable ASCII,
	// which is the normal case for PDF files with compressed streams.
	FileBinary
)

// File captures metadata and content for a single source file.
// Content is kept byte-exact: PDF offsets (xref tables, stream lengths)
// are only meaningful over the untouched bytes.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offset of the last byte of every end-of-line
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

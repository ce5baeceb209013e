package defs

import "os"

// Permissions used when writing project files.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

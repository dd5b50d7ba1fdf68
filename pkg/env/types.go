package env

// Layout lists the directories searched for headers and libraries
type Layout struct {
	Includes   []string // Header search directories
	Libraries  []string // Library search directories
	Binaries   []string // Where DLLs and helper programs live
	Extensions []string // Library file extensions, most preferred first
}

// Library represents a found library file
type Library struct {
	Name     string // Library name (e.g., "png")
	Path     string // Absolute path to library file
	Dir      string // Directory holding the file
	Type     string // Extension: ".so", ".a", ".dylib", ".dll", ".lib"
	IsStatic bool   // True for .a files
}

// CompilerFlags holds compiler and linker flags
type CompilerFlags struct {
	IncludeFlags []string // -I flags
	LibraryFlags []string // -L flags
	LinkFlags    []string // -l flags
}

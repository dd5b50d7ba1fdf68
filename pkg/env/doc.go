package env

/*
Package env knows where native libraries live on each build system.

It handles:
  - Header and library search directories per build system
  - Finding specific libraries and their headers
  - Generating compiler and linker flags

Basic Usage:

    import "github.com/arc-language/buildcfg/pkg/env"

    layout := env.LayoutFor(core.BuildUnix, "/opt/sdk")

    png := layout.FindLibrary("png")
    if png != nil {
        fmt.Printf("Found: %s at %s\n", png.Name, png.Path)
    }

    flags := env.Flags([]string{"/usr/include/SDL"}, nil, []string{"SDL"})
    fmt.Println(flags) // -I/usr/include/SDL -lSDL

Layouts:

Each build system has different conventions. Debian-style systems keep
libraries under usr/lib/<triplet>, Homebrew under /opt/homebrew/lib,
MinGW under /mingw/lib, and native Windows SDKs wherever they were
unpacked. A configured prefix is always searched first.
*/

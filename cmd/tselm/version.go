package main

import (
	_ "embed"
	"fmt"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// treeSitterModule provides the TypeScript grammar the collector parses with.
const treeSitterModule = "github.com/smacker/go-tree-sitter"

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info, _ := debug.ReadBuildInfo()
	fmt.Println("tselm " + version(embeddedVersion, info))
	fmt.Println("target: Elm 0.19")
	fmt.Println("parser: " + treeSitterModule + " " + parserVersion(info))
	return nil
}

// version returns the version string.
//
// When installed via `go install ...@version`, returns the module version (e.g., "v0.1.0").
// For development builds, returns "devel-0.1.0+abc1234", with "-dirty" appended
// when the working tree had local changes.
func version(embedded string, info *debug.BuildInfo) string {
	base := strings.TrimSpace(embedded)
	if info == nil {
		return base
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var rev, dirty string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) >= 7 {
				rev = "+" + s.Value[:7]
			}
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "-dirty"
			}
		}
	}
	if rev == "" {
		return "devel-" + base
	}
	return "devel-" + base + rev + dirty
}

// parserVersion returns the version of the linked tree-sitter bindings.
func parserVersion(info *debug.BuildInfo) string {
	if info == nil {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path != treeSitterModule {
			continue
		}
		if dep.Replace != nil {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return "unknown"
}

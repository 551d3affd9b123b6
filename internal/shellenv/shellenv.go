// Package shellenv inspects the command search path and produces
// shell-specific guidance when the install directory is not on it.
//
// The package is strictly read-only: it never edits shell startup files or
// the live environment. Changing the user's shell configuration is the
// user's call, so the advisor only prints the one line they would need.
package shellenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Family is a recognized interactive shell family.
type Family string

const (
	// FamilyBash is the Bourne-again shell.
	FamilyBash Family = "bash"
	// FamilyZsh is the Z shell.
	FamilyZsh Family = "zsh"
	// FamilyFish is the fish shell.
	FamilyFish Family = "fish"
	// FamilyGeneric is the fallback for anything unrecognized.
	FamilyGeneric Family = "generic"
)

// String returns the string representation of the shell family.
func (f Family) String() string {
	return string(f)
}

// DetectFamily identifies the user's interactive shell family from the
// $SHELL environment variable, falling back to generic when unset or
// unrecognized.
func DetectFamily() Family {
	return familyFromPath(os.Getenv("SHELL"))
}

// familyFromPath extracts the shell family from a shell binary path,
// e.g. /usr/local/bin/fish -> fish.
func familyFromPath(shellPath string) Family {
	switch strings.ToLower(filepath.Base(shellPath)) {
	case "bash":
		return FamilyBash
	case "zsh":
		return FamilyZsh
	case "fish":
		return FamilyFish
	default:
		return FamilyGeneric
	}
}

// OnPath reports whether dir appears as a distinct entry in the PATH-like
// list. Entries are compared after cleaning, so a trailing slash does not
// hide a match, but a prefix of a longer entry never counts as one.
func OnPath(dir, pathList string) bool {
	want := filepath.Clean(dir)

	for _, entry := range filepath.SplitList(pathList) {
		if entry == "" {
			continue
		}
		if filepath.Clean(entry) == want {
			return true
		}
	}

	return false
}

// Advice returns the one line of configuration text for the shell family
// that would put dir on the search path.
func Advice(family Family, dir string) string {
	switch family {
	case FamilyBash:
		return fmt.Sprintf(`echo 'export PATH="%s:$PATH"' >> ~/.bashrc`, dir)
	case FamilyZsh:
		return fmt.Sprintf(`echo 'export PATH="%s:$PATH"' >> ~/.zshrc`, dir)
	case FamilyFish:
		return fmt.Sprintf("fish_add_path %s", dir)
	default:
		return fmt.Sprintf(`export PATH="%s:$PATH"`, dir)
	}
}

// Advise checks the current process's search path and returns the guidance
// line for the detected shell when dir is absent, or the empty string when
// dir is already present and nothing needs doing.
func Advise(dir string) string {
	if OnPath(dir, os.Getenv("PATH")) {
		return ""
	}

	return Advice(DetectFamily(), dir)
}

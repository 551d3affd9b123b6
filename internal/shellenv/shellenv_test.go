package shellenv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFamilyFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Family
	}{
		{"/bin/bash", FamilyBash},
		{"/usr/bin/zsh", FamilyZsh},
		{"/usr/local/bin/fish", FamilyFish},
		{"/bin/Bash", FamilyBash},
		{"/bin/dash", FamilyGeneric},
		{"/bin/tcsh", FamilyGeneric},
		{"", FamilyGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, familyFromPath(tt.path))
		})
	}
}

func TestOnPath(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		pathList string
		want     bool
	}{
		{"present", "/home/u/.local/bin", "/usr/bin:/home/u/.local/bin:/bin", true},
		{"absent", "/home/u/.local/bin", "/usr/bin:/bin", false},
		{"trailing slash entry", "/home/u/.local/bin", "/usr/bin:/home/u/.local/bin/", true},
		{"trailing slash dir", "/home/u/.local/bin/", "/usr/bin:/home/u/.local/bin", true},
		{"prefix is not a match", "/home/u/.local/bin", "/home/u/.local/binaries:/usr/bin", false},
		{"substring is not a match", "/bin", "/usr/bin:/sbin", false},
		{"empty path list", "/home/u/.local/bin", "", false},
		{"empty entries skipped", "/home/u/.local/bin", "::/home/u/.local/bin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OnPath(tt.dir, tt.pathList))
		})
	}
}

func TestAdvice(t *testing.T) {
	dir := "/home/u/.local/bin"

	tests := []struct {
		family Family
		want   string
	}{
		{FamilyBash, `echo 'export PATH="/home/u/.local/bin:$PATH"' >> ~/.bashrc`},
		{FamilyZsh, `echo 'export PATH="/home/u/.local/bin:$PATH"' >> ~/.zshrc`},
		{FamilyFish, "fish_add_path /home/u/.local/bin"},
		{FamilyGeneric, `export PATH="/home/u/.local/bin:$PATH"`},
	}

	for _, tt := range tests {
		t.Run(tt.family.String(), func(t *testing.T) {
			got := Advice(tt.family, dir)
			assert.Equal(t, tt.want, got)

			// Exactly one line of guidance, never more.
			assert.False(t, strings.Contains(got, "\n"))
		})
	}
}

func TestAdvise(t *testing.T) {
	dir := "/home/u/.local/bin"

	t.Setenv("SHELL", "/usr/bin/zsh")

	t.Setenv("PATH", "/usr/bin:"+dir)
	assert.Empty(t, Advise(dir))

	t.Setenv("PATH", "/usr/bin:/bin")
	assert.Equal(t, Advice(FamilyZsh, dir), Advise(dir))
}

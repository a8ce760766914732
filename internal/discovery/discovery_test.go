// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"rgui/internal/exclusion"
)

// writeTree creates the given slash-separated files under root.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(f), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWalkSortedAndSkipsBinaries(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "b.go", "a/z.go", "a.txt", "img/logo.png", "dist/app.tar.gz", "docs/guide.md")

	got, err := Walk(root, DefaultSkipExtensions)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	want := []string{"a.txt", "a/z.go", "b.go", "docs/guide.md"}
	if !slices.Equal(got, want) {
		t.Errorf("Walk() = %v; want %v", got, want)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "nope"), nil)
	if !errors.Is(err, ErrRootUnreadable) {
		t.Errorf("Walk() error = %v; want ErrRootUnreadable", err)
	}
}

func TestWalkRootIsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "file.txt")
	_, err := Walk(filepath.Join(root, "file.txt"), nil)
	if !errors.Is(err, ErrRootUnreadable) {
		t.Errorf("Walk() error = %v; want ErrRootUnreadable", err)
	}
}

func TestWalkUnreadableRoot(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}
	root := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(root, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	if _, err := Walk(root, nil); !errors.Is(err, ErrRootUnreadable) {
		t.Errorf("Walk() error = %v; want ErrRootUnreadable", err)
	}
}

// The included set equals all files minus pattern matches minus exact exclusions.
func TestResolveIsSetDifference(t *testing.T) {
	root := t.TempDir()
	tree := []string{
		"README.md", "main.go", "main_test.go", "go.sum",
		"internal/x/x.go", "internal/x/x_test.go",
		"node_modules/lib/index.js", "docs/a.md", "docs/b.txt", "tmp.log",
	}
	writeTree(t, root, tree...)

	patterns := []string{"*_test.go", "node_modules", "*.log"}
	exact := []string{"go.sum", "docs/b.txt"}
	set := exclusion.FromLists(nil, patterns, exact, nil)

	files, err := Walk(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := Resolve(files, set)

	var want []string
	for _, f := range files {
		if exclusion.Matches(f, patterns) || slices.Contains(exact, f) {
			continue
		}
		want = append(want, f)
	}
	if !slices.Equal(got, want) {
		t.Errorf("Resolve() = %v; want %v", got, want)
	}
	if !slices.Equal(want, []string{"README.md", "docs/a.md", "internal/x/x.go", "main.go"}) {
		t.Errorf("unexpected reference set %v", want)
	}
}

func TestWalkPrunedMatchesUnpruned(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "src/a.go", "node_modules/x/y.js", "build/out/bin.txt", "keep.txt")

	set := exclusion.FromLists(nil, []string{"node_modules", "build/*"}, nil, nil)

	full, err := Walk(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	pruned, err := WalkPruned(root, nil, set.CoversDir)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := Resolve(pruned, set), Resolve(full, set); !slices.Equal(got, want) {
		t.Errorf("pruned = %v; unpruned = %v", got, want)
	}
	if slices.Contains(pruned, "node_modules/x/y.js") {
		t.Error("node_modules should not have been walked")
	}
}

func TestLoadGitignore(t *testing.T) {
	root := t.TempDir()
	gi, err := LoadGitignore(root)
	if err != nil || gi != nil {
		t.Fatalf("LoadGitignore() without file = %v, %v; want nil, nil", gi, err)
	}

	writeTree(t, root, "app.go", "secret.env", "coverage/index.html")
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.env\ncoverage/\n"), 0644); err != nil {
		t.Fatal(err)
	}
	gi, err = LoadGitignore(root)
	if err != nil || gi == nil {
		t.Fatalf("LoadGitignore() = %v, %v", gi, err)
	}

	files, err := Walk(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := Resolve(files, exclusion.NewSet(nil)); len(got) != len(files) {
		t.Errorf("Resolve() should not consult .gitignore: %v", got)
	}
	got := GitignoreMatches(files, gi)
	if !slices.Equal(got, []string{"coverage/index.html", "secret.env"}) {
		t.Errorf("GitignoreMatches() = %v", got)
	}
	if got := GitignoreMatches(files, nil); got != nil {
		t.Errorf("GitignoreMatches(nil) = %v", got)
	}
}

func TestFilter(t *testing.T) {
	files := []string{"cmd/Main.go", "internal/ui/view.go", "README.md"}
	tests := []struct {
		query string
		want  []string
	}{
		{"", files},
		{"main", []string{"cmd/Main.go"}},
		{".GO", []string{"cmd/Main.go", "internal/ui/view.go"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		if got := Filter(files, tt.query); !slices.Equal(got, tt.want) {
			t.Errorf("Filter(%q) = %v; want %v", tt.query, got, tt.want)
		}
	}
}

package discover

import (
	"strings"
	"testing"
)

func TestGitignoreParser_BasicPatterns(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		isDir    bool
		expected bool
	}{
		{"simple file match", "README.md", "README.md", false, true},
		{"simple file no match", "README.md", "Main.java", false, false},
		{"directory pattern matches directory", "node_modules/", "node_modules", true, true},
		{"directory pattern matches nested file", "build/", "build/Main.class", false, true},
		{"wildcard suffix", "*.class", "Main.class", false, true},
		{"wildcard prefix", "test*", "test_output.txt", false, true},
		{"absolute pattern matches only at root", "/config.json", "config.json", false, true},
		{"absolute pattern does not match nested", "/config.json", "sub/config.json", false, false},
		{"relative pattern matches nested", "config.json", "sub/config.json", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gp := NewGitignoreParser()
			gp.AddPattern(tt.pattern)
			if got := gp.ShouldIgnore(tt.path, tt.isDir); got != tt.expected {
				t.Errorf("ShouldIgnore(%q, %v) with pattern %q = %v, want %v",
					tt.path, tt.isDir, tt.pattern, got, tt.expected)
			}
		})
	}
}

func TestGitignoreParser_NegationPriority(t *testing.T) {
	gp := NewGitignoreParser()
	gp.AddPattern("*.log")
	gp.AddPattern("!important.log")

	if !gp.ShouldIgnore("debug.log", false) {
		t.Error("debug.log should be ignored")
	}
	if gp.ShouldIgnore("important.log", false) {
		t.Error("important.log should be un-ignored by the negation pattern")
	}
}

func TestGitignoreParser_LoadFromContent(t *testing.T) {
	content := "# a comment\n\n*.class\nbuild/\n!build/keep.txt\n"
	gp := NewGitignoreParser()
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gp.AddPattern(line)
	}

	if !gp.ShouldIgnore("Main.class", false) {
		t.Error("*.class should ignore Main.class")
	}
	if !gp.ShouldIgnore("build", true) {
		t.Error("build/ should ignore the build directory")
	}
}

func TestGitignoreParser_ExclusionPatterns(t *testing.T) {
	gp := NewGitignoreParser()
	gp.AddPattern("*.class")
	gp.AddPattern("build/")
	gp.AddPattern("!keep.class")

	patterns := gp.ExclusionPatterns()

	wantClass, wantBuild := false, false
	for _, p := range patterns {
		if p == "**/*.class" {
			wantClass = true
		}
		if p == "**/build/**" {
			wantBuild = true
		}
	}
	if !wantClass {
		t.Errorf("expected a **/*.class exclusion glob, got %v", patterns)
	}
	if !wantBuild {
		t.Errorf("expected a **/build/** exclusion glob, got %v", patterns)
	}
	// Negation patterns never become exclusion globs (order-sensitive
	// re-inclusion can't be expressed in a flat glob list).
	for _, p := range patterns {
		if strings.Contains(p, "keep.class") {
			t.Errorf("negated pattern leaked into exclusions: %v", patterns)
		}
	}
}

func TestGitignoreParser_MissingFileIsNotAnError(t *testing.T) {
	gp := NewGitignoreParser()
	if err := gp.LoadGitignore(t.TempDir()); err != nil {
		t.Errorf("LoadGitignore on a directory with no .gitignore should not error, got %v", err)
	}
}

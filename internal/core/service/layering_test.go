package service

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// The core packages may depend on each other and on internal/pkg, never on
// the HTTP layer or on infrastructure adapters.
func TestCoreImportsStayInsideCore(t *testing.T) {
	forbidden := []string{
		"github.com/thinqor/ats-assistant/internal/api",
		"github.com/thinqor/ats-assistant/internal/infrastructure",
	}
	for _, dir := range []string{".", "../ports", "../domain"} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read %s: %v", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") {
				continue
			}
			path := filepath.Join(dir, e.Name())
			f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("parse %s: %v", path, err)
			}
			for _, imp := range f.Imports {
				p, _ := strconv.Unquote(imp.Path.Value)
				for _, bad := range forbidden {
					if p == bad || strings.HasPrefix(p, bad+"/") {
						t.Errorf("%s imports %s", path, p)
					}
				}
			}
		}
	}
}

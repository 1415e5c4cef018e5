package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "pressroom"

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// layerRule lists what a service layer may import besides the standard library.
// Own-service prefixes are relative to the service root.
type layerRule struct {
	ownPrefixes []string
	external    []string
	noInternal  bool
}

var layerRules = map[string]layerRule{
	"domain": {
		ownPrefixes: []string{"domain"},
		noInternal:  true,
	},
	"application": {
		ownPrefixes: []string{"application", "domain", "ports"},
		external:    []string{"golang.org/x/sync"},
		noInternal:  true,
	},
	"ports": {
		ownPrefixes: []string{"domain"},
		noInternal:  true,
	},
	"transport": {
		noInternal: true,
	},
}

func main() {
	var violations []violation
	violations = append(violations, collectContextViolations("contexts")...)
	violations = append(violations, collectPlatformViolations(filepath.Join("internal", "platform"))...)
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		return violations[i].Import < violations[j].Import
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

// collectContextViolations checks contexts/<context>/<service>/<layer>/... files.
func collectContextViolations(root string) []violation {
	var violations []violation
	walkGoFiles(root, func(path string, normalized string) {
		parts := strings.Split(normalized, "/")
		if len(parts) < 4 {
			return
		}
		serviceRoot := fmt.Sprintf("%s/contexts/%s/%s", modulePath, parts[1], parts[2])
		layer := parts[3]
		rule, hasRule := layerRules[layer]

		for _, imp := range parseImports(path, normalized, &violations) {
			if strings.HasPrefix(imp.path, modulePath+"/contexts/") && !hasPrefix(imp.path, serviceRoot) {
				violations = append(violations, imp.violation("services must not import each other"))
				continue
			}
			if hasPrefix(imp.path, modulePath+"/internal/app") {
				violations = append(violations, imp.violation("services must not import the composition root"))
				continue
			}
			if !hasRule {
				continue
			}
			if strings.Contains(imp.path, "/adapters") {
				violations = append(violations, imp.violation(layer+" must not import adapters"))
				continue
			}
			if rule.noInternal && hasPrefix(imp.path, modulePath+"/internal") {
				violations = append(violations, imp.violation(layer+" must not import runtime infrastructure"))
				continue
			}
			if isStdlib(imp.path) {
				continue
			}
			allowed := append([]string(nil), rule.external...)
			for _, own := range rule.ownPrefixes {
				allowed = append(allowed, serviceRoot+"/"+own)
			}
			if !isAllowed(imp.path, allowed) {
				violations = append(violations, imp.violation(layer+" import is outside explicit allowlist"))
			}
		}
	})
	return violations
}

// collectPlatformViolations keeps platform packages free of the composition root.
func collectPlatformViolations(root string) []violation {
	var violations []violation
	walkGoFiles(root, func(path string, normalized string) {
		for _, imp := range parseImports(path, normalized, &violations) {
			if hasPrefix(imp.path, modulePath+"/internal/app") {
				violations = append(violations, imp.violation("platform must not import the composition root"))
			}
		}
	})
	return violations
}

type importRef struct {
	file string
	line int
	path string
}

func (i importRef) violation(rule string) violation {
	return violation{File: i.file, Line: i.line, Import: i.path, Rule: rule}
}

func walkGoFiles(root string, visit func(path string, normalized string)) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		visit(path, filepath.ToSlash(path))
		return nil
	})
}

func parseImports(path string, normalized string, violations *[]violation) []importRef {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		*violations = append(*violations, violation{File: normalized, Line: 1, Rule: "file must parse"})
		return nil
	}
	refs := make([]importRef, 0, len(file.Imports))
	for _, imp := range file.Imports {
		refs = append(refs, importRef{
			file: normalized,
			line: fset.Position(imp.Pos()).Line,
			path: strings.Trim(imp.Path.Value, "\""),
		})
	}
	return refs
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAllowed(importPath string, allowedPrefixes []string) bool {
	for _, p := range allowedPrefixes {
		if hasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func isStdlib(importPath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first := importPath
	if idx := strings.Index(first, "/"); idx != -1 {
		first = first[:idx]
	}
	return !strings.Contains(first, ".")
}

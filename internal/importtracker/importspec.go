package importtracker

import "strings"

// parseImportSpec turns the raw text of one import/using/use/#include
// directive into its URI, the symbol names it brings into scope, hidden
// (excluded) names, and an alias prefix. This is grammar-agnostic by
// design, in the same spirit as patternmatcher's textual callee parsing:
// the surface forms an import directive takes across the eight shipped
// grammars are few enough to recognize by shape rather than by
// per-grammar field drilling.
//
// bareQualifiedName reports whether raw fell through to the final,
// ambiguous "plain dotted/scoped name" form: the one shape that can mean
// either "this specific symbol" (Java's `import a.b.C;`) or "this whole
// namespace" (C#'s `using System.Collections;`) depending on the language,
// a distinction the caller resolves via langprofile.Profile.
func parseImportSpec(raw string) (uri string, shown, hidden []string, prefix string, bareQualifiedName bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, ";")
	raw = strings.TrimSpace(raw)

	for _, kw := range []string{"import static", "import", "using", "use", "#include"} {
		if strings.HasPrefix(raw, kw+" ") {
			raw = strings.TrimSpace(raw[len(kw)+1:])
			break
		}
	}

	// ES module form: "<spec> from \"<path>\"".
	if idx := strings.Index(raw, " from "); idx >= 0 {
		spec := strings.TrimSpace(raw[:idx])
		path := strings.TrimSpace(raw[idx+len(" from "):])
		return unquote(path), parseJSImportSpec(spec), nil, "", false
	}

	// Bare quoted or angled path: Go's `import "fmt"`, C++'s #include forms.
	if strings.HasPrefix(raw, "\"") || strings.HasPrefix(raw, "<") {
		u := unquoteOrAngle(raw)
		return u, []string{lastSegment(u)}, nil, "", false
	}

	// Alias form: "Name = qualified.path" (C# using X = Y;).
	if idx := strings.Index(raw, " = "); idx >= 0 {
		alias := strings.TrimSpace(raw[:idx])
		target := strings.TrimSpace(raw[idx+len(" = "):])
		return target, []string{alias}, nil, alias, false
	}

	// Aliased bare path: Go's `f "fmt"`.
	if idx := strings.Index(raw, " \""); idx >= 0 {
		alias := strings.TrimSpace(raw[:idx])
		u := unquote(strings.TrimSpace(raw[idx+1:]))
		return u, []string{alias}, nil, alias, false
	}

	// Brace group: Rust's `foo::{Bar, Baz}`, JS destructure already handled
	// above via " from "; this covers Rust-only here.
	if idx := strings.Index(raw, "{"); idx >= 0 {
		base := strings.TrimRight(raw[:idx], ":.")
		inner := strings.TrimSuffix(strings.TrimPrefix(raw[idx:], "{"), "}")
		for _, part := range strings.Split(inner, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				shown = append(shown, lastSegment(part))
			}
		}
		return base, shown, nil, "", false
	}

	// Wildcard form: Java's `a.b.*`, Rust's `foo::*`. Always a namespace
	// import regardless of language, so the caller marks it IsNamespace
	// without needing bareQualifiedName here.
	if strings.HasSuffix(raw, "*") {
		base := strings.TrimRight(strings.TrimSuffix(raw, "*"), ".:")
		return base, []string{"*"}, nil, "", false
	}

	// Plain qualified name: Java's `a.b.C`, C#'s `System.Collections`,
	// Rust's `foo::bar::Baz`, PHP's `Foo\Bar\Baz` (handled by lastSegment's
	// separator set). bareQualifiedName=true here is what lets the caller
	// ask the profile whether this particular language's bare form means
	// "namespace" or "symbol".
	return raw, []string{lastSegment(raw)}, nil, "", true
}

// parseJSImportSpec handles the portion of an ES import before " from ":
// a default name, a namespace form ("* as ns"), a named-import brace group,
// or a comma-combination of a default name and a brace group.
func parseJSImportSpec(spec string) []string {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "*") {
		return []string{"*"}
	}

	idx := strings.Index(spec, "{")
	if idx < 0 {
		return []string{spec}
	}

	var names []string
	if defaultPart := strings.TrimSpace(strings.TrimSuffix(spec[:idx], ",")); defaultPart != "" {
		names = append(names, defaultPart)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(spec[idx:], "{"), "}")
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if asIdx := strings.Index(part, " as "); asIdx >= 0 {
			part = strings.TrimSpace(part[asIdx+len(" as "):])
		}
		names = append(names, part)
	}
	return names
}

// lastSegment returns the final path component of a dotted, double-colon, or
// slash-separated qualified name, picking whichever separator occurs latest.
func lastSegment(s string) string {
	s = strings.TrimSpace(s)
	best, sepLen := -1, 0
	for _, sep := range []string{"::", ".", "/", "\\"} {
		if idx := strings.LastIndex(s, sep); idx > best {
			best, sepLen = idx, len(sep)
		}
	}
	if best < 0 {
		return s
	}
	return s[best+sepLen:]
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func unquoteOrAngle(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		return s[1 : len(s)-1]
	}
	return unquote(s)
}

// Package parser turns raw LLM output into structured results. Model
// output is never trusted: JSON may arrive wrapped in prose or code
// fences, with missing keys or made-up enum values, so every entry point
// degrades instead of failing hard.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JamesKang003/leasewise/internal/core/domain"
)

// ParseTerms parses a term-extraction response into a LeaseTerms value.
// Every recognised field is present in the result: missing keys and JSON
// nulls become domain.TermUnknown, unrecognised keys are dropped. A
// response with no parseable JSON object fails wrapping
// domain.ErrParseFailure; the caller keeps the raw text.
func ParseTerms(raw string) (domain.LeaseTerms, error) {
	payload, ok := firstJSONValue(raw, '{')
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in response", domain.ErrParseFailure)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}

	terms := domain.NewLeaseTerms()
	for key, val := range fields {
		if !domain.IsTermField(key) {
			continue
		}
		if s := stringValue(val); s != "" {
			terms[key] = s
		}
	}
	return terms, nil
}

// ParseRedFlags parses a red-flag scan response. The prompt asks for
// {"flags":[...]} but a bare array is accepted too. Elements missing a
// severity, or bearing one outside the enum, are coerced to
// SeverityUnknown rather than dropped; an element is dropped only when it
// has neither a title nor clause text to show.
func ParseRedFlags(raw string) ([]domain.RedFlag, error) {
	items, err := flagItems(raw)
	if err != nil {
		return nil, err
	}

	flags := make([]domain.RedFlag, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		flag := domain.RedFlag{
			ID:          stringValue(obj["id"]),
			Title:       stringValue(obj["title"]),
			Severity:    domain.ParseSeverity(stringValue(obj["severity"])),
			ClauseText:  stringValue(obj["clause_text"]),
			Explanation: stringValue(obj["explanation"]),
		}
		if flag.Title == "" && flag.ClauseText == "" {
			continue
		}
		flags = append(flags, flag)
	}
	return flags, nil
}

// ParseText handles the unstructured tasks (qa, summarise): the raw model
// text is the result, trimmed of surrounding whitespace.
func ParseText(raw string) string {
	return strings.TrimSpace(raw)
}

// flagItems locates the flag array in the response, either behind a
// "flags" key or as a top-level array.
func flagItems(raw string) ([]any, error) {
	if payload, ok := firstJSONValue(raw, '{'); ok {
		var wrapper map[string]any
		if err := json.Unmarshal([]byte(payload), &wrapper); err == nil {
			if items, ok := wrapper["flags"].([]any); ok {
				return items, nil
			}
		}
	}

	if payload, ok := firstJSONValue(raw, '['); ok {
		var items []any
		if err := json.Unmarshal([]byte(payload), &items); err == nil {
			return items, nil
		}
	}

	return nil, fmt.Errorf("%w: no flags array in response", domain.ErrParseFailure)
}

// firstJSONValue extracts the first well-formed JSON value opening with
// the given delimiter ('{' or '['). Code-fenced blocks are tried first
// since models routinely wrap JSON in ```json fences, then the first
// balanced substring of the whole text.
func firstJSONValue(raw string, open byte) (string, bool) {
	text := strings.TrimSpace(raw)

	if strings.Contains(text, "```") {
		for _, part := range strings.Split(text, "```") {
			part = strings.TrimSpace(part)
			part = strings.TrimSpace(strings.TrimPrefix(part, "json"))
			if part == "" {
				continue
			}
			if payload, ok := balancedValue(part, open); ok {
				return payload, true
			}
		}
	}

	return balancedValue(text, open)
}

// balancedValue scans for the first balanced JSON value starting with
// open, respecting string literals and escapes, and verifies it parses.
// A candidate that balances but is not valid JSON (prose braces like
// "{section 3}") is skipped and the scan resumes past its opening
// delimiter.
func balancedValue(text string, open byte) (string, bool) {
	closing := byte('}')
	if open == '[' {
		closing = ']'
	}

	for offset := 0; offset < len(text); {
		start := strings.IndexByte(text[offset:], open)
		if start < 0 {
			return "", false
		}
		start += offset

		if candidate, ok := balancedFrom(text, start, open, closing); ok {
			return candidate, true
		}
		offset = start + 1
	}
	return "", false
}

// balancedFrom extracts the balanced substring opening at start and
// reports whether it is valid JSON.
func balancedFrom(text string, start int, open, closing byte) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
			// String content is opaque.
		case ch == open:
			depth++
		case ch == closing:
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				return candidate, json.Valid([]byte(candidate))
			}
		}
	}
	return "", false
}

// stringValue renders a decoded JSON value as a display string. Nulls and
// empty strings yield "", letting callers treat them as absent. The
// prompts ask for string-or-null values but models occasionally emit
// numbers or booleans anyway.
func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", val), "0"), ".")
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

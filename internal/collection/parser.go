// Package collection turns raw collection text into a canonical-name
// quantity map and persists it through the key-value store.
package collection

import (
	"regexp"
	"strconv"
	"strings"

	"deckcheck/internal/normalize"
)

// Quantities maps canonical card names to owned counts. Built fresh on every
// parse; a parse result replaces any prior map wholesale.
type Quantities map[string]int

// Merge adds every quantity in src into dst.
func Merge(dst, src Quantities) {
	for k, v := range src {
		dst[k] += v
	}
}

// Total returns the sum of all quantities.
func (q Quantities) Total() int {
	n := 0
	for _, v := range q {
		n += v
	}
	return n
}

var reQuantityPrefix = regexp.MustCompile(`^(\d+)\s*[xX]?\s+(.+)$`)

// headerFields are first-column values that mark a CSV header row.
var headerFields = map[string]struct{}{
	"count":    {},
	"quantity": {},
	"name":     {},
	"card":     {},
}

// Parse resolves multi-line collection text into quantities per canonical
// name. Lines may be plain names, "N Name" / "Nx Name" prefixed, or CSV rows
// in either quantity-first or name-first column order. Blank lines and lines
// starting with # or // are skipped. Lines that cannot be resolved to a
// usable name are dropped; Parse never fails.
func Parse(text string) Quantities {
	out := make(Quantities)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		name, qty := resolveLine(line)
		key := normalize.Name(name)
		if key == "" || qty <= 0 {
			continue
		}
		// Repeated mentions of the same card accumulate.
		out[key] += qty
	}
	return out
}

func resolveLine(line string) (name string, qty int) {
	if strings.Contains(line, ",") {
		return resolveCSV(line)
	}

	if m := reQuantityPrefix.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		rest := strings.TrimSpace(m[2])
		if err == nil && n > 0 && rest != "" {
			return rest, n
		}
	}

	return line, 1
}

// resolveCSV applies the column-order heuristic to a comma-separated row.
// Column layouts seen in the wild: "4,Lightning Bolt,LEA" (quantity first),
// "Lightning Bolt,4" (name first) and "Lightning Bolt,LEA,4" (name plus
// metadata columns). Header rows are discarded entirely.
func resolveCSV(line string) (string, int) {
	parts := strings.Split(line, ",")
	fields := make([]string, len(parts))
	for i, p := range parts {
		fields[i] = stripQuotes(strings.TrimSpace(p))
	}
	if len(fields) < 2 {
		return "", 0
	}

	if _, header := headerFields[strings.ToLower(fields[0])]; header {
		return "", 0
	}

	first, second := fields[0], fields[1]

	switch {
	case isPositiveInt(first) && !isNumber(second):
		return second, mustAtoi(first)
	case !isNumber(first) && isPositiveInt(second):
		return first, mustAtoi(second)
	case isPositiveInt(first):
		// Both columns numeric is ambiguous; treat the first as the
		// quantity, matching the quantity-first layout.
		return second, mustAtoi(first)
	case first != "" && !isNumber(first):
		// Name followed by metadata columns (set code, collector number,
		// ...). Use the first plausible count column, else assume one copy.
		for _, f := range fields[1:] {
			if n, err := strconv.Atoi(f); err == nil && n > 0 && n < 1000 {
				return first, n
			}
		}
		return first, 1
	}

	return "", 0
}

// stripQuotes removes one matching pair of surrounding quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isPositiveInt(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

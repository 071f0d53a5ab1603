package bootman

import (
	"bufio"
	"os"
	"strings"
)

// vendorPrefixFromOSRelease extracts the vendor namespace N used to
// prefix kernel and loader filenames from the PRETTY_NAME field of
// os-release (spec §4.5, §6), kebab-casing it the way distribution
// package names are conventionally derived from a human-readable title.
func vendorPrefixFromOSRelease(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		name, value, ok := strings.Cut(line, "=")
		if !ok || name != "PRETTY_NAME" {
			continue
		}
		value = strings.Trim(value, `"`)
		vendor := kebabCase(value)
		if vendor == "" {
			return "", false
		}
		return vendor, true
	}
	return "", false
}

// kebabCase lower-cases s, replaces every run of characters other than
// ASCII letters and digits (whitespace, punctuation, hyphens) with a
// single hyphen, and trims leading and trailing hyphens.
func kebabCase(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

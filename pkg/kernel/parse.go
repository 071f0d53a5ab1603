package kernel

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/clearlinux/cbm/pkg/cerr"
)

// SystemKernel is the parsed identity of a kernel: a dotted numeric
// version, a variant tag, and a release number. All three fields are
// present if and only if parsing succeeded (spec §3).
type SystemKernel struct {
	Version string
	KType   string
	Release int
}

// String renders the canonical "<version>-<release>.<ktype>" form.
func (k SystemKernel) String() string {
	return fmt.Sprintf("%s-%d.%s", k.Version, k.Release, k.KType)
}

// Parse canonicalises a kernel identity string such as "4.4.0-120.lts"
// into a SystemKernel, following the grammar in spec §4.1:
//
//	<version>-<release><trailing-noise>.<ktype>
//
// On failure it returns a zero SystemKernel and a non-nil error; no
// partial state is ever returned. Parse failures are ParseRefusal class
// errors and are logged at debug level only (spec §7).
func Parse(s string) (SystemKernel, error) {
	sep := strings.IndexByte(s, '-')
	if sep < 0 {
		return refuse(s, "missing '-' separator")
	}

	versionStr := s[:sep]
	version, err := validateVersion(versionStr)
	if err != nil {
		return refuse(s, err.Error())
	}

	rest := s[sep+1:]
	if rest == "" {
		return refuse(s, "empty release")
	}

	releaseDigits := leadingDigits(rest)
	if releaseDigits == "" {
		return refuse(s, "release has no digits")
	}
	release, err := strconv.Atoi(releaseDigits)
	if err != nil {
		// leadingDigits guarantees a parseable integer; this is
		// unreachable outside of overflow on absurdly long inputs.
		return refuse(s, "release is not a valid integer")
	}

	remainder := rest[len(releaseDigits):]
	dot := strings.IndexByte(remainder, '.')
	if dot < 0 {
		return refuse(s, "missing '.' before ktype")
	}
	// remainder[:dot] is trailing noise (e.g. "120a.kvm"'s "a"); tolerated
	// and discarded per spec.

	ktype := remainder[dot+1:]
	if ktype == "" {
		return refuse(s, "empty ktype")
	}
	if strings.Contains(ktype, ".") {
		return refuse(s, "ktype contains '.'")
	}

	return SystemKernel{Version: version, KType: ktype, Release: release}, nil
}

func validateVersion(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("empty version")
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return "", fmt.Errorf("version has an empty component")
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return "", fmt.Errorf("version component %q is not numeric", part)
			}
		}
	}
	return s, nil
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

func refuse(input, reason string) (SystemKernel, error) {
	slog.Debug("kernel identity refused", "input", input, "reason", reason)
	return SystemKernel{}, cerr.New(cerr.CodeParseRefusal, reason)
}

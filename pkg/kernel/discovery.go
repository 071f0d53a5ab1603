package kernel

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/clearlinux/cbm/pkg/layout"
)

type tripleKey struct {
	ktype   string
	version string
	release int
}

func keyOf(k SystemKernel) tripleKey {
	return tripleKey{ktype: k.KType, version: k.Version, release: k.Release}
}

// Scan walks <prefix>/<KernelDir>, recognises the five filename shapes of
// spec §4.3, and materialises a Collection in directory-scan insertion
// order. vendor is the distribution namespace prefix N; modulesEnabled
// controls whether module directories are resolved and attached.
func Scan(prefix, vendor string, modulesEnabled bool) (Collection, error) {
	dir := filepath.Join(prefix, layout.KernelDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Collection{}, nil
		}
		return nil, fmt.Errorf("read kernel dir %s: %w", dir, err)
	}

	order := make([]tripleKey, 0, len(entries))
	byKey := make(map[tripleKey]*Kernel)
	var defaultLinks []string

	// Pass 1: anchor a Kernel record for every kernel blob found.
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasPrefix(name, "initrd-"), strings.HasPrefix(name, "cmdline-"),
			strings.HasPrefix(name, "config-"), strings.HasPrefix(name, "default-"):
			continue
		case strings.HasPrefix(name, vendor+"."):
			suffix := strings.TrimPrefix(name, vendor+".")
			sk, ok := parseBlobSuffix(suffix)
			if !ok {
				slog.Debug("ignoring malformed kernel blob name", "name", name)
				continue
			}
			k := keyOf(sk)
			if _, exists := byKey[k]; exists {
				continue
			}
			order = append(order, k)
			byKey[k] = &Kernel{
				Meta:   sk,
				Source: Sources{KernelBlobPath: filepath.Join(dir, name)},
			}
		}
	}

	// Pass 2: attach siblings and collect default-<ktype> symlinks.
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasPrefix(name, "initrd-"+vendor+"."):
			suffix := strings.TrimPrefix(name, "initrd-"+vendor+".")
			sk, ok := parseBlobSuffix(suffix)
			if !ok {
				continue
			}
			if k, exists := byKey[keyOf(sk)]; exists {
				k.Source.InitrdPath = filepath.Join(dir, name)
			}
			// else: a freestanding initrd, tracked by the caller (bootman).
		case strings.HasPrefix(name, "cmdline-"):
			sk, err := Parse(strings.TrimPrefix(name, "cmdline-"))
			if err == nil {
				if k, exists := byKey[keyOf(sk)]; exists {
					k.Source.CmdlinePath = filepath.Join(dir, name)
				}
			}
		case strings.HasPrefix(name, "config-"):
			sk, err := Parse(strings.TrimPrefix(name, "config-"))
			if err == nil {
				if k, exists := byKey[keyOf(sk)]; exists {
					k.Source.ConfigPath = filepath.Join(dir, name)
				}
			}
		case strings.HasPrefix(name, "default-"):
			defaultLinks = append(defaultLinks, name)
		}
	}

	resolveDefaults(dir, vendor, defaultLinks, byKey)

	out := make(Collection, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}

	if modulesEnabled {
		attachModuleDirs(prefix, out)
	}

	assignFallbackDefaults(out)
	return out, nil
}

// FreestandingInitrds re-scans <prefix>/<KernelDir> for initrd-<vendor>.*
// entries whose (ktype, version, release) triple does not match any
// Kernel in discovered, returning a map of filename to full path. These
// are initrd fragments managed separately from any specific kernel
// (glossary: "Freestanding initrd").
func FreestandingInitrds(prefix, vendor string, discovered Collection) (map[string]string, error) {
	dir := filepath.Join(prefix, layout.KernelDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read kernel dir %s: %w", dir, err)
	}

	known := make(map[tripleKey]bool, len(discovered))
	for _, k := range discovered {
		known[keyOf(k.Meta)] = true
	}

	prefixName := "initrd-" + vendor + "."
	out := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefixName) {
			continue
		}
		suffix := strings.TrimPrefix(e.Name(), prefixName)
		sk, ok := parseBlobSuffix(suffix)
		if !ok || known[keyOf(sk)] {
			continue
		}
		out[e.Name()] = filepath.Join(dir, e.Name())
	}
	return out, nil
}

// resolveDefaults reads each default-<ktype> symlink's target, parses it
// back through the blob grammar after stripping the vendor namespace, and
// marks the matching Kernel's DefaultForType. Multiple symlinks naming
// the same ktype cannot coexist on a real filesystem (the ktype is part
// of the filename), but entries are still processed in lexicographic
// order so that, if a caller's test harness ever fabricates such a
// conflict, the first symlink wins and the rest are logged as invariant
// violations (spec §4.3, §9).
func resolveDefaults(dir, vendor string, names []string, byKey map[tripleKey]*Kernel) {
	sort.Strings(names)
	seen := make(map[string]bool)

	for _, name := range names {
		ktype := strings.TrimPrefix(name, "default-")
		if seen[ktype] {
			slog.Error("multiple default symlinks for kernel type", "ktype", ktype)
			continue
		}

		target, err := os.Readlink(filepath.Join(dir, name))
		if err != nil {
			slog.Error("failed to read default symlink", "name", name, "error", err)
			continue
		}
		target = filepath.Base(target)

		suffix := strings.TrimPrefix(target, vendor+".")
		sk, ok := parseBlobSuffix(suffix)
		if !ok || sk.KType != ktype {
			slog.Error("default symlink target does not parse", "name", name, "target", target)
			continue
		}

		if k, exists := byKey[keyOf(sk)]; exists {
			k.DefaultForType = true
			seen[ktype] = true
		}
	}
}

// assignFallbackDefaults marks, for each ktype with no DefaultForType
// kernel already set, the kernel with the maximum release as default;
// ties break by lexicographic version ascending then first-seen (spec
// §4.3).
func assignFallbackDefaults(c Collection) {
	hasDefault := make(map[string]bool)
	for _, k := range c {
		if k.DefaultForType {
			hasDefault[k.Meta.KType] = true
		}
	}

	bestIdx := make(map[string]int)
	for i, k := range c {
		if hasDefault[k.Meta.KType] {
			continue
		}
		cur, ok := bestIdx[k.Meta.KType]
		if !ok {
			bestIdx[k.Meta.KType] = i
			continue
		}
		best := c[cur]
		if k.Meta.Release > best.Meta.Release ||
			(k.Meta.Release == best.Meta.Release && k.Meta.Version < best.Meta.Version) {
			bestIdx[k.Meta.KType] = i
		}
	}

	for _, i := range bestIdx {
		c[i].DefaultForType = true
	}
}

// attachModuleDirs concurrently stats <prefix>/<ModulesDir>/<version>-<release>
// for every kernel in c, since these are independent, I/O-bound checks.
// This is the only place within a single Scan call that runs concurrent
// I/O; the boot manager itself remains single-threaded between operations
// (spec §5).
func attachModuleDirs(prefix string, c Collection) {
	var g errgroup.Group
	for i := range c {
		i := i
		g.Go(func() error {
			dir := filepath.Join(prefix, layout.ModulesDir, fmt.Sprintf("%s-%d", c[i].Meta.Version, c[i].Meta.Release))
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				c[i].Source.ModuleDir = dir
			}
			return nil
		})
	}
	_ = g.Wait()
}

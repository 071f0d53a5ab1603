package sysconfig

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/clearlinux/cbm/pkg/cerr"
	"github.com/clearlinux/cbm/pkg/layout"
)

// Store is a prefix-scoped reader/writer for sysconfig fragments. It owns
// no file handles between calls; each operation opens, uses, and closes
// its own.
type Store struct {
	Prefix string
}

// New returns a Store rooted at prefix.
func New(prefix string) *Store {
	return &Store{Prefix: prefix}
}

func (s *Store) dir() string {
	return filepath.Join(s.Prefix, layout.KernelConfDir)
}

// Write ensures the kernel config directory exists, then either removes
// the named fragment (contents == nil) or truncates it to contents+"\n".
// name must be one of the closed set of sysconfig filenames.
func (s *Store) Write(name string, contents *string) error {
	if !layout.IsKnownSysconfigName(name) {
		return cerr.New(cerr.CodeInvariant, fmt.Sprintf("unknown sysconfig name %q", name))
	}

	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		werr := cerr.WrapWithContext(cerr.CodeIO, "failed to create sysconfig directory", err, map[string]any{"path": dir})
		slog.Error(werr.Error())
		return werr
	}

	path := filepath.Join(dir, name)

	if contents == nil {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			werr := cerr.WrapWithContext(cerr.CodeIO, "failed to remove sysconfig fragment", err, map[string]any{"path": path})
			slog.Error(werr.Error())
			return werr
		}
		return nil
	}

	if err := os.WriteFile(path, []byte(*contents+"\n"), 0o644); err != nil {
		werr := cerr.WrapWithContext(cerr.CodeIO, "failed to write sysconfig fragment", err, map[string]any{"path": path})
		slog.Error(werr.Error())
		return werr
	}
	return nil
}

// Read returns the first newline-terminated line of the named fragment
// with the trailing newline stripped, or nil if the file is absent.
// Empty or unreadable-but-present content returns nil, not an error.
func (s *Store) Read(name string) (*string, error) {
	if !layout.IsKnownSysconfigName(name) {
		return nil, cerr.New(cerr.CodeInvariant, fmt.Sprintf("unknown sysconfig name %q", name))
	}

	path := filepath.Join(s.dir(), name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		werr := cerr.WrapWithContext(cerr.CodeIO, "failed to open sysconfig fragment", err, map[string]any{"path": path})
		slog.Error(werr.Error())
		return nil, werr
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		slog.Debug("sysconfig fragment is empty or unparseable, treating as absent", "path", path)
		return nil, nil
	}
	line := scanner.Text()
	return &line, nil
}

// GetTimeout returns the configured timeout, or -1 if none is configured
// (file absent, empty, non-numeric, or <= 0).
func (s *Store) GetTimeout() int {
	value, err := s.Read(layout.SysconfigTimeout)
	if err != nil || value == nil {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSpace(*value))
	if err != nil || n <= 0 {
		if err != nil {
			slog.Error("failed to parse timeout config, defaulting to no timeout", "value", *value)
		}
		return -1
	}
	return n
}

// SetTimeout writes n as the timeout fragment; n <= 0 deletes it.
func (s *Store) SetTimeout(n int) error {
	if n <= 0 {
		return s.Write(layout.SysconfigTimeout, nil)
	}
	value := strconv.Itoa(n)
	return s.Write(layout.SysconfigTimeout, &value)
}

// GetConsoleMode returns the raw console_mode value, or nil if unset.
func (s *Store) GetConsoleMode() *string {
	value, err := s.Read(layout.SysconfigConsoleMode)
	if err != nil {
		return nil
	}
	return value
}

// SetConsoleMode writes mode as the console_mode fragment; nil deletes it.
func (s *Store) SetConsoleMode(mode *string) error {
	return s.Write(layout.SysconfigConsoleMode, mode)
}

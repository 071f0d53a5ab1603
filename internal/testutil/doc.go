// Package testutil fabricates a playground root-prefix tree for tests,
// standing in for the external test harness described in spec §1 as an
// out-of-scope collaborator. It writes kernel blobs, initrd/cmdline/config
// siblings, module directories, default-<ktype> symlinks, and os-release
// under a t.TempDir(). It does not create ESP/boot-directory files.
package testutil

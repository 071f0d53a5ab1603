// Package layout centralises the fixed, prefix-relative path fragments the
// boot-manager core reasons about (spec §6's on-disk layout table). Keeping
// these as named constants instead of scattering literal paths mirrors the
// teacher's pkg/defaults approach of centralising cross-cutting constants
// in one importable location.
package layout

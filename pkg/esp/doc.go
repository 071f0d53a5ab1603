// Package esp implements the ESP inspector (spec §4.6): given a Kernel
// and the active bootloader descriptor, it computes the expected boot
// partition paths and classifies install state by how many of them
// exist.
package esp

// Package blockprobe implements capability.BlockProbe. The production
// probe shells out to blkid the same way the corpus shells out to other
// host tools (helm, systemctl) rather than re-implementing a superblock
// parser; CBM_BOOTVAR_TEST_MODE switches to a deterministic probe that
// synthesizes UUIDs from the device path with google/uuid so tests never
// depend on a real block device.
package blockprobe

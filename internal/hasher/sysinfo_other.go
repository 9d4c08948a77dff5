//go:build !unix

package hasher

import "io/fs"

// Sin inodos fuera de unix: nunca se detectan hardlinks previos.
func sysInfo(fs.FileInfo) (uint64, uint64) {
	return 0, 0
}

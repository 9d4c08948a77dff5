//go:build unix

package hasher

import (
	"io/fs"
	"syscall"
)

// sysInfo extrae DeviceID e Inode de forma "segura".
func sysInfo(info fs.FileInfo) (uint64, uint64) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0
	}
	return uint64(stat.Dev), uint64(stat.Ino) //nolint:unconvert // Dev es int32 en darwin
}

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Backup suffix for in-place jobs. The backup survives until the whole job
// (including any follow-up transcode) has succeeded, so a failure at any
// step can restore the original.
const backupSuffix = ".bak.mp4"

// jobTag returns a short unique token for job-private temp paths, so
// concurrent jobs operating in the same directory never collide.
func jobTag() string {
	return uuid.NewString()[:8]
}

// tempPath returns a job-private temp path next to dst. Same directory,
// same filesystem, so the final rename is atomic.
func tempPath(dst, tag string) string {
	dir, base := filepath.Dir(dst), filepath.Base(dst)
	ext := filepath.Ext(base)
	return filepath.Join(dir, "."+strings.TrimSuffix(base, ext)+"."+tag+".tmp"+ext)
}

// backupSwap replaces dst with tmp, keeping the original as a backup.
// Sequence: dst -> backup, tmp -> dst. If the second rename fails the
// backup is moved back, so the caller always finds either the original or
// the fully-written replacement at dst -- never a gap. When even the
// rollback fails, both errors are reported so the surviving file state is
// never silently wrong.
func backupSwap(dst, tmp string) (backup string, err error) {
	backup = dst + backupSuffix

	if err := os.Rename(dst, backup); err != nil {
		return "", fmt.Errorf("back up original: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		if rbErr := os.Rename(backup, dst); rbErr != nil {
			return "", fmt.Errorf("replace failed (%v) and rollback failed (%v): original is at %s", err, rbErr, backup)
		}
		return "", fmt.Errorf("replace %q (original restored): %w", dst, err)
	}
	return backup, nil
}

// restoreBackup puts the backup back at dst, discarding whatever is there.
func restoreBackup(dst, backup string) error {
	if _, err := os.Stat(backup); err != nil {
		return fmt.Errorf("backup missing: %w", err)
	}
	_ = os.Remove(dst)
	if err := os.Rename(backup, dst); err != nil {
		return fmt.Errorf("restore %q from backup: %w", dst, err)
	}
	return nil
}

package actions

import (
	"fmt"
	"os"

	"github.com/soyunomas/dedup/internal/entities"
)

func (e *Executor) delete(dup *entities.FileRecord, size int64) entities.ActionOutcome {
	if e.opts.DryRun {
		return e.ok(dup, size, "")
	}
	if err := os.Remove(dup.Path); err != nil {
		return e.fail(dup, fmt.Errorf("%w: %w", ErrDelete, err))
	}
	return e.ok(dup, size, "")
}

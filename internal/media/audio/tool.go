package audio

import (
	"context"
	"os/exec"
)

// runFFmpeg is swapped out by tests; production code always execs.
var runFFmpeg = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

//go:generate mockgen -source=launcher.go -destination=mocks/mock_launcher.go -package=mocks

package dispatch

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/agbru/chunkbench/internal/worker"
)

// Launcher builds the command for one worker process. The dispatcher wires
// stdin, stdout, stderr and inherited files before starting it.
type Launcher interface {
	Command(ctx context.Context) *exec.Cmd
}

// ExecLauncher starts Path with worker mode enabled in the environment.
type ExecLauncher struct {
	Path string
	Args []string
	// Env is appended to the parent's environment.
	Env []string
}

// NewSelfLauncher returns a launcher that re-executes the running binary.
func NewSelfLauncher() (*ExecLauncher, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	return &ExecLauncher{Path: path}, nil
}

// Command returns an unstarted worker command. Workers are not bound to ctx:
// once started, a worker runs to completion.
func (l *ExecLauncher) Command(_ context.Context) *exec.Cmd {
	cmd := exec.Command(l.Path, l.Args...)
	env := append(os.Environ(), l.Env...)
	cmd.Env = append(env, worker.EnvKey+"=1")
	return cmd
}

package device

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

type CommandRecorder struct {
	runner  Runner
	command string
	dir     string

	mu   sync.Mutex
	proc Process
	path string
}

func NewCommandRecorder(r Runner, command, dir string) *CommandRecorder {
	return &CommandRecorder{runner: r, command: command, dir: dir}
}

func (r *CommandRecorder) StartRecording(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.proc != nil {
		return "", ErrAlreadyRecording
	}

	path := filepath.Join(r.dir, "meal_"+uuid.NewString()+".wav")
	name, args, err := expand(r.command, map[string]string{"out": path})
	if err != nil {
		return "", fmt.Errorf("recorder: %w", err)
	}

	proc, err := r.runner.Start(name, args...)
	if err != nil {
		return "", fmt.Errorf("recorder: %w", err)
	}

	r.proc, r.path = proc, path
	return path, nil
}

func (r *CommandRecorder) StopRecording() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.proc == nil {
		return "", ErrNotRecording
	}

	proc, path := r.proc, r.path
	r.proc, r.path = nil, ""

	if err := proc.Stop(); err != nil {
		return "", fmt.Errorf("recorder: %w", err)
	}
	return path, nil
}

func (r *CommandRecorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.proc != nil
}

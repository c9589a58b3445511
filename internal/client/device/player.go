package device

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// CommandPlayer plays one file at a time in the background.
type CommandPlayer struct {
	runner  Runner
	command string

	mu   sync.Mutex
	proc Process
}

func NewCommandPlayer(r Runner, command string) *CommandPlayer {
	return &CommandPlayer{runner: r, command: command}
}

func (p *CommandPlayer) Play(_ context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("player: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.proc != nil {
		return ErrAlreadyPlaying
	}

	name, args, err := expand(p.command, map[string]string{"in": path})
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}

	proc, err := p.runner.Start(name, args...)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	p.proc = proc

	go func() {
		_ = proc.Wait()
		p.mu.Lock()
		if p.proc == proc {
			p.proc = nil
		}
		p.mu.Unlock()
	}()
	return nil
}

func (p *CommandPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.proc != nil
}

func (p *CommandPlayer) Stop() error {
	p.mu.Lock()
	proc := p.proc
	p.proc = nil
	p.mu.Unlock()

	if proc == nil {
		return nil
	}
	return proc.Stop()
}

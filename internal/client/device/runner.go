package device

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/dmitrijs2005/eatsbalance/internal/common"
)

const stopGrace = 3 * time.Second

// Runner starts external programs.
type Runner interface {
	// Run executes the program and waits for it.
	Run(ctx context.Context, name string, args ...string) error
	// Start launches a program that runs until stopped or finished.
	Start(name string, args ...string) (Process, error)
}

type Process interface {
	// Stop interrupts the program and waits for it to exit.
	Stop() error
	Wait() error
}

type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return nil
}

func (ExecRunner) Start(name string, args ...string) (Process, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	p := &execProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		p.err = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

type execProcess struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

func (p *execProcess) Wait() error {
	<-p.done
	return p.err
}

// Stop sends an interrupt so recorders can finalise their file, and kills
// the program if it has not exited within stopGrace.
func (p *execProcess) Stop() error {
	select {
	case <-p.done:
		return nil
	default:
	}

	if err := p.cmd.Process.Signal(os.Interrupt); err != nil {
		_ = p.cmd.Process.Kill()
	}

	select {
	case <-p.done:
	case <-time.After(stopGrace):
		if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return err
		}
		<-p.done
	}
	return nil
}

// expand splits tpl into a program and its arguments, substituting vars.
func expand(tpl string, vars map[string]string) (string, []string, error) {
	fields := strings.Fields(tpl)
	if len(fields) == 0 {
		return "", nil, common.ErrNotConfigured
	}

	for i, f := range fields {
		for k, v := range vars {
			f = strings.ReplaceAll(f, "{"+k+"}", v)
		}
		fields[i] = f
	}
	return fields[0], fields[1:], nil
}

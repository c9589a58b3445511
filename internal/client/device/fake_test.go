package device

import (
	"context"
	"errors"
	"os"
	"sync"
)

type runCall struct {
	Name string
	Args []string
}

// fakeRunner records calls. OnRun may create the output file.
type fakeRunner struct {
	mu       sync.Mutex
	Runs     []runCall
	Starts   []runCall
	RunErr   error
	StartErr error
	OnRun    func(name string, args []string)
	procs    []*fakeProcess
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.mu.Lock()
	f.Runs = append(f.Runs, runCall{name, args})
	hook, err := f.OnRun, f.RunErr
	f.mu.Unlock()

	if hook != nil {
		hook(name, args)
	}
	return err
}

func (f *fakeRunner) Start(name string, args ...string) (Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Starts = append(f.Starts, runCall{name, args})
	if f.StartErr != nil {
		return nil, f.StartErr
	}
	p := &fakeProcess{done: make(chan struct{})}
	f.procs = append(f.procs, p)
	return p, nil
}

func (f *fakeRunner) lastProc() *fakeProcess {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.procs[len(f.procs)-1]
}

type fakeProcess struct {
	once    sync.Once
	done    chan struct{}
	stopped bool
	StopErr error
}

func (p *fakeProcess) finish() { p.once.Do(func() { close(p.done) }) }

func (p *fakeProcess) Stop() error {
	p.stopped = true
	p.finish()
	return p.StopErr
}

func (p *fakeProcess) Wait() error {
	<-p.done
	return nil
}

// touchOut creates the last argument of a command as an empty file.
func touchOut(_ string, args []string) {
	if len(args) > 0 {
		_ = os.WriteFile(args[len(args)-1], nil, 0o600)
	}
}

type notification struct{ Title, Body string }

type fakeNotifier struct {
	mu   sync.Mutex
	got  []notification
	Err  error
	sent chan struct{}
}

func (n *fakeNotifier) Notify(_ context.Context, title, body string) error {
	n.mu.Lock()
	n.got = append(n.got, notification{title, body})
	n.mu.Unlock()
	if n.sent != nil {
		select {
		case n.sent <- struct{}{}:
		default:
		}
	}
	return n.Err
}

var errBoom = errors.New("boom")

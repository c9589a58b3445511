package device

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type CommandCamera struct {
	runner  Runner
	command string
	dir     string
	now     func() time.Time
}

func NewCommandCamera(r Runner, command, dir string) *CommandCamera {
	return &CommandCamera{runner: r, command: command, dir: dir, now: time.Now}
}

func (c *CommandCamera) CapturePhoto(ctx context.Context) (string, error) {
	path := filepath.Join(c.dir, photoName(c.now()))

	name, args, err := expand(c.command, map[string]string{"out": path})
	if err != nil {
		return "", fmt.Errorf("camera: %w", err)
	}
	if err := c.runner.Run(ctx, name, args...); err != nil {
		return "", fmt.Errorf("camera: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("camera: %w: %s", ErrNoOutput, path)
	}
	return path, nil
}

func photoName(t time.Time) string {
	return "MEAL_" + t.Format("20060102_150405") + "_" + uuid.NewString() + ".jpg"
}

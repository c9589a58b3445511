package device

import (
	"context"
	"fmt"
	"strings"
)

type CommandSpeaker struct {
	runner  Runner
	command string
}

func NewCommandSpeaker(r Runner, command string) *CommandSpeaker {
	return &CommandSpeaker{runner: r, command: command}
}

// Speak blocks until the text has been spoken. Blank text is a no-op.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	name, args, err := expand(s.command, map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("speaker: %w", err)
	}
	if err := s.runner.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("speaker: %w", err)
	}
	return nil
}

package device

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/eatsbalance/internal/logging"
)

// WriterNotifier prints notifications to a terminal.
type WriterNotifier struct {
	mu  sync.Mutex
	w   io.Writer
	log logging.Logger
}

func NewWriterNotifier(w io.Writer, log logging.Logger) *WriterNotifier {
	if log == nil {
		log = logging.NewNop()
	}
	return &WriterNotifier{w: w, log: log}
}

func (n *WriterNotifier) Notify(ctx context.Context, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.log.Info(ctx, "notification", "title", title)
	_, err := fmt.Fprintf(n.w, "\n\a[%s] %s\n", title, body)
	return err
}

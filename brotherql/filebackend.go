package brotherql

import (
	"context"
	"fmt"
	"os"
)

// fileBackend writes jobs to a file or a line printer device node
// (e.g. /dev/usb/lp0 via the kernel usblp driver).
type fileBackend struct {
	f *os.File
}

func openFile(t Target) (*fileBackend, error) {
	f, err := os.OpenFile(t.Path, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open printer device %s: %w", t.Path, err)
	}
	return &fileBackend{f: f}, nil
}

func (b *fileBackend) Send(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := b.f.Write(data); err != nil {
		return fmt.Errorf("failed to write print data: %w", err)
	}
	return nil
}

func (b *fileBackend) Close() error {
	return b.f.Close()
}

package brotherql

import (
	"context"
	"fmt"
	"net"
	"time"
)

// statusLength is the size of the status packet the printer sends back.
const statusLength = 32

// networkBackend sends jobs over the raw printing port (9100).
type networkBackend struct {
	conn net.Conn
}

func openNetwork(ctx context.Context, t Target) (*networkBackend, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(t.Host, fmt.Sprintf("%d", t.Port)))
	if err != nil {
		return nil, fmt.Errorf("printer %s unreachable: %w", t, err)
	}
	return &networkBackend{conn: conn}, nil
}

func (b *networkBackend) Send(ctx context.Context, data []byte) error {
	deadline := time.Now().Add(30 * time.Second)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := b.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	if _, err := b.conn.Write(data); err != nil {
		return fmt.Errorf("failed to send print data: %w", err)
	}

	// The job contains a status request; wait for the reply so errors
	// (out of media, cover open) surface on the job instead of silently
	// disappearing. Printers that never answer just hit the deadline.
	if err := b.conn.SetReadDeadline(deadline); err != nil {
		return err
	}
	buf := make([]byte, statusLength)
	if n, _ := readFull(b.conn, buf); n < statusLength {
		// No complete status reply before the deadline. The data was
		// accepted, so treat the job as sent.
		return nil
	}
	return parseStatus(buf)
}

func (b *networkBackend) Close() error {
	return b.conn.Close()
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// parseStatus inspects a 32 byte status packet for error conditions.
func parseStatus(buf []byte) error {
	if len(buf) < statusLength || buf[0] != 0x80 {
		return fmt.Errorf("malformed printer status reply")
	}

	var problems []string
	for mask, msg := range statusErrors1 {
		if buf[8]&mask != 0 {
			problems = append(problems, msg)
		}
	}
	for mask, msg := range statusErrors2 {
		if buf[9]&mask != 0 {
			problems = append(problems, msg)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("printer reported error: %v", problems)
	}
	return nil
}

var statusErrors1 = map[byte]string{
	0x01: "no media",
	0x02: "end of media",
	0x04: "cutter jam",
	0x10: "printer in use",
	0x20: "printer turned off",
}

var statusErrors2 = map[byte]string{
	0x01: "replace media",
	0x04: "transmission error",
	0x10: "cover open",
	0x40: "media cannot be fed",
	0x80: "system error",
}

package brotherql_test

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"brother-bridge/brotherql"

	"github.com/stretchr/testify/assert"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		want    string
	}{
		{"TCPDefaultPort", "tcp://192.168.1.50", false, "tcp://192.168.1.50:9100"},
		{"TCPExplicitPort", "tcp://printer.local:9101", false, "tcp://printer.local:9101"},
		{"USB", "usb://04f9:209b", false, "usb://04f9:209b"},
		{"USBWithSerial", "usb://04f9:209b/000M6Z401370", false, "usb://04f9:209b/000M6Z401370"},
		{"File", "file:///dev/usb/lp0", false, "file:///dev/usb/lp0"},
		{"MissingScheme", "192.168.1.50", true, ""},
		{"BadScheme", "ipp://printer", true, ""},
		{"BadPort", "tcp://host:notaport", true, ""},
		{"BadUSB", "usb://deadbeef", true, ""},
		{"EmptyHost", "tcp://", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := brotherql.ParseTarget(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, target.String())
		})
	}
}

func TestFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")

	backend, err := brotherql.OpenBackend(context.Background(), "file://"+path)
	assert.NoError(t, err)

	payload := []byte{0x1B, 0x40, 0x1A}
	assert.NoError(t, backend.Send(context.Background(), payload))
	assert.NoError(t, backend.Close())

	written, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, payload, written)
}

func TestNetworkBackend(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		n, _ := conn.Read(buf)
		received <- buf[:n]
		// Reply with a healthy status packet.
		status := make([]byte, 32)
		status[0] = 0x80
		conn.Write(status)
	}()

	backend, err := brotherql.OpenBackend(context.Background(), "tcp://"+ln.Addr().String())
	assert.NoError(t, err)
	defer backend.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload := []byte{0x1B, 0x40, 0x1A}
	assert.NoError(t, backend.Send(ctx, payload))

	select {
	case got := <-received:
		assert.Equal(t, payload, got)
	case <-time.After(5 * time.Second):
		t.Fatal("printer never received the job")
	}
}

func TestNetworkBackendReportsPrinterError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		conn.Read(buf)
		status := make([]byte, 32)
		status[0] = 0x80
		status[8] = 0x01 // no media
		conn.Write(status)
	}()

	backend, err := brotherql.OpenBackend(context.Background(), "tcp://"+ln.Addr().String())
	assert.NoError(t, err)
	defer backend.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = backend.Send(ctx, []byte{0x1B, 0x40, 0x1A})
	assert.ErrorContains(t, err, "no media")
}

func TestOpenBackendUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Reserved TEST-NET-1 address, nothing listens there.
	_, err := brotherql.OpenBackend(ctx, "tcp://192.0.2.1:9100")
	assert.Error(t, err)
}

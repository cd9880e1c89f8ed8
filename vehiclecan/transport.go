//go:build linux || darwin
// +build linux darwin

package vehiclecan

import (
	"context"
	"fmt"
	"net"

	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

// Writer transmits outbound messages.
type Writer interface {
	WriteMessage(ctx context.Context, msg Message) error
	Close() error
}

// Reader receives raw frames for the snapshot decoder.
type Reader interface {
	ReadFrame(ctx context.Context) (can.Frame, error)
	Close() error
}

// SocketCANWriter transmits over a SocketCAN interface.
type SocketCANWriter struct {
	conn net.Conn
	tx   *socketcan.Transmitter
}

func NewSocketCANWriter(ctx context.Context, iface string) (*SocketCANWriter, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial: %w", err)
	}
	return &SocketCANWriter{conn: conn, tx: socketcan.NewTransmitter(conn)}, nil
}

func (w *SocketCANWriter) WriteMessage(ctx context.Context, msg Message) error {
	return w.tx.TransmitFrame(ctx, msg.Frame())
}

func (w *SocketCANWriter) Close() error {
	if w.conn != nil {
		return w.conn.Close()
	}
	return nil
}

// SocketCANReader receives from a SocketCAN interface.
type SocketCANReader struct {
	conn net.Conn
	recv *socketcan.Receiver
}

func NewSocketCANReader(ctx context.Context, iface string) (*SocketCANReader, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial: %w", err)
	}
	return &SocketCANReader{conn: conn, recv: socketcan.NewReceiver(conn)}, nil
}

// ReadFrame blocks until a frame arrives or the context is canceled.
func (r *SocketCANReader) ReadFrame(ctx context.Context) (can.Frame, error) {
	frameChan := make(chan can.Frame, 1)
	errChan := make(chan error, 1)

	go func() {
		if r.recv.Receive() {
			frameChan <- r.recv.Frame()
		} else {
			errChan <- fmt.Errorf("receive failed")
		}
	}()

	select {
	case <-ctx.Done():
		return can.Frame{}, ctx.Err()
	case frame := <-frameChan:
		return frame, nil
	case err := <-errChan:
		return can.Frame{}, err
	}
}

func (r *SocketCANReader) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

package osc

import (
	"context"
	"net"
	"sync"

	"github.com/pkg/errors"
)

var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, MaxPacketSize)
		return &b
	},
}

// Transport delivers encoded OSC packets. Delivery is best effort.
type Transport interface {
	Send(b []byte) error
}

// Client enables you to send OSC Packets to a specified server over UDP.
// Broadcast destinations such as 255.255.255.255 are allowed.
type Client struct {
	conn net.Conn
}

// Verify that Client implements the Transport interface.
var _ Transport = (*Client)(nil)

// Dial creates a new OSC Client with a connection to the specified server.
func Dial(addr string) (*Client, error) {
	return DialContext(context.Background(), addr)
}

// DialContext is like Dial but takes a context.
func DialContext(ctx context.Context, addr string) (*Client, error) {
	d := net.Dialer{Control: controlBroadcast}
	conn, err := d.DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "Dial %s", addr)
	}
	return &Client{conn: conn}, nil
}

// Send sends an encoded OSC packet as a single datagram.
func (c *Client) Send(b []byte) error {
	_, err := c.conn.Write(b)
	return err
}

// appender is implemented by Message and Bundle.
type appender interface {
	AppendTo(data []byte) (int, error)
}

// SendPacket encodes an OSC Packet and sends it to the server.
func (c *Client) SendPacket(packet Packet) error {
	a, ok := packet.(appender)
	if !ok {
		data, err := packet.MarshalBinary()
		if err != nil {
			return err
		}
		return c.Send(data)
	}

	b := bufPool.Get().(*[]byte)
	defer bufPool.Put(b)

	n, err := a.AppendTo(*b)
	if err != nil {
		return err
	}
	return c.Send((*b)[:n])
}

// RemoteAddr returns the address of the server.
func (c *Client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection to the server.
func (c *Client) Close() error {
	return c.conn.Close()
}

// ListenPacket opens a UDP socket for receiving OSC packets on addr. The
// address may be shared with other listeners.
func ListenPacket(ctx context.Context, addr string) (net.PacketConn, error) {
	lc := net.ListenConfig{Control: controlReuseAddr}
	conn, err := lc.ListenPacket(ctx, "udp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "ListenPacket %s", addr)
	}
	return conn, nil
}

package openrgb

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// A connection to an OpenRGB SDK server.
//
// Requests are serialized; a Client is safe for concurrent use but each call
// holds the connection until its exchange completes.
type Client struct {
	conn net.Conn   // Underlying TCP connection.
	mu   sync.Mutex // Serializes request/response exchanges.
}

// Connects to the server at addr (host:port).
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewClient(conn), nil
}

// Wraps an established connection.
func NewClient(conn net.Conn) *Client {
	return &Client{conn: conn}
}

// Closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Registers a display name for this client with the server.
func (c *Client) SetName(ctx context.Context, name string) error {
	return c.send(ctx, 0, pktSetClientName, append([]byte(name), 0))
}

// Returns the number of controllers the server exposes.
func (c *Client) ControllerCount(ctx context.Context) (int, error) {
	resp, err := c.request(ctx, 0, pktRequestControllerCount, nil)
	if err != nil {
		return 0, err
	}
	if len(resp) < 4 {
		return 0, fmt.Errorf("%w: short controller count", ErrProtocol)
	}
	return int(binary.LittleEndian.Uint32(resp)), nil
}

// Returns the description of the controller at index.
func (c *Client) Controller(ctx context.Context, index uint32) (Controller, error) {
	resp, err := c.request(ctx, index, pktRequestControllerData, nil)
	if err != nil {
		return Controller{}, err
	}
	return parseController(index, resp)
}

// Returns every controller in server order.
func (c *Client) Controllers(ctx context.Context) ([]Controller, error) {
	n, err := c.ControllerCount(ctx)
	if err != nil {
		return nil, err
	}

	ctrls := make([]Controller, 0, n)
	for i := range n {
		ctrl, err := c.Controller(ctx, uint32(i))
		if err != nil {
			return nil, err
		}
		ctrls = append(ctrls, ctrl)
	}
	return ctrls, nil
}

// Switches the controller to its custom (direct) mode so that per-LED colors
// take effect.
func (c *Client) SetCustomMode(ctx context.Context, index uint32) error {
	return c.send(ctx, index, pktSetCustomMode, nil)
}

// Sets the colors of all LEDs on the controller, one color per LED.
func (c *Client) UpdateLEDs(ctx context.Context, index uint32, colors []Color) error {
	return c.send(ctx, index, pktUpdateLEDs, encodeColors(colors))
}

// Writes a packet that has no response.
func (c *Client) send(ctx context.Context, device, id uint32, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer c.guard(ctx)()
	return c.write(device, id, body)
}

// Writes a packet and waits for the response with the same id.
//
// Unsolicited packets (such as device list notifications) received in the
// meantime are discarded.
func (c *Client) request(ctx context.Context, device, id uint32, body []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer c.guard(ctx)()
	if err := c.write(device, id, body); err != nil {
		return nil, err
	}

	for {
		h, payload, err := c.read()
		if err != nil {
			return nil, err
		}
		if h.id == id {
			return payload, nil
		}
		if h.id != pktDeviceListUpdated {
			return nil, fmt.Errorf("%w: unexpected packet %d waiting for %d", ErrProtocol, h.id, id)
		}
	}
}

func (c *Client) write(device, id uint32, body []byte) error {
	h := header{device: device, id: id, size: uint32(len(body))}
	_, err := c.conn.Write(append(h.encode(), body...))
	return err
}

func (c *Client) read() (header, []byte, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(c.conn, buf); err != nil {
		return header{}, nil, err
	}

	h, err := decodeHeader(buf)
	if err != nil {
		return header{}, nil, err
	}

	payload := make([]byte, h.size)
	if _, err := io.ReadFull(c.conn, payload); err != nil {
		return header{}, nil, err
	}
	return h, payload, nil
}

// Applies ctx's deadline and cancellation to the connection for the duration
// of one exchange. The returned function must be called when it completes.
func (c *Client) guard(ctx context.Context) func() {
	deadline, _ := ctx.Deadline()
	c.conn.SetDeadline(deadline)

	stop := context.AfterFunc(ctx, func() {
		c.conn.SetDeadline(time.Now())
	})
	return func() { stop() }
}

package net

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
)

// Client is a viewer's connection to a sharing host.
type Client struct {
	conn *websocket.Conn
}

func Dial(ctx context.Context, address string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: address, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) LocalAddr() string {
	return c.conn.LocalAddr().String()
}

// Run hands every frame to handle until the host goes away or ctx is
// cancelled. Cancellation is not reported as an error.
func (c *Client) Run(ctx context.Context, handle func(Frame)) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.conn.Close()
		case <-stop:
		}
	}()

	for {
		var f Frame
		if err := c.conn.ReadJSON(&f); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read from host: %w", err)
		}
		handle(f)
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

package conn

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/esphome-native/api-server/internal/metrics"
	"github.com/esphome-native/api-server/pkg/frame"
	"github.com/esphome-native/api-server/pkg/schema"
)

// Run drives the connection until either half fails or a DisconnectRequest
// closes it cleanly, then closes the underlying socket.
func (c *Connection) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// An externally cancelled ctx (process shutdown forcing a connection
	// closed) has no other way to unblock the reader's blocking socket
	// read, so it closes the socket directly.
	go func() {
		<-ctx.Done()
		c.netConn.Close()
	}()

	var g errgroup.Group
	g.Go(func() error { return c.readLoop(cancel) })
	g.Go(func() error {
		err := c.writeLoop(ctx)
		if err != nil {
			// A failed write leaves the reader blocked on the socket;
			// cancelling closes the socket and unblocks it.
			cancel()
		}
		return err
	})

	err := g.Wait()
	c.netConn.Close()

	c.mu.Lock()
	c.stage = StageClosed
	c.mu.Unlock()

	if err == io.EOF {
		return nil
	}
	return err
}

// readLoop decodes frames, answers protocol-intrinsic messages, and
// forwards everything else to the application bus. A parse error drops
// the offending frame and continues; a transport or cipher error is
// fatal and cancels the writer.
func (c *Connection) readLoop(cancel context.CancelFunc) error {
	for {
		raw, err := c.stream.next()
		if err != nil {
			cancel()
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("conn: read: %w", err)
		}

		body := raw
		if c.mode == frame.ModeEncrypted {
			body, err = c.recvCipher.Decrypt(nil, nil, raw)
			if err != nil {
				cancel()
				return fmt.Errorf("conn: decrypt: %w", err)
			}
		}

		var msg schema.Message
		if c.mode == frame.ModeEncrypted {
			msg, err = schema.DecodeEncrypted(body)
		} else {
			msg, err = schema.DecodePlaintext(body)
		}
		if err != nil {
			if err == schema.ErrUnknownMessageType {
				logrus.WithField("connection_id", c.ID).Debug("dropping unrecognized message type")
			} else {
				logrus.WithFields(logrus.Fields{"connection_id": c.ID, "error": err}).Debug("dropping malformed message")
			}
			continue
		}

		metrics.MessagesRead.WithLabelValues(fmt.Sprintf("%d", msg.Type())).Inc()

		result := c.handleInbound(msg)
		for _, reply := range result.replies {
			c.outboundQueue <- reply
			metrics.ObserveQueueDepth(len(c.outboundQueue))
		}
		if result.forwardToApp {
			c.appInbound.Publish(msg)
		}
		if result.closeAfter {
			// Do not cancel here: the writer still needs to drain and send
			// the DisconnectResponse just enqueued above.
			return nil
		}
	}
}

// writeLoop drains the outbound queue onto the wire. Cancellation is
// checked with priority over the queue so a broken read half unblocks the
// writer promptly even while it is backed up.
func (c *Connection) writeLoop(ctx context.Context) error {
	codec := frame.New(c.mode)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-c.outboundQueue:
			if !ok {
				return nil
			}
			if err := c.writeMessage(codec, msg); err != nil {
				return fmt.Errorf("conn: write: %w", err)
			}
			metrics.MessagesWritten.WithLabelValues(fmt.Sprintf("%d", msg.Type())).Inc()
			if _, isDisconnect := msg.(*schema.DisconnectResponse); isDisconnect {
				return nil
			}
		}
	}
}

func (c *Connection) writeMessage(codec *frame.Codec, msg schema.Message) error {
	var body []byte
	if c.mode == frame.ModeEncrypted {
		plain := schema.EncodeEncrypted(msg)
		var err error
		body, err = c.sendCipher.Encrypt(nil, nil, plain)
		if err != nil {
			return err
		}
	} else {
		var err error
		body, err = schema.EncodePlaintext(msg)
		if err != nil {
			return err
		}
	}

	framed, err := codec.Encode(body)
	if err != nil {
		return err
	}
	_, err = c.netConn.Write(framed)
	return err
}

package server

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsdice/internal/protocol"
	"github.com/stretchr/testify/require"
)

func TestSendAfterCloseDoesNotPanic(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	c := &Connection{
		send:   make(chan *protocol.Response, 1),
		logger: log.New(io.Discard),
		ctx:    ctx,
		cancel: cancel,
	}

	// Shutdown closes the send channel while readPump may still be
	// delivering a response; Send must survive landing on the closed channel.
	cancel()
	close(c.send)

	require.NotPanics(t, func() {
		for i := 0; i < 100; i++ {
			_ = c.Send(&protocol.Response{Type: protocol.TypeGameState})
		}
	})
}

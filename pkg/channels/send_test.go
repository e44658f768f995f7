package channels_test

import (
	"testing"

	"github.com/alkime/doba/pkg/channels"
	"github.com/stretchr/testify/require"
)

func TestSendNonBlock(t *testing.T) {
	t.Parallel()

	ch := make(chan int, 1)
	require.NoError(t, channels.SendNonBlock(ch, 1))
	require.ErrorIs(t, channels.SendNonBlock(ch, 2), channels.ErrChannelFull)

	close(ch)
	require.ErrorIs(t, channels.SendNonBlock(ch, 3), channels.ErrChannelClosed)
}

func TestDropCounter(t *testing.T) {
	t.Parallel()

	ch := make(chan []byte, 2)
	dc := channels.NewDropCounter(ch)

	require.True(t, dc.Send([]byte{1}))
	require.True(t, dc.Send([]byte{2}))
	require.False(t, dc.Send([]byte{3}), "buffer full")
	require.Equal(t, int64(1), dc.Dropped())

	<-ch
	<-ch
	close(ch)

	require.False(t, dc.Send([]byte{4}))
	require.False(t, dc.Send([]byte{5}))
	require.Equal(t, int64(3), dc.Dropped())
}

package live

import (
	"context"
	"sync"
	"time"
)

// KeySource is a channel-fed Source for terminal hosts. The UI pushes key
// tokens as the participant presses them; Poll returns the next buffered
// token, or the idle input once the tick's grace interval elapses so a
// paced game keeps moving without input.
type KeySource struct {
	Interval time.Duration // idle grace per tick; 0 blocks until input

	keys      chan string
	done      chan struct{}
	closeOnce sync.Once
}

// NewKeySource creates a key source with the given buffer capacity.
func NewKeySource(interval time.Duration, buffer int) *KeySource {
	if buffer < 1 {
		buffer = 16
	}
	return &KeySource{
		Interval: interval,
		keys:     make(chan string, buffer),
		done:     make(chan struct{}),
	}
}

// Push queues a key token. If the buffer is full the oldest token is
// dropped so the UI thread never blocks on a slow session.
func (k *KeySource) Push(key string) {
	select {
	case <-k.done:
		return
	default:
	}

	select {
	case k.keys <- key:
	default:
		select {
		case <-k.keys:
		default:
		}
		select {
		case k.keys <- key:
		default:
		}
	}
}

// Poll returns the next key token, the idle input after the grace
// interval, or an error once the source is closed or ctx is done.
func (k *KeySource) Poll(ctx context.Context) (RawInput, error) {
	var idle <-chan time.Time
	if k.Interval > 0 {
		t := time.NewTimer(k.Interval)
		defer t.Stop()
		idle = t.C
	}

	select {
	case key := <-k.keys:
		return RawInput{Key: key}, nil
	case <-idle:
		return RawInput{}, nil
	case <-k.done:
		return RawInput{}, ErrClosed
	case <-ctx.Done():
		return RawInput{}, ctx.Err()
	}
}

// Close shuts the source down; pending and future Polls fail with
// ErrClosed.
func (k *KeySource) Close() {
	k.closeOnce.Do(func() { close(k.done) })
}

// FrameBuffer is a channel-backed Sink. Frames overflow by dropping the
// oldest so the session never stalls on a slow renderer.
type FrameBuffer struct {
	frames chan Frame
}

// NewFrameBuffer creates a frame sink with the given capacity.
func NewFrameBuffer(capacity int) *FrameBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &FrameBuffer{frames: make(chan Frame, capacity)}
}

// PushFrame queues a frame, dropping the oldest on overflow.
func (b *FrameBuffer) PushFrame(f Frame) error {
	select {
	case b.frames <- f:
		return nil
	default:
	}
	select {
	case <-b.frames:
	default:
	}
	select {
	case b.frames <- f:
	default:
	}
	return nil
}

// Frames returns the channel the host renders from.
func (b *FrameBuffer) Frames() <-chan Frame {
	return b.frames
}

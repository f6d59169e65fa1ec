package live

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/vovakirdan/lazytick/internal/engine"
)

type fakeSource struct {
	inputs []RawInput
	err    error
	calls  int
}

func (f *fakeSource) Poll(ctx context.Context) (RawInput, error) {
	f.calls++
	if f.err != nil {
		return RawInput{}, f.err
	}
	if len(f.inputs) == 0 {
		<-ctx.Done()
		return RawInput{}, ctx.Err()
	}
	in := f.inputs[0]
	f.inputs = f.inputs[1:]
	return in, nil
}

type recordingSink struct {
	frames []Frame
	err    error
}

func (r *recordingSink) PushFrame(f Frame) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, f)
	return nil
}

func newProvider(src Source, sink Sink) *Provider[int, int] {
	return &Provider[int, int]{
		Source: src,
		Sink:   sink,
		Decode: func(in RawInput) (int, error) {
			if in.Key == "" {
				return 0, nil
			}
			return strconv.Atoi(in.Key)
		},
		Render: func(s int) string { return "state " + strconv.Itoa(s) },
	}
}

func TestProviderRespond(t *testing.T) {
	src := &fakeSource{inputs: []RawInput{{Key: "5"}}}
	sink := &recordingSink{}
	p := newProvider(src, sink)

	resp, err := p.Respond(context.Background(), engine.Identity("x"), []int{10, 20})
	if err != nil {
		t.Fatalf("Respond() failed: %v", err)
	}
	if resp != 5 {
		t.Errorf("Respond() = %d, expected 5", resp)
	}
	if src.calls != 1 {
		t.Errorf("Poll called %d times, expected 1 per tick", src.calls)
	}

	// The frame for the latest published state went out before polling.
	if len(sink.frames) != 1 {
		t.Fatalf("pushed %d frames, expected 1", len(sink.frames))
	}
	if sink.frames[0].Tick != 1 || sink.frames[0].View != "state 20" {
		t.Errorf("frame = %+v, expected tick 1 view of the latest state", sink.frames[0])
	}
}

func TestProviderTimeout(t *testing.T) {
	src := &fakeSource{} // never produces input
	p := newProvider(src, nil)
	p.Timeout = 10 * time.Millisecond

	_, err := p.Respond(context.Background(), engine.Identity("x"), []int{1})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Respond() = %v, expected ErrUnavailable after timeout", err)
	}
}

func TestProviderSourceFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("device gone")}
	p := newProvider(src, nil)

	_, err := p.Respond(context.Background(), engine.Identity("x"), []int{1})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Respond() = %v, expected ErrUnavailable on device failure", err)
	}
}

func TestProviderCancellation(t *testing.T) {
	src := &fakeSource{} // blocks on ctx
	p := newProvider(src, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := p.Respond(ctx, engine.Identity("x"), []int{1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Respond() = %v, expected context.Canceled", err)
	}
	if errors.Is(err, ErrUnavailable) {
		t.Error("cancellation was misreported as device unavailability")
	}
}

func TestProviderSinkFailureNotFatal(t *testing.T) {
	src := &fakeSource{inputs: []RawInput{{Key: "1"}}}
	sink := &recordingSink{err: errors.New("renderer gone")}
	p := newProvider(src, sink)

	if _, err := p.Respond(context.Background(), engine.Identity("x"), []int{1}); err != nil {
		t.Errorf("Respond() failed on sink error: %v", err)
	}
}

func TestProviderDecodeFailure(t *testing.T) {
	src := &fakeSource{inputs: []RawInput{{Key: "not-a-number"}}}
	p := newProvider(src, nil)

	if _, err := p.Respond(context.Background(), engine.Identity("x"), []int{1}); err == nil {
		t.Error("Respond() succeeded on undecodable input")
	}
}

func TestKeySourceOrder(t *testing.T) {
	src := NewKeySource(0, 8)
	defer src.Close()

	src.Push("a")
	src.Push("b")

	for _, want := range []string{"a", "b"} {
		in, err := src.Poll(context.Background())
		if err != nil {
			t.Fatalf("Poll() failed: %v", err)
		}
		if in.Key != want {
			t.Errorf("Poll() = %q, expected %q", in.Key, want)
		}
	}
}

func TestKeySourceIdleInterval(t *testing.T) {
	src := NewKeySource(5*time.Millisecond, 8)
	defer src.Close()

	in, err := src.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll() failed: %v", err)
	}
	if in.Key != "" {
		t.Errorf("idle Poll() = %q, expected empty input", in.Key)
	}
}

func TestKeySourceDropOldest(t *testing.T) {
	src := NewKeySource(0, 2)
	defer src.Close()

	src.Push("a")
	src.Push("b")
	src.Push("c") // overflows; "a" is dropped

	in, err := src.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll() failed: %v", err)
	}
	if in.Key != "b" {
		t.Errorf("Poll() after overflow = %q, expected %q", in.Key, "b")
	}
}

func TestKeySourceClosed(t *testing.T) {
	src := NewKeySource(0, 8)
	src.Close()

	if _, err := src.Poll(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Poll() on closed source = %v, expected ErrClosed", err)
	}
	// Close twice must be safe.
	src.Close()
}

func TestFrameBufferDropOldest(t *testing.T) {
	buf := NewFrameBuffer(2)

	for i := range 3 {
		if err := buf.PushFrame(Frame{Tick: i}); err != nil {
			t.Fatalf("PushFrame(%d) failed: %v", i, err)
		}
	}

	f := <-buf.Frames()
	if f.Tick != 1 {
		t.Errorf("first buffered frame tick = %d, expected 1 after overflow", f.Tick)
	}
}

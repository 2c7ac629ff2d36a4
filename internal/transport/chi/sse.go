package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
	"unicode"

	"github.com/hotelgenx/concierge/internal/domain"
)

// sseSink delivers pipeline messages as server-sent events, preserving
// production order. Text content is split into word chunks and paced to
// simulate incremental typing; hotel cards are sent whole with a pause
// after each one.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
	opts    StreamOptions
}

func newSSESink(w http.ResponseWriter, flusher http.Flusher, opts StreamOptions) *sseSink {
	return &sseSink{w: w, flusher: flusher, opts: opts}
}

// Send implements chat.Sink.
func (s *sseSink) Send(ctx context.Context, msg domain.Message) error {
	switch msg.Type {
	case domain.MessageText, domain.MessageError:
		return s.sendPacedText(ctx, msg)
	default:
		if err := s.writeEvent(msg); err != nil {
			return err
		}
		return s.pause(ctx, s.opts.CardDelay)
	}
}

// Done emits the terminating event so clients can close the stream.
func (s *sseSink) Done() {
	fmt.Fprint(s.w, "event: done\ndata: {}\n\n")
	s.flusher.Flush()
}

// sendPacedText splits the content into word chunks that each carry the
// parent message's ID, so clients can reassemble the full text.
func (s *sseSink) sendPacedText(ctx context.Context, msg domain.Message) error {
	chunks := splitStreamChunks(msg.Content)
	if len(chunks) <= 1 || s.opts.WordDelay <= 0 {
		return s.writeEvent(msg)
	}

	for _, chunk := range chunks {
		part := msg
		part.Content = chunk
		if err := s.writeEvent(part); err != nil {
			return err
		}
		if err := s.pause(ctx, s.opts.WordDelay); err != nil {
			return err
		}
	}
	return nil
}

func (s *sseSink) writeEvent(msg domain.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "event: message\ndata: %s\n\n", data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	s.flusher.Flush()
	return nil
}

func (s *sseSink) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// splitStreamChunks breaks text before each whitespace run, keeping the
// whitespace attached to the following chunk so concatenating the chunks
// reproduces the original text exactly.
func splitStreamChunks(text string) []string {
	if text == "" {
		return nil
	}

	var chunks []string
	runes := []rune(text)
	start := 0
	inSpace := false

	for i, r := range runes {
		isSpace := unicode.IsSpace(r)
		if isSpace && !inSpace && i > start {
			chunks = append(chunks, string(runes[start:i]))
			start = i
		}
		inSpace = isSpace
	}
	chunks = append(chunks, string(runes[start:]))
	return chunks
}

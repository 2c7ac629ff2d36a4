package chi

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hotelgenx/concierge/internal/domain"
)

func TestSplitStreamChunks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single word", "привет", []string{"привет"}},
		{"words", "я нашёл отель", []string{"я", " нашёл", " отель"}},
		{"newline", "строка\nвторая", []string{"строка", "\nвторая"}},
		{"leading space", " хвост", []string{" хвост"}},
		{"multi space", "a  b", []string{"a", "  b"}},
		{"trailing space", "конец ", []string{"конец", " "}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := splitStreamChunks(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("split %q = %q, want %q", tc.text, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

// Concatenating the chunks must reproduce the source text byte for byte,
// or clients reassemble a corrupted message.
func TestSplitStreamChunks_Lossless(t *testing.T) {
	texts := []string{
		"🎉 Я нашёл для вас 3 отеля:\n\n",
		"\n\n💡 Хотите узнать больше об одном из этих отелей? Спросите меня подробнее! 🌟",
		"  двойной  пробел  ",
		"одно",
	}
	for _, text := range texts {
		if got := strings.Join(splitStreamChunks(text), ""); got != text {
			t.Errorf("join(split(%q)) = %q", text, got)
		}
	}
}

func sinkEvents(t *testing.T, body string) []domain.Message {
	t.Helper()
	var msgs []domain.Message
	for _, block := range strings.Split(body, "\n\n") {
		if !strings.HasPrefix(block, "event: message\n") {
			continue
		}
		data := strings.TrimPrefix(block, "event: message\ndata: ")
		var m domain.Message
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			t.Fatalf("bad event payload %q: %v", data, err)
		}
		msgs = append(msgs, m)
	}
	return msgs
}

func TestSSESink_UnpacedTextIsOneEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	sink := newSSESink(rec, rec, StreamOptions{})

	msg := domain.NewTextMessage("я нашёл отель")
	if err := sink.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := sinkEvents(t, rec.Body.String())
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 when pacing is off", len(events))
	}
	if events[0].Content != "я нашёл отель" {
		t.Errorf("content = %q", events[0].Content)
	}
}

func TestSSESink_PacedTextChunksShareID(t *testing.T) {
	rec := httptest.NewRecorder()
	sink := newSSESink(rec, rec, StreamOptions{WordDelay: time.Nanosecond})

	msg := domain.NewTextMessage("я нашёл отель")
	if err := sink.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := sinkEvents(t, rec.Body.String())
	if len(events) != 3 {
		t.Fatalf("got %d events, want one per chunk", len(events))
	}

	var text string
	for _, e := range events {
		if e.ID != msg.ID {
			t.Errorf("chunk ID = %q, want parent %q", e.ID, msg.ID)
		}
		text += e.Content
	}
	if text != "я нашёл отель" {
		t.Errorf("reassembled = %q", text)
	}
}

func TestSSESink_HotelCardSentWhole(t *testing.T) {
	rec := httptest.NewRecorder()
	sink := newSSESink(rec, rec, StreamOptions{WordDelay: time.Nanosecond})

	card := domain.NewHotelCard(domain.Hotel{ID: "h1", Name: "Rixos Premium Belek"})
	if err := sink.Send(context.Background(), card); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := sinkEvents(t, rec.Body.String())
	if len(events) != 1 {
		t.Fatalf("got %d events, want the card in one piece", len(events))
	}
	if events[0].Type != domain.MessageHotelCard || events[0].Hotel == nil || events[0].Hotel.ID != "h1" {
		t.Errorf("event = %+v", events[0])
	}
}

func TestSSESink_Done(t *testing.T) {
	rec := httptest.NewRecorder()
	sink := newSSESink(rec, rec, StreamOptions{})

	sink.Done()

	if !strings.Contains(rec.Body.String(), "event: done\ndata: {}") {
		t.Errorf("body = %q, want the done event", rec.Body.String())
	}
}

func TestSSESink_CancelledContextStopsPacing(t *testing.T) {
	rec := httptest.NewRecorder()
	sink := newSSESink(rec, rec, StreamOptions{WordDelay: time.Minute})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sink.Send(ctx, domain.NewTextMessage("слово одно два"))
	if err == nil {
		t.Fatal("expected a context error")
	}
}

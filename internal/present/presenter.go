// Package present turns ranked search results into the outbound message
// sequence shown to the user. It is a pure transformation: no I/O, no
// pacing. Delivery timing belongs to the transport.
package present

import (
	"fmt"
	"strings"

	"github.com/hotelgenx/concierge/internal/domain"
)

const notFoundText = "😢 К сожалению, я не нашёл отелей, соответствующих вашим критериям.\n\n" +
	"Попробуйте изменить:\n" +
	"• Диапазон цен\n" +
	"• Количество звёзд\n" +
	"• Страну или город\n\n" +
	"Я всегда готов помочь! 🏨"

const footerText = "\n\n💡 Хотите узнать больше об одном из этих отелей? " +
	"Спросите меня подробнее! 🌟"

// Presenter renders result lists as chat messages.
type Presenter struct{}

// New creates a presenter.
func New() *Presenter {
	return &Presenter{}
}

// Present renders a ranked result list, preserving its order.
//
// An empty list yields exactly one "not found" message. Otherwise the
// sequence is a header with the count, one card per hotel, and a closing
// follow-up prompt.
func (p *Presenter) Present(results []domain.Hotel) []domain.Message {
	if len(results) == 0 {
		return []domain.Message{domain.NewTextMessage(notFoundText)}
	}

	msgs := make([]domain.Message, 0, len(results)+2)
	msgs = append(msgs, domain.NewTextMessage(
		fmt.Sprintf("🎉 Я нашёл для вас %d %s:\n\n", len(results), hotelsWord(len(results)))))

	for _, h := range results {
		msgs = append(msgs, domain.NewHotelCard(h))
	}

	msgs = append(msgs, domain.NewTextMessage(footerText))
	return msgs
}

// CardSummary renders a one-line text form of a hotel card. Used by
// transports that cannot carry structured payloads.
func CardSummary(h *domain.Hotel) string {
	var b strings.Builder

	b.WriteString("🏨 ")
	b.WriteString(h.Name)

	if h.Stars != nil {
		fmt.Fprintf(&b, " %s", strings.Repeat("⭐", *h.Stars))
	}

	switch {
	case h.City != "" && h.Country != "":
		fmt.Fprintf(&b, " — %s, %s", h.City, h.Country)
	case h.City != "":
		fmt.Fprintf(&b, " — %s", h.City)
	case h.Country != "":
		fmt.Fprintf(&b, " — %s", h.Country)
	}

	if h.PricePerNight != nil {
		fmt.Fprintf(&b, " | от %.0f ₽/ночь", *h.PricePerNight)
	}

	if h.HasAmenities() {
		b.WriteString(" |")
		if flagTrue(h.KidsClub) {
			b.WriteString(" 👶 детский клуб")
		}
		if flagTrue(h.AllInclusive) {
			b.WriteString(" 🍽 всё включено")
		}
		if flagTrue(h.Aquapark) {
			b.WriteString(" 💦 аквапарк")
		}
	}

	return b.String()
}

// hotelsWord picks the Russian plural form for a count of hotels.
func hotelsWord(n int) string {
	n %= 100
	if n >= 11 && n <= 14 {
		return "отелей"
	}
	switch n % 10 {
	case 1:
		return "отель"
	case 2, 3, 4:
		return "отеля"
	default:
		return "отелей"
	}
}

func flagTrue(p *bool) bool {
	return p != nil && *p
}

package stylist

import (
	"fmt"
	"strings"

	"rentwear/internal/selection"
)

const preamble = `You are a friendly personal stylist for a clothing rental marketplace.
Answer the customer's question in a few short paragraphs.
Suggest outfit combinations, occasions and accessories.
Do not invent prices or product names that are not given to you.
Do not answer questions unrelated to clothing, style or the rental.`

// BuildPrompt assembles the stylist prompt. Cart entries, when given, are
// listed in cart order so the model can refer to what the customer picked.
func BuildPrompt(question string, cart []selection.Entry) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\n")

	if len(cart) > 0 {
		b.WriteString("The customer currently has these items in their rental cart:\n")
		for _, e := range cart {
			fmt.Fprintf(&b, "- %s", e.Product.Name)
			if e.Product.Category != "" {
				fmt.Fprintf(&b, " (%s)", e.Product.Category)
			}
			fmt.Fprintf(&b, ", %d day(s) at %.2f per day\n", e.Days, e.Product.PricePerDay)
		}
		b.WriteString("\n")
	}

	b.WriteString("Customer question:\n")
	b.WriteString(question)
	return b.String()
}

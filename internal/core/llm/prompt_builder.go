package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SiteKnowledge is the live website data the assistant may quote.
type SiteKnowledge struct {
	Hero     *Section
	About    *Section
	Contact  *Section
	Services []Service
	Plans    []Plan
}

type Section struct {
	Title       string
	Subtitle    string
	Description string
	// Content is the free-form payload rendered as text; empty when absent.
	Content string
}

type Service struct {
	Title       string
	Description string
}

type Plan struct {
	Name     string
	Tagline  string
	Price    string
	Period   string
	Features []string
	Popular  bool
}

// PriceLabel renders "price/period", or just the price when there is no period.
func (p Plan) PriceLabel() string {
	if p.Period == "" {
		return p.Price
	}
	return p.Price + "/" + p.Period
}

const (
	sectionDescLimit  = 200
	serviceDescLimit  = 150
	maxPromptServices = 6
	maxPromptPlans    = 4
	maxPlanFeatures   = 4
)

// GenericSystemPrompt is used when the site data cannot be loaded.
const GenericSystemPrompt = `You are a helpful AI assistant for VedixLab, an AI consulting and software development studio.

Your role is to help visitors by:
- Answering questions about services, pricing, and features
- Providing information about the company
- Helping with technical questions
- Guiding users to appropriate resources
- Being friendly, professional, and concise

Keep responses helpful, accurate, and relevant to VedixLab's services. If asked about something outside your knowledge, politely redirect to contacting the support team.`

// BuildSystemPrompt assembles the preamble and the site data in the order
// overview, about, services, pricing, contact. Missing sections are omitted.
func BuildSystemPrompt(k *SiteKnowledge) string {
	var data strings.Builder

	if k.Hero != nil {
		data.WriteString("\nCompany Overview:\n")
		writeBullet(&data, k.Hero.Title)
		writeBullet(&data, k.Hero.Subtitle)
		writeBullet(&data, Truncate(k.Hero.Description, sectionDescLimit))
	}

	if k.About != nil {
		data.WriteString("\nAbout Us:\n")
		writeBullet(&data, k.About.Title)
		writeBullet(&data, Truncate(k.About.Description, sectionDescLimit))
	}

	if len(k.Services) > 0 {
		data.WriteString("\n\nOur Services:\n")
		for i, s := range k.Services {
			if i == maxPromptServices {
				break
			}
			fmt.Fprintf(&data, "%d. %s\n", i+1, s.Title)
			fmt.Fprintf(&data, "   %s\n\n", Truncate(s.Description, serviceDescLimit))
		}
		if extra := len(k.Services) - maxPromptServices; extra > 0 {
			fmt.Fprintf(&data, "...and %d more services available.\n", extra)
		}
	}

	if len(k.Plans) > 0 {
		data.WriteString("\n\nPricing Plans:\n")
		for i, p := range k.Plans {
			if i == maxPromptPlans {
				break
			}
			fmt.Fprintf(&data, "%d. %s%s\n", i+1, p.Name, popularTag(p.Popular))
			if p.Tagline != "" {
				fmt.Fprintf(&data, "   %s\n", p.Tagline)
			}
			fmt.Fprintf(&data, "   Price: %s\n", p.PriceLabel())
			if len(p.Features) > 0 {
				shown := p.Features
				if len(shown) > maxPlanFeatures {
					shown = shown[:maxPlanFeatures]
				}
				fmt.Fprintf(&data, "   Key Features: %s", strings.Join(shown, ", "))
				if extra := len(p.Features) - maxPlanFeatures; extra > 0 {
					fmt.Fprintf(&data, " (+%d more)", extra)
				}
				data.WriteString("\n")
			}
			data.WriteString("\n")
		}
	}

	if k.Contact != nil {
		data.WriteString("\n\nContact Information:\n")
		writeBullet(&data, k.Contact.Title)
		writeBullet(&data, k.Contact.Description)
		writeBullet(&data, k.Contact.Content)
	}

	var sb strings.Builder
	sb.WriteString("You are an AI assistant for VedixLab, an AI consulting and software development studio.\n\n")
	sb.WriteString("Role: Help visitors with services, pricing, features, and company info. Be friendly, professional, and concise.\n\n")
	sb.WriteString("WEBSITE DATA:\n")
	sb.WriteString(data.String())
	sb.WriteString("\n\nGuidelines:\n")
	sb.WriteString("1. Use ONLY the data above - don't make up information\n")
	sb.WriteString("2. Keep responses brief and to the point (2-3 sentences when possible)\n")
	sb.WriteString("3. For pricing/services questions, cite specific details from above\n")
	sb.WriteString("4. If info isn't available, suggest contacting support\n")
	sb.WriteString("5. Be conversational but efficient\n\n")
	sb.WriteString("Keep answers helpful and accurate.")

	return sb.String()
}

// Truncate cuts s to limit characters and appends "..." when anything was removed.
// The cut is not word aware.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

func popularTag(popular bool) string {
	if popular {
		return " (POPULAR)"
	}
	return ""
}

func writeBullet(sb *strings.Builder, s string) {
	if s != "" {
		fmt.Fprintf(sb, "- %s\n", s)
	}
}

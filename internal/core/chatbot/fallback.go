package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/vedixlab/vedixlab-backend/internal/core/llm"
)

// FallbackNote accompanies every keyword-fallback reply.
const FallbackNote = "Using fallback mode. Configure OPENROUTER_API_KEY for full AI capabilities."

const defaultCompanyName = "VedixLab"

// Rule names, also used in logs.
const (
	RuleGreeting = "greeting"
	RuleServices = "services"
	RulePricing  = "pricing"
	RuleContact  = "contact"
	RuleDefault  = "default"
)

// FallbackRule answers when any keyword occurs in the lower-cased message.
type FallbackRule struct {
	Name     string
	Keywords []string
	Respond  func(k *llm.SiteKnowledge) string
}

func (r FallbackRule) Matches(lowered string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// DefaultFallbackRules returns the rules in priority order; the first match wins.
func DefaultFallbackRules() []FallbackRule {
	return []FallbackRule{
		{Name: RuleGreeting, Keywords: []string{"hello", "hi", "hey"}, Respond: greetingReply},
		{Name: RuleServices, Keywords: []string{"service", "what do you offer"}, Respond: servicesReply},
		{Name: RulePricing, Keywords: []string{"price", "cost", "pricing"}, Respond: pricingReply},
		{Name: RuleContact, Keywords: []string{"contact", "support", "help"}, Respond: contactReply},
	}
}

type FallbackReply struct {
	Rule string
	Text string
	// Degraded is set when some site data could not be loaded.
	Degraded bool
}

// FallbackResponder produces canned replies without calling the completion API.
type FallbackResponder struct {
	source KnowledgeSource
	rules  []FallbackRule
}

func NewFallbackResponder(source KnowledgeSource, rules []FallbackRule) *FallbackResponder {
	if rules == nil {
		rules = DefaultFallbackRules()
	}
	return &FallbackResponder{source: source, rules: rules}
}

// Match returns the first rule matching message, or false when the default blurb applies.
func (f *FallbackResponder) Match(message string) (FallbackRule, bool) {
	lowered := strings.ToLower(strings.TrimSpace(message))
	for _, rule := range f.rules {
		if rule.Matches(lowered) {
			return rule, true
		}
	}
	return FallbackRule{}, false
}

// Respond loads fresh site data for the matched rule; it always returns a reply.
func (f *FallbackResponder) Respond(ctx context.Context, message string) FallbackReply {
	rule, ok := f.Match(message)
	if !ok {
		return FallbackReply{Rule: RuleDefault, Text: defaultReply}
	}

	k, degraded := f.source.LoadBestEffort(ctx)
	if k == nil {
		k = &llm.SiteKnowledge{}
	}
	return FallbackReply{Rule: rule.Name, Text: rule.Respond(k), Degraded: degraded}
}

const defaultReply = "Thank you for your message! 😊\n\n" +
	"To enable full AI chatbot capabilities, please configure the OpenRouter API key. " +
	"For now, I can help you with:\n" +
	"• Service information\n" +
	"• Pricing details\n" +
	"• Company information\n" +
	"• Contact support\n\n" +
	"Feel free to ask about our services, pricing, or how to get in touch with us!"

func greetingReply(k *llm.SiteKnowledge) string {
	company := defaultCompanyName
	tagline := ""
	if k.Hero != nil {
		if k.Hero.Title != "" {
			company = k.Hero.Title
		}
		if k.Hero.Subtitle != "" {
			tagline = k.Hero.Subtitle + " "
		}
	}

	return fmt.Sprintf("Hello! 👋 I'm your AI assistant for %s. %s", company, tagline) +
		"To enable full AI capabilities, please configure your OpenRouter API key in the backend/.env file. " +
		"For now, I can help with basic questions!\n\n" +
		"I can assist you with:\n" +
		"• Information about our services\n" +
		"• Pricing details\n" +
		"• Company information\n" +
		"• Technical support\n\n" +
		"Feel free to ask me anything!"
}

func servicesReply(k *llm.SiteKnowledge) string {
	if len(k.Services) == 0 {
		return "We offer AI consulting, custom software and automation services. " +
			"Please check our Services page for detailed information, or configure the OpenRouter API key for full AI assistance."
	}

	var sb strings.Builder
	sb.WriteString("Our Services:\n\n")
	for i, s := range k.Services {
		fmt.Fprintf(&sb, "%d. %s\n   %s\n\n", i+1, s.Title, s.Description)
	}
	sb.WriteString("Would you like more details about any specific service?")
	return sb.String()
}

func pricingReply(k *llm.SiteKnowledge) string {
	if len(k.Plans) == 0 {
		return "We offer flexible pricing plans to fit businesses of all sizes. " +
			"Please check our Pricing page for detailed information, or configure the OpenRouter API key for full AI assistance."
	}

	var sb strings.Builder
	sb.WriteString("Our Pricing Plans:\n\n")
	for i, p := range k.Plans {
		fmt.Fprintf(&sb, "%d. %s%s\n", i+1, p.Name, popularSuffix(p.Popular))
		fmt.Fprintf(&sb, "   Price: %s\n", p.PriceLabel())
		if p.Tagline != "" {
			fmt.Fprintf(&sb, "   %s\n", p.Tagline)
		}
		if len(p.Features) > 0 {
			shown := p.Features
			more := ""
			if len(shown) > 3 {
				shown = shown[:3]
				more = "..."
			}
			fmt.Fprintf(&sb, "   Features: %s%s\n", strings.Join(shown, ", "), more)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("For more details, please check our Pricing page or contact us!")
	return sb.String()
}

func contactReply(k *llm.SiteKnowledge) string {
	var sb strings.Builder
	sb.WriteString("I'm here to help! You can reach us through:\n\n")
	if k.Contact != nil {
		if k.Contact.Description != "" {
			sb.WriteString(k.Contact.Description + "\n\n")
		}
		if k.Contact.Content != "" {
			sb.WriteString(k.Contact.Content + "\n\n")
		}
	}
	sb.WriteString("• Contact Form - Fill out the form on our website\n" +
		"• Email - Send us an email directly\n" +
		"• Phone - Call our support team\n\n" +
		"Our team is ready to assist you with any questions or concerns!")
	return sb.String()
}

func popularSuffix(popular bool) string {
	if popular {
		return " (POPULAR)"
	}
	return ""
}

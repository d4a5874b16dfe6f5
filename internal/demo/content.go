package demo

// ChipResponse is one canned prompt/response pair offered by the chip bar.
type ChipResponse struct {
	Title   string
	Content string
}

// ChipResponses maps chip identifiers to their canned response.
var ChipResponses = map[string]ChipResponse{
	"what": {
		Title:   `"What Is..."`,
		Content: "Tangent is a floating, on-page AI assistant. Highlight any text, click a chip, and get an instant answer without leaving the page you are reading.",
	},
	"faq": {
		Title:   `"Prompt Chips"`,
		Content: "Prompt Chips are one-click action buttons that appear when you select text. Each chip carries a pre-written, optimized prompt for a specific task.",
	},
	"pricing": {
		Title:   `"Pricing"`,
		Content: "Tangent offers Pro at $12/month and Business Solo at $30/month, with a 7-day free trial of 1,000 queries.",
	},
}

// FirstChipID is the chip the intro auto-clicks.
const FirstChipID = "what"

// WelcomeMessage is typed out the first time the panel opens.
const WelcomeMessage = "Welcome to TANGENT.\n\nAccess the full knowledge of AI without breaking your train of thought. Go on tangents, explore ideas, and get instant answers—all without ever opening another tab."

// FAQAnswers maps FAQ item identifiers to their display text (taken from the
// real FAQ page).
var FAQAnswers = map[string]string{
	"what-is":      "Tangent is a floating, on-page AI assistant built to support the natural way people think. It helps you stay immersed in the subject in front of you while giving you the freedom to explore any question, tangent, or idea that arises along the way. Instead of switching tabs or copy-pasting text into a chatbot, Tangent appears directly on the webpages you're working on and responds with context-aware intelligence.",
	"how-works":    "Tangent listens only when you interact with it. When you ask a question or click a prompt chip, it gathers the text you highlighted, the surrounding paragraph, and anything you typed, and sends this structured context to Tangent's secure backend. The backend returns the result and Tangent displays it directly in the floating mini-chat.",
	"prompt-chips": "Prompt Chips are Tangent's one-click action buttons that appear when you select text. Each chip contains a pre-written, optimized prompt designed to perform a specific task. Instead of crafting a prompt manually, you click a chip and Tangent knows exactly what to do.",
	"custom-chips": "Yes. If you frequently perform a certain type of analysis or transformation, you can create your own custom chip with your preferred wording or structure. Your chip then appears in your chip bar just like the built-in ones.",
	"pricing":      "Tangent offers two subscription tiers: Pro ($12/month or $120/year) with 6,000 queries per month, and Business Solo ($30/month or $306/year) with 15,000 queries per month. A 7-day free trial with 1,000 queries is available.",
	"privacy":      "Yes. Tangent uses a security-first design. Your browser never stores or sends API keys, all communication is encrypted, and sensitive information is automatically redacted on your device before leaving your browser.",
	"browsers":     "Tangent works on Chrome and most Chromium browsers such as Brave, Edge, Opera, and Arc. A Safari version is planned for the future.",
}

// FAQQuestions maps FAQ item identifiers to the question shown as the user
// message when an item is picked.
var FAQQuestions = map[string]string{
	"what-is":      "What is Tangent?",
	"how-works":    "How does Tangent work?",
	"prompt-chips": "What are Prompt Chips?",
	"custom-chips": "Can I create custom chips?",
	"pricing":      "How much does Tangent cost?",
	"privacy":      "Is my data private?",
	"browsers":     "Which browsers are supported?",
}

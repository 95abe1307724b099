package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	CoachSystemPromptEN = `You are Coach Deb, an expert Career Debate Coach.

MANDATORY RULES:
1. ALWAYS give a clear structured roadmap (month-wise or step-wise)
2. ALWAYS explain current market demand & trends
3. ALWAYS give practical next actions
4. NEVER repeat the user's question
5. Be concise, structured, and realistic`

	CoachSystemPromptHI = `आप Coach Deb हैं – एक अनुभवी करियर कोच।

अनिवार्य नियम:
1. हमेशा स्पष्ट रोडमैप दें (महीनों में)
2. वर्तमान मार्केट डिमांड बताएं
3. अगले practical steps बताएं
4. यूज़र का सवाल दोहराएं नहीं`

	// Chat limits
	ChatMaxMessageLength = 4000
	ChatHistoryWindow    = 20
	ChatTemperature      = 0.6
	ChatMaxTokens        = 800

	ChatFallbackReply = "AI is temporarily unavailable. Please try again."

	ErrMessageEmpty   = "Message cannot be empty."
	ErrMessageTooLong = "Message is too long (max 4000 characters)."
	ErrContentEmpty   = "Content cannot be empty."
	ErrInternal       = "An error occurred while processing your request. Please try again."
	ErrPdfFontMissing = "PDF export for this language is not available: no Unicode font is configured."

	// PDF layout
	PdfDefaultTitle    = "Career Roadmap & Debate Summary"
	PdfDefaultFilename = "roadmap.pdf"
	PdfPlanHeading     = "Detailed Roadmap / Plan:"
)

package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	MedicalDisclaimer = "Medical Disclaimer: This is an AI assistant for educational purposes only. Always consult healthcare professionals for medical advice."

	// Front desk canned responses. These are deterministic; the LLM is only
	// consulted for free-form questions about an already resolved record.
	GreetingResponse = "Hello! I'm your post-discharge care assistant. What's your name?"

	IdentityFoundTemplate = "Hi %s! I found your discharge report from %s for %s. " +
		"How are you feeling today? Are you following your medication schedule?"

	IdentityNotFoundTemplate = "I couldn't find a discharge report for '%s'. " +
		"Please check the spelling of your name or contact support."

	IdentityAmbiguousTemplate = "I found more than one discharge report matching '%s'. " +
		"Could you give me your full name?"

	HandoffResponse = "This sounds like a medical concern. Let me connect you with our Clinical AI Agent."

	ResetResponse = "Okay, I've cleared the current conversation. What's your name?"

	// Degraded answers. A failing dependency never surfaces a raw error to
	// the patient.
	InsufficientContextResponse = "I don't have enough information in the available reference materials to answer this. " +
		"Please consider refining the question or consulting a healthcare professional."

	FrontDeskErrorResponse = "I'm sorry, I encountered an error. Please try again or contact support."

	ClinicalErrorResponse = "I'm sorry, I encountered an error processing your medical query. " +
		"Please try again or consult with a healthcare professional."

	WebSearchUnavailableNote = "Note: External search is temporarily unavailable; this answer is based on reference materials only."

	WebVerifyNote = "Note: Web search information should be verified with healthcare professionals."

	// FrontDeskSystemPrompt steers free-form answers about a resolved
	// discharge record.
	FrontDeskSystemPrompt = `You are a friendly and professional receptionist for a post-discharge care assistant system.

Your responsibilities:
1. Answer basic questions about the patient's discharge report (date, diagnosis, medications, follow-up)
2. Be empathetic, professional, and helpful
3. Keep answers short and conversational

Rules:
- Only use facts from the Patient Information section provided
- Do not give medical advice or interpret symptoms
- Do not invent information that is not in the discharge report

` + MedicalDisclaimer

	// ClinicalSystemPrompt enforces the groundedness policy for the domain
	// expert: answers come only from retrieved context, with citations.
	ClinicalSystemPrompt = `You are a Clinical AI Agent specializing in nephrology (kidney medicine).

STRICT GROUNDEDNESS POLICY (must follow exactly):
- You MUST answer ONLY using the provided context sections:
  1) Reference Material Information (retrieval results), and
  2) Web Search Results (if present).
- Do NOT use prior knowledge or general world knowledge outside the provided context.
- If the context does not contain the needed information, explicitly say you do not have enough information in the reference materials and suggest consulting a healthcare professional.
- Always include citations: reference chunks as [source: <document> <locator>] and list web URLs when used.
- Be concise, clinically safe, and clearly separate sections: Assessment, Guidance, Red flags, Next steps, and Sources.

Safety and Style:
- Never provide definitive diagnoses.
- Use patient context if provided.
- Prefer bullet points for clarity.

` + MedicalDisclaimer
)

// Reset phrases that hand the session back to the front desk.
var ResetPhrases = []string{"reset", "start over", "new patient", "restart"}

package media

const imagePrompt = "You are a Scam Detection Expert. Analyze this image carefully. Extract ALL visible text. " +
	"Describe any logos, seals, or formatting. Is this a Police Notice, Court Order, or Fake Bill? Be detailed."

const audioPrompt = `Listen to this audio carefully.
1. Identify the language spoken (e.g., Hindi, English, Marathi).
2. TRANSCRIBE exactly what was said in the original language.
3. Verify/Fact-Check the claim made in the audio.
4. Provide a polite, spoken-style REPLY in the SAME LANGUAGE as the audio.

Format the output exactly like this:
TRANSCRIPT: [The text of what was said]
VERDICT: [True/False/Misleading]
REPLY: [The spoken-style response]
LANGUAGE_TAG: [e.g., 'hi-IN' or 'en-US']`

package clipfind

import "fmt"

const (
	findSystemRole = "You are an expert at analyzing video transcriptions and identifying specific content segments. " +
		"You provide precise timestamp ranges for requested clips."

	refineSystemRole = "You are an expert video editor who optimizes clip boundaries for maximum impact and clarity."

	topicsSystemRole = "You are an expert at analyzing economic content and identifying key discussion topics."
)

func findPrompt(transcript, description string, cfg Config) string {
	return fmt.Sprintf(`Analyze the following video transcription and find the specific segment described by the user.

TRANSCRIPTION:
%s

USER REQUEST: %q

INSTRUCTIONS:
1. Find the section of the transcription that best matches the user's description
2. Identify clear start and end points for a coherent clip
3. Aim for clips between %.0f-%.0f seconds when possible
4. Ensure the clip has a natural beginning and ending
5. Provide your answer in this exact format:

START_TIME: [seconds]
END_TIME: [seconds]
REASONING: [brief explanation of why this section matches the request]

If you cannot find a suitable match, respond with:
START_TIME: NOT_FOUND
END_TIME: NOT_FOUND
REASONING: [explanation of why no match was found]
`, transcript, description, cfg.TargetMinSeconds, cfg.TargetMaxSeconds)
}

func refinePrompt(transcript string, startSec, endSec float64) string {
	return fmt.Sprintf(`Analyze this video transcription segment and suggest improvements to the clip boundaries for better flow and completeness.

CURRENT CLIP: %.1fs to %.1fs (duration: %.1fs)

TRANSCRIPTION CONTEXT:
%s

INSTRUCTIONS:
1. Review the current clip boundaries
2. Suggest better start/end points if they would improve content flow
3. Ensure the clip tells a complete story or makes a complete point
4. Aim for natural speech breaks and complete sentences

Respond with:
SUGGESTED_START: [seconds or KEEP_CURRENT]
SUGGESTED_END: [seconds or KEEP_CURRENT]
IMPROVEMENT_REASON: [explanation of suggested changes]
CONFIDENCE: [HIGH/MEDIUM/LOW]
`, startSec, endSec, endSec-startSec, transcript)
}

func topicsPrompt(transcript string) string {
	return fmt.Sprintf(`Analyze this video transcription and identify the main topics discussed, along with their approximate timestamps.

TRANSCRIPTION:
%s

INSTRUCTIONS:
1. Identify 3-7 main topics or themes discussed
2. For each topic, provide the approximate start time and a brief description
3. Focus on substantive content sections, not introductions or conclusions
4. Format your response as:

TOPIC 1: [timestamp]s - [brief description]
TOPIC 2: [timestamp]s - [brief description]
`, transcript)
}

package quiz

// Feedback and notice texts.
const (
	MsgPraise            = "Well done ❤️"
	MsgTryAgain          = "Oops, try again 😢"
	MsgDropCorrect       = "✅ Correct!"
	MsgDropWrong         = "😢 Oops wrong answer"
	MsgAnswerFirst       = "Please choose an option before proceeding."
	MsgNoQuestions       = "No questions found."
	MsgSpeechUnsupported = "Text-to-Speech not supported here."
	MsgNothingToSay      = "No voice text provided for this question."
)

// Feedback returns the message for an answer outcome in the given variant.
func (v Variant) Feedback(correct bool) (string, Sentiment) {
	switch v {
	case VariantBlank, VariantSort:
		if correct {
			return MsgDropCorrect, SentimentPositive
		}
		return MsgDropWrong, SentimentNegative
	default:
		if correct {
			return MsgPraise, SentimentPositive
		}
		return MsgTryAgain, SentimentNegative
	}
}

// Celebration returns the emoji rain played after an answer.
func (v Variant) Celebration(correct bool) Celebration {
	switch v {
	case VariantBlank, VariantSort:
		if correct {
			return Celebration{Sentiment: SentimentPositive, Emoji: "🎉", Count: 30}
		}
		return Celebration{Sentiment: SentimentNegative, Emoji: "😢", Count: 30}
	case VariantAudio:
		if correct {
			return Celebration{Sentiment: SentimentPositive, Emoji: "❤️", Count: 50}
		}
		return Celebration{Sentiment: SentimentNegative, Emoji: "😭", Count: 50}
	default:
		if correct {
			return Celebration{Sentiment: SentimentPositive, Emoji: "❤️", Count: 20}
		}
		return Celebration{Sentiment: SentimentNegative, Emoji: "😭", Count: 20}
	}
}

// CompletionCelebration is the rain shown with the completion screen.
var CompletionCelebration = Celebration{Sentiment: SentimentPositive, Emoji: "🎉", Count: 50}

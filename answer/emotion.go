package answer

// Emotion is the requested tone of the generated replies. It describes the
// desired tone of the candidates, not the conversation's own sentiment. The
// constants below form the command surface's enumerated set, but the core
// API accepts any free-form label.
type Emotion string

const (
	EmotionDefault      Emotion = "default"
	EmotionSeductive    Emotion = "seductive"
	EmotionAggressive   Emotion = "aggressive"
	EmotionFunny        Emotion = "funny"
	EmotionProfessional Emotion = "professional"
	EmotionOpposite     Emotion = "opposite"
)

// Emotions lists the enumerated choices in presentation order.
func Emotions() []Emotion {
	return []Emotion{
		EmotionDefault,
		EmotionSeductive,
		EmotionAggressive,
		EmotionFunny,
		EmotionProfessional,
		EmotionOpposite,
	}
}

func (e Emotion) String() string { return string(e) }

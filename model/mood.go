package model

// Mood is one label of the fixed emotional-state set. Values outside the set
// only exist as raw strings until ParseMood coerces them.
type Mood string

const (
	Happy     Mood = "Happy"
	Motivated Mood = "Motivated"
	Neutral   Mood = "Neutral"
	Sad       Mood = "Sad"
	Stressed  Mood = "Stressed"
	Anxious   Mood = "Anxious"
	Angry     Mood = "Angry"
	Fear      Mood = "Fear"
	Confused  Mood = "Confused"
	Burnout   Mood = "Burnout"
	// Critical is reserved for self-harm or emergency signals.
	Critical Mood = "Critical"
)

// AllMoods lists every mood in display order. Critical is last.
var AllMoods = []Mood{
	Happy, Motivated, Neutral, Sad, Stressed,
	Anxious, Angry, Fear, Confused, Burnout, Critical,
}

// SelectableMoods are the labels offered to the classifier as ordinary choices.
func SelectableMoods() []Mood {
	return AllMoods[:len(AllMoods)-1]
}

type MoodTheme struct {
	Gradient string `json:"gradient"`
	Theme    string `json:"theme"` // light or dark
	Emoji    string `json:"emoji"`
}

type MoodSuggestion struct {
	Places    []string `json:"places"`
	MusicMood string   `json:"music_mood"`
}

var moodScores = map[Mood]float64{
	Happy:     2,
	Motivated: 1,
	Neutral:   0,
	Confused:  -0.5,
	Stressed:  -1,
	Anxious:   -1,
	Sad:       -2,
	Angry:     -2,
	Fear:      -2,
	Burnout:   -3,
	Critical:  -3,
}

var moodThemes = map[Mood]MoodTheme{
	Happy:     {Gradient: "linear-gradient(135deg, #FFF3B0, #FFD166)", Theme: "light", Emoji: "😊"},
	Motivated: {Gradient: "linear-gradient(135deg, #C7F9CC, #80ED99)", Theme: "light", Emoji: "💪"},
	Neutral:   {Gradient: "linear-gradient(135deg, #F1F5F9, #E2E8F0)", Theme: "light", Emoji: "😐"},
	Sad:       {Gradient: "linear-gradient(135deg, #1E3A8A, #312E81)", Theme: "dark", Emoji: "😢"},
	Stressed:  {Gradient: "linear-gradient(135deg, #7C2D12, #B45309)", Theme: "dark", Emoji: "😰"},
	Anxious:   {Gradient: "linear-gradient(135deg, #4C1D95, #6D28D9)", Theme: "dark", Emoji: "😟"},
	Angry:     {Gradient: "linear-gradient(135deg, #7F1D1D, #991B1B)", Theme: "dark", Emoji: "😠"},
	Fear:      {Gradient: "linear-gradient(135deg, #0F172A, #1E293B)", Theme: "dark", Emoji: "😨"},
	Confused:  {Gradient: "linear-gradient(135deg, #334155, #475569)", Theme: "dark", Emoji: "😕"},
	Burnout:   {Gradient: "linear-gradient(135deg, #020617, #1E1B4B)", Theme: "dark", Emoji: "😩"},
	Critical:  {Gradient: "linear-gradient(135deg, #450a0a, #7f1d1d)", Theme: "dark", Emoji: "🆘"},
}

var moodSuggestions = map[Mood]MoodSuggestion{
	Happy:     {Places: []string{"Cafe", "Social hangout spot", "Park"}, MusicMood: "upbeat"},
	Motivated: {Places: []string{"Gym", "Library", "Co-working space"}, MusicMood: "energetic"},
	Neutral:   {Places: []string{"Cafe", "Bookstore", "Walking trail"}, MusicMood: "ambient"},
	Sad:       {Places: []string{"Quiet park", "Nature spot", "Peaceful garden"}, MusicMood: "calm"},
	Stressed:  {Places: []string{"Temple", "Spa", "Quiet walking path"}, MusicMood: "relaxing"},
	Anxious:   {Places: []string{"Calm cafe", "Garden", "Meditation center"}, MusicMood: "soothing"},
	Angry:     {Places: []string{"Open ground", "Sports facility", "Nature trail"}, MusicMood: "calming"},
	Fear:      {Places: []string{"Safe indoor space", "Familiar cafe", "Home"}, MusicMood: "comforting"},
	Confused:  {Places: []string{"Quiet library", "Park bench", "Peaceful spot"}, MusicMood: "focus"},
	Burnout:   {Places: []string{"Nature retreat", "Beach", "Mountain view"}, MusicMood: "healing"},
	Critical:  {Places: []string{"Safe space", "Trusted friend's place"}, MusicMood: "gentle"},
}

// DefaultReply is used when no canned reply exists for a mood.
const DefaultReply = "I'm here for you. Tell me more about how you're feeling."

var cannedReplies = map[Mood]string{
	Happy:     "That's wonderful to hear! Keep embracing these positive moments.",
	Motivated: "Your energy is inspiring! Channel it towards your goals.",
	Neutral:   "I'm here whenever you want to talk about anything.",
	Sad:       "I hear you. It's okay to feel this way. I'm here with you.",
	Stressed:  "That sounds overwhelming. Let's take this one step at a time.",
	Anxious:   "I understand that feeling. Try taking a few deep breaths with me.",
	Angry:     "Your feelings are valid. Let's work through this together.",
	Fear:      "It's okay to feel scared. You're not alone in this.",
	Confused:  "Let's try to untangle this together. What's on your mind?",
	Burnout:   "You've been carrying a lot. It's okay to rest and recharge.",
	Critical:  "I'm really concerned about you. Please reach out to someone you trust or a helpline. You matter.",
}

// ParseMood reports whether s is exactly one of the known labels.
func ParseMood(s string) (Mood, bool) {
	m := Mood(s)
	if _, ok := moodScores[m]; ok {
		return m, true
	}
	return Neutral, false
}

// IsValid reports whether m belongs to the fixed set.
func (m Mood) IsValid() bool {
	_, ok := moodScores[m]
	return ok
}

func (m Mood) String() string { return string(m) }

// Score is the sentiment weight used by analytics. Unknown moods score 0.
func (m Mood) Score() float64 {
	return moodScores[m]
}

func (m Mood) Theme() MoodTheme {
	if t, ok := moodThemes[m]; ok {
		return t
	}
	return moodThemes[Neutral]
}

// Suggestions returns a copy so callers cannot edit the table.
func (m Mood) Suggestions() MoodSuggestion {
	s, ok := moodSuggestions[m]
	if !ok {
		s = moodSuggestions[Neutral]
	}
	places := make([]string, len(s.Places))
	copy(places, s.Places)
	return MoodSuggestion{Places: places, MusicMood: s.MusicMood}
}

func (m Mood) CannedReply() string {
	if r, ok := cannedReplies[m]; ok {
		return r
	}
	return DefaultReply
}

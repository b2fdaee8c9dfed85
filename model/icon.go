package model

// Icon is one entry of the challenge catalog: a unique lowercase name plus a
// display glyph.
type Icon struct {
	Name  string
	Emoji string
}

// Icons is the fixed catalog challenges draw from.
var Icons = []Icon{
	{Name: "apple", Emoji: "🍎"},
	{Name: "banana", Emoji: "🍌"},
	{Name: "orange", Emoji: "🍊"},
	{Name: "grapes", Emoji: "🍇"},
	{Name: "watermelon", Emoji: "🍉"},
	{Name: "strawberry", Emoji: "🍓"},
	{Name: "pineapple", Emoji: "🍍"},
	{Name: "cherry", Emoji: "🍒"},
	{Name: "peach", Emoji: "🍑"},
	{Name: "lemon", Emoji: "🍋"},
}

// ChallengeOptions is how many icons a single challenge offers.
const ChallengeOptions = 4

// Challenge is a single-use pick-the-target puzzle. Target is always one of
// Options; Options never repeats a name.
type Challenge struct {
	ID      string
	Target  Icon
	Options []Icon
}

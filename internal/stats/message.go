package stats

type tier struct {
	below   int
	message string
}

// Checked top-down; the first tier whose bound exceeds the WPM wins.
var tiers = []tier{
	{20, "Slow and steady wins the race!"},
	{30, "Getting warmed up!"},
	{40, "Not bad, you're getting there!"},
	{50, "Pretty good! You type faster than a sleepy cat!"},
	{60, "Now we're talking! You're cooking!"},
	{70, "Impressive! Your fingers are dancing!"},
	{80, "Fantastic! You're faster than a caffeinated squirrel!"},
	{90, "Amazing! Your keyboard is smoking!"},
	{100, "Incredible! Are you even human?!"},
}

const (
	triedMessage = "Hey, at least you tried!"
	topMessage   = "IMPOSSIBLE! You must be a typing wizard!"
)

// Message returns the performance message for a final WPM.
func Message(wpm int) string {
	if wpm <= 0 {
		return triedMessage
	}
	for _, t := range tiers {
		if wpm < t.below {
			return t.message
		}
	}
	return topMessage
}

package icon

// Icon identifies a renderable UI symbol in the registry.
type Icon int

const (
	Success Icon = iota + 1
	Fail
	Search
	Mark
	Link
	Progress
	Star
	Calendar
	Queued
)

// registry holds the per-look renderings of every symbol.
var registry = map[Icon]map[string]string{
	Success:  {emoji: "✅", kaomoji: "(•̀ᴗ•́)و", plain: "OK", squares: "🟩", nerd: ""},
	Fail:     {emoji: "❌", kaomoji: "(╯°□°)╯", plain: "X", squares: "🟥", nerd: ""},
	Search:   {emoji: "🔍", kaomoji: "(⌐■_■)", plain: "?", squares: "🟦", nerd: ""},
	Mark:     {emoji: "✔️", kaomoji: "(￣ー￣)b", plain: "*", squares: "🟪", nerd: ""},
	Link:     {emoji: "🔗", kaomoji: "(つ◉益◉)つ", plain: "~", squares: "🟨", nerd: ""},
	Progress: {emoji: "⏳", kaomoji: "(  ◉◞౪◟◉)", plain: "...", squares: "🟧", nerd: ""},
	Star:     {emoji: "⭐", kaomoji: "(☆ω☆)", plain: "*", squares: "🟨", nerd: ""},
	Calendar: {emoji: "📅", kaomoji: "(￢､￢)", plain: "#", squares: "🟫", nerd: ""},
	Queued:   {emoji: "📨", kaomoji: "(・_・;)", plain: ">", squares: "⬜", nerd: ""},
}

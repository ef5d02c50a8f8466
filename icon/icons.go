package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Warn
	Info
	Ready
	Play
	Pause
	Stop
	Buffer
	Cued
	Ended
	Loop
	Shuffle
	Question
	Progress
)

var icons = map[Icon]*iconDef{
	Fail:     {emoji: "💀", nerd: "", plain: "X", kaomoji: "(×﹏×)", squares: "🟥"},
	Success:  {emoji: "🎉", nerd: "", plain: "OK", kaomoji: "(ᵔ◡ᵔ)", squares: "🟩"},
	Warn:     {emoji: "⚠️", nerd: "", plain: "!", kaomoji: "(・_・;)", squares: "🟨"},
	Info:     {emoji: "💡", nerd: "", plain: "i", kaomoji: "(・ω・)", squares: "🟦"},
	Ready:    {emoji: "📺", nerd: "", plain: "*", kaomoji: "(⌐■_■)", squares: "🟪"},
	Play:     {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(ﾉ◕ヮ◕)ﾉ", squares: "🟩"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(－_－)", squares: "🟨"},
	Stop:     {emoji: "⏹️", nerd: "", plain: "[]", kaomoji: "(￣ー￣)", squares: "🟥"},
	Buffer:   {emoji: "⏳", nerd: "", plain: "...", kaomoji: "(´-ω-`)", squares: "🟧"},
	Cued:     {emoji: "🎬", nerd: "", plain: "~", kaomoji: "(•̀ᴗ•́)", squares: "🟦"},
	Ended:    {emoji: "🏁", nerd: "", plain: "#", kaomoji: "(￣▽￣)", squares: "⬛"},
	Loop:     {emoji: "🔁", nerd: "", plain: "@", kaomoji: "(◎_◎)", squares: "🟫"},
	Shuffle:  {emoji: "🔀", nerd: "", plain: "%", kaomoji: "(ﾟдﾟ)", squares: "🟫"},
	Question: {emoji: "❓", nerd: "", plain: "?", kaomoji: "(・・?)", squares: "⬜"},
	Progress: {emoji: "⌛", nerd: "", plain: "~", kaomoji: "(´・ω・`)", squares: "🟧"},
}

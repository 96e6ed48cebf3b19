package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Mark
	Link
	Search
	Question
	Play
	Pause
	Stop
	Record
	Volume
	Mute
	History
	Config
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Mark: {
		emoji:   "📌",
		nerd:    "",
		plain:   "*",
		kaomoji: "(＾▽＾)",
		squares: "🟨",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "->",
		kaomoji: "(→_→)",
		squares: "🟪",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(⊙_⊙)",
		squares: "🟧",
	},
	Question: {
		emoji:   "🤔",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・・?)",
		squares: "🟫",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(－_－)",
		squares: "🟨",
	},
	Stop: {
		emoji:   "⏹️",
		nerd:    "",
		plain:   "[]",
		kaomoji: "(￣ー￣)",
		squares: "🟥",
	},
	Record: {
		emoji:   "🔴",
		nerd:    "",
		plain:   "REC",
		kaomoji: "(◉_◉)",
		squares: "🟥",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "vol",
		kaomoji: "(♪)",
		squares: "🟦",
	},
	Mute: {
		emoji:   "🔇",
		nerd:    "",
		plain:   "mute",
		kaomoji: "(︶︹︺)",
		squares: "⬛",
	},
	History: {
		emoji:   "📜",
		nerd:    "",
		plain:   "#",
		kaomoji: "(￣▽￣)ノ",
		squares: "🟫",
	},
	Config: {
		emoji:   "⚙️",
		nerd:    "",
		plain:   "cfg",
		kaomoji: "(⌐■_■)",
		squares: "⬜",
	},
}

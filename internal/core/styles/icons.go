package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconMarquee = "\U000F0381" // 󰎁
	IconPlay    = ""     //
	IconFilm    = ""     //
	IconSeries  = ""     //
	IconStar    = ""     //
	IconSearch  = ""     //
	IconClock   = ""     //
	IconReload  = ""     //
	IconInfo    = ""     //
	IconWarn    = ""     //
	IconError   = ""     // 
	IconCheck   = ""     // 
	IconBell    = ""     // 
	IconLink    = ""     //
)

// My-list state icons.
var (
	IconListAdd = "" //
	IconListed  = "" //
)

// Row navigation icons.
var (
	IconChevronLeft  = "" //
	IconChevronRight = "" //
	IconDot          = "•"
)

// Progress bar glyphs for resume badges.
var (
	IconProgressFull  = "█"
	IconProgressEmpty = "░"
)

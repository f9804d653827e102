package chess

// Tag names used by the codec.
const (
	EventTag       = "Event"
	SiteTag        = "Site"
	DateTag        = "Date"
	RoundTag       = "Round"
	WhiteTag       = "White"
	BlackTag       = "Black"
	ResultTag      = "Result"
	TerminationTag = "Termination"
	FENTag         = "FEN"
	SetupTag       = "SetUp"
)

// Result tokens.
const (
	WhiteWins  = "1-0"
	BlackWins  = "0-1"
	Draw       = "1/2-1/2"
	Unfinished = "*"
)

// SevenTagRoster contains the seven required PGN tags in order.
var SevenTagRoster = []string{
	EventTag,
	SiteTag,
	DateTag,
	RoundTag,
	WhiteTag,
	BlackTag,
	ResultTag,
}

// IsSevenTagRosterTag returns true if the tag is one of the seven required tags.
func IsSevenTagRosterTag(tag string) bool {
	for _, t := range SevenTagRoster {
		if t == tag {
			return true
		}
	}
	return false
}

// DefaultTagValue returns the placeholder written for a missing roster tag.
func DefaultTagValue(tag string) string {
	switch tag {
	case DateTag:
		return "????.??.??"
	case ResultTag:
		return Unfinished
	default:
		return "?"
	}
}

// IsResult reports whether s is a game termination marker.
func IsResult(s string) bool {
	switch s {
	case WhiteWins, BlackWins, Draw, Unfinished:
		return true
	default:
		return false
	}
}

package transfer

// Event is one row of the transfer table. Club references are soft: either
// key may be absent from the club master.
type Event struct {
	Season      string
	Window      string
	Date        string
	PlayerName  string
	FromClubKey string
	ToClubKey   string
	MoveType    string
	Note        string
	Importance  int
}

// ClubRef is a club reference resolved for display. Linked is false when
// the key is unknown and Display carries the raw text.
type ClubRef struct {
	Key       string
	DisplayJA string
	DisplayEN string
	Linked    bool
}

// View is a transfer with both club references resolved.
type View struct {
	Event
	From ClubRef
	To   ClubRef
}

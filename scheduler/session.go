package scheduler

// Session holds the active game id. It is owned by the Scheduler and only
// touched from the update loop.
type Session struct {
	gameID string
}

func (s *Session) GameID() string {
	return s.gameID
}

// setGameID reports whether the id changed.
func (s *Session) setGameID(id string) bool {
	if s.gameID == id {
		return false
	}
	s.gameID = id
	return true
}

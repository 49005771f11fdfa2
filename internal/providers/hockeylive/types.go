package hockeylive

// rawGame is one upstream record after tolerant field-by-field decoding.
// Empty strings and nil scores mean the field was absent or unusable.
type rawGame struct {
	ID         string
	Team1Short string
	Team2Short string
	Goals1     *int
	Goals2     *int
	Status     string
	Score      *rawScore
	Date       string
}

// rawScore is the nested "score" object some payloads carry.
type rawScore struct {
	Goals1 *int
	Goals2 *int
	Status string
}

package normalizer

// Field names a canonical text field of a race record.
type Field string

// Canonical fields resolved from candidate keys.
const (
	FieldDate          Field = "date"
	FieldCourse        Field = "course"
	FieldOffTime       Field = "offTime"
	FieldTitle         Field = "title"
	FieldHorse         Field = "horse"
	FieldPosition      Field = "position"
	FieldStartingPrice Field = "startingPrice"
	FieldNote          Field = "note"
	FieldRaceNumber    Field = "raceNumber"
	FieldReplayLinks   Field = "replayLinks"
	FieldFinishers     Field = "finishers"
	FieldHandicap      Field = "handicap"
)

// FieldRule lists the raw keys tried, in order, for one canonical field.
// The first key holding a non-empty value wins.
type FieldRule struct {
	Field      Field
	Candidates []string
}

// DefaultRules is the candidate-key table for results documents.
var DefaultRules = []FieldRule{
	{Field: FieldDate, Candidates: []string{"meeting_date", "date", "meetingDate", "meeting_date_yyyy_mm_dd"}},
	{Field: FieldCourse, Candidates: []string{"course", "track", "venue"}},
	{Field: FieldOffTime, Candidates: []string{"off_time", "off", "time", "offTime"}},
	{Field: FieldTitle, Candidates: []string{"race_title", "title", "race"}},
	{Field: FieldHorse, Candidates: []string{"horse", "runner", "selection"}},
	{Field: FieldPosition, Candidates: []string{"position", "pos", "finish"}},
	{Field: FieldStartingPrice, Candidates: []string{"sp", "price", "odds"}},
	{Field: FieldNote, Candidates: []string{"note", "comment", "notes"}},
	{Field: FieldRaceNumber, Candidates: []string{"race_number", "raceNumber"}},
	{Field: FieldReplayLinks, Candidates: []string{"replay_links", "links", "replays", "video"}},
	{Field: FieldFinishers, Candidates: []string{"finishers"}},
	{Field: FieldHandicap, Candidates: []string{"handicap"}},
}

// Link entry keys and defaults.
var (
	linkLabelKeys = []string{"label"}
	linkURLKeys   = []string{"url", "href"}
)

const (
	defaultLinkLabel = "Replay"
	defaultLinkURL   = "#"
)

// Finisher entry keys, shared by rank-keyed maps and positional lists.
var (
	finisherRankKeys    = []string{"rank", "position", "finish_position", "pos", "result"}
	finisherHorseKeys   = []string{"horse", "horse_name", "name"}
	finisherJockeyKeys  = []string{"jockey", "jockey_name"}
	finisherTrainerKeys = []string{"trainer", "trainer_name"}
	finisherPriceKeys   = []string{"sp", "starting_price", "price"}
)

// Top-level document keys.
var (
	updatedAtKeys  = []string{"updated_at", "last_updated", "updatedAt"}
	collectionKeys = []string{"races"}
)

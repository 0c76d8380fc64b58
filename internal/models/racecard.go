package models

// Meeting is a race event at one course on one date.
type Meeting struct {
	Course string     `json:"course" yaml:"course"`
	Date   string     `json:"meeting_date" yaml:"meeting_date"`
	Races  []CardRace `json:"races" yaml:"races"`
}

// CardRace is an upcoming race on a racecard.
type CardRace struct {
	OffTime string   `json:"off_time" yaml:"off_time"`
	Title   string   `json:"race_title" yaml:"race_title"`
	Runners []Runner `json:"runners" yaml:"runners"`
}

// Runner is a horse entered in a race.
type Runner struct {
	No      string `json:"no" yaml:"no"`
	Horse   string `json:"horse" yaml:"horse"`
	Jockey  string `json:"jockey" yaml:"jockey"`
	Trainer string `json:"trainer" yaml:"trainer"`
	Age     string `json:"age" yaml:"age"`
	Weight  string `json:"weight" yaml:"weight"`
	Draw    string `json:"draw" yaml:"draw"`
	Odds    string `json:"odds" yaml:"odds"`
}

// CardsDocument is a normalized racecards document.
type CardsDocument struct {
	UpdatedAt string    `json:"updated_at" yaml:"updated_at"`
	Meetings  []Meeting `json:"meetings" yaml:"meetings"`
}

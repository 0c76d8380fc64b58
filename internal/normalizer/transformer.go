package normalizer

import (
	"sort"

	"dcrhub/internal/models"
)

// Transformer maps raw race records onto the canonical shape using a
// candidate-key table.
type Transformer struct {
	rules map[Field][]string
}

// NewTransformer creates a transformer using DefaultRules.
func NewTransformer() *Transformer {
	return NewTransformerWithRules(DefaultRules)
}

// NewTransformerWithRules creates a transformer with a custom rule table.
// Fields missing from rules always resolve to their empty value.
func NewTransformerWithRules(rules []FieldRule) *Transformer {
	t := &Transformer{rules: make(map[Field][]string, len(rules))}
	for _, rule := range rules {
		t.rules[rule.Field] = rule.Candidates
	}

	return t
}

var defaultTransformer = NewTransformer()

// Normalize maps raw onto a CanonicalRace using DefaultRules.
// It never fails: missing or malformed values degrade to empty defaults.
func Normalize(raw models.RawRecord) models.CanonicalRace {
	return defaultTransformer.Transform(raw)
}

// Transform maps raw onto a CanonicalRace.
func (t *Transformer) Transform(raw models.RawRecord) models.CanonicalRace {
	m := map[string]any(raw)

	race := models.CanonicalRace{
		Source:        raw,
		Date:          t.text(m, FieldDate),
		Course:        t.text(m, FieldCourse),
		OffTime:       t.text(m, FieldOffTime),
		Title:         t.text(m, FieldTitle),
		Horse:         t.text(m, FieldHorse),
		Position:      t.text(m, FieldPosition),
		StartingPrice: t.text(m, FieldStartingPrice),
		Note:          t.text(m, FieldNote),
		RaceNumber:    t.text(m, FieldRaceNumber),
		ReplayLinks:   []models.ReplayLink{},
		Finishers:     []models.Finisher{},
	}

	if v, ok := lookup(m, t.rules[FieldReplayLinks]); ok {
		race.ReplayLinks = normalizeLinks(v)
	}

	if v, ok := lookup(m, t.rules[FieldFinishers]); ok {
		race.Finishers = normalizeFinishers(v)
	}

	if v, ok := lookup(m, t.rules[FieldHandicap]); ok {
		race.Handicap = truthy(v)
	}

	// Producers that only publish a podium still get a flat winner line.
	if race.Horse == "" {
		if winner := race.FinisherAt(1); winner.Horse != "" {
			race.Horse = winner.Horse
			race.StartingPrice = winner.StartingPrice

			if race.Position == "" {
				race.Position = "1"
			}
		}
	}

	return race
}

func (t *Transformer) text(m map[string]any, field Field) string {
	return firstText(m, t.rules[field])
}

// normalizeLinks coerces a replay value into links. Non-sequences yield none.
func normalizeLinks(v any) []models.ReplayLink {
	items, ok := v.([]any)
	if !ok {
		return []models.ReplayLink{}
	}

	links := make([]models.ReplayLink, 0, len(items))
	for _, item := range items {
		links = append(links, normalizeLink(item))
	}

	return links
}

func normalizeLink(item any) models.ReplayLink {
	link := models.ReplayLink{Label: defaultLinkLabel, URL: defaultLinkURL}

	if s, ok := item.(string); ok && s != "" {
		link.URL = s

		return link
	}

	m, ok := asRecord(item)
	if !ok {
		return link
	}

	if label := firstText(m, linkLabelKeys); label != "" {
		link.Label = label
	}

	if url := firstText(m, linkURLKeys); url != "" {
		link.URL = url
	}

	return link
}

// normalizeFinishers accepts a rank-keyed map ({"1": {...}}) or a positional
// list and returns finishers ordered by rank. Null slots are dropped.
func normalizeFinishers(v any) []models.Finisher {
	finishers := []models.Finisher{}

	if items, ok := v.([]any); ok {
		for i, item := range items {
			m, ok := asRecord(item)
			if !ok {
				continue
			}

			rank := 0
			if rv, found := lookup(m, finisherRankKeys); found {
				rank = parseRank(rv)
			}

			if rank == 0 {
				rank = i + 1
			}

			finishers = append(finishers, newFinisher(rank, m))
		}
	} else if byRank, ok := asRecord(v); ok {
		// Keys are visited in sorted order so duplicate ranks ("1", "1st")
		// always resolve the same way.
		keys := make([]string, 0, len(byRank))
		for key := range byRank {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			m, ok := asRecord(byRank[key])
			if !ok {
				continue
			}

			rank := parseRank(key)
			if rank == 0 {
				continue
			}

			finishers = append(finishers, newFinisher(rank, m))
		}
	}

	sort.SliceStable(finishers, func(i, j int) bool {
		return finishers[i].Rank < finishers[j].Rank
	})

	return finishers
}

func newFinisher(rank int, m map[string]any) models.Finisher {
	return models.Finisher{
		Rank:          rank,
		Horse:         firstText(m, finisherHorseKeys),
		Jockey:        firstText(m, finisherJockeyKeys),
		Trainer:       firstText(m, finisherTrainerKeys),
		StartingPrice: firstText(m, finisherPriceKeys),
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"mma-stats-system/models"
	"mma-stats-system/repository"
)

// QueryResult is the JSON envelope for one answered question. Data is nil
// exactly when the query type is unknown or the entity was not resolvable.
type QueryResult struct {
	Question    string         `json:"question"`
	QueryType   QueryType      `json:"query_type"`
	Answer      string         `json:"answer"`
	Data        any            `json:"data"`
	Suggestions []ExampleGroup `json:"suggestions,omitempty"`
}

// ExampleGroup is one category of example questions surfaced when a question
// cannot be understood.
type ExampleGroup struct {
	Category string   `json:"category"`
	Queries  []string `json:"queries"`
}

// ExampleQueries covers every supported query type; served by the examples
// endpoint and attached as suggestions to unknown answers.
var ExampleQueries = []ExampleGroup{
	{Category: "Fighter Records", Queries: []string{
		"What is Jon Jones's record?",
		"What is Alexander Volkanovski's win-loss record?",
	}},
	{Category: "Fighter Stats", Queries: []string{
		"How tall is Israel Adesanya?",
		"What is Jon Jones's reach?",
	}},
	{Category: "Events", Queries: []string{
		"When is the next UFC event?",
		"What was the last card?",
	}},
	{Category: "Rankings", Queries: []string{
		"Show the lightweight rankings",
		"Who is the heavyweight champion?",
	}},
	{Category: "Fight History", Queries: []string{
		"Show Islam Makhachev's last 3 fights",
		"What is Max Holloway's fight history?",
	}},
}

// RecordData is the structured payload for fighter_record answers.
type RecordData struct {
	Fighter *models.Fighter `json:"fighter"`
	Wins    int             `json:"wins"`
	Losses  int             `json:"losses"`
	Draws   int             `json:"draws"`
}

// StatsData is the structured payload for fighter_stats answers.
type StatsData struct {
	Fighter *models.Fighter `json:"fighter"`
}

// RankingData is the structured payload for rankings answers.
type RankingData struct {
	Division string                `json:"division"`
	Entries  []models.RankingEntry `json:"entries"`
}

// FightSummary is one row of a fighter_fights answer.
type FightSummary struct {
	Opponent  string    `json:"opponent"`
	Result    string    `json:"result"`
	Method    string    `json:"method,omitempty"`
	EventName string    `json:"event_name,omitempty"`
	EventDate time.Time `json:"event_date"`
}

// FightHistoryData is the structured payload for fighter_fights answers.
type FightHistoryData struct {
	Fighter *models.Fighter `json:"fighter"`
	Fights  []FightSummary  `json:"fights"`
}

// Synthesizer turns resolved entities into a natural-language answer plus a
// structured payload. It holds a clock so event answers stay deterministic
// under test.
type Synthesizer struct {
	store *repository.Store
	now   func() time.Time
}

func NewSynthesizer(store *repository.Store) *Synthesizer {
	return &Synthesizer{store: store, now: time.Now}
}

// Answer builds the result for an already-classified, already-resolved
// question. Resolution failures never reach here; see unknownResult and
// notFoundResult for those paths.
func (s *Synthesizer) Answer(ctx context.Context, question string, intent Intent, entities *ResolvedEntities) (*QueryResult, error) {
	switch intent.Type {
	case QueryFighterRecord:
		return s.answerRecord(ctx, question, entities.Fighter)
	case QueryFighterStats:
		return s.answerStats(question, entities.Fighter), nil
	case QueryEvent:
		return s.answerEvent(ctx, question, entities.Direction)
	case QueryRankings:
		return s.answerRankings(ctx, question, entities.Division)
	case QueryFighterFights:
		return s.answerFights(ctx, question, entities.Fighter, entities.Limit)
	}
	return unknownResult(question), nil
}

// TallyRecord computes a fighter's W-L-D by scanning both corners of every
// fight involving them. wins+losses+draws always equals the fight count.
func TallyRecord(fighterID string, fights []models.Fight) (wins, losses, draws int) {
	for _, fight := range fights {
		switch fight.ResultFor(fighterID) {
		case "win":
			wins++
		case "loss":
			losses++
		default:
			// draws and no-contests both land here so the tally covers
			// every bout
			draws++
		}
	}
	return wins, losses, draws
}

func (s *Synthesizer) answerRecord(ctx context.Context, question string, fighter *models.Fighter) (*QueryResult, error) {
	fights, err := s.store.Fights.ByFighter(ctx, fighter.ID)
	if err != nil {
		return nil, err
	}
	wins, losses, draws := TallyRecord(fighter.ID, fights)

	return &QueryResult{
		Question:  question,
		QueryType: QueryFighterRecord,
		Answer:    fmt.Sprintf("%s has a record of %d-%d-%d.", fighter.Name, wins, losses, draws),
		Data:      &RecordData{Fighter: fighter, Wins: wins, Losses: losses, Draws: draws},
	}, nil
}

func (s *Synthesizer) answerStats(question string, fighter *models.Fighter) *QueryResult {
	var parts []string
	if fighter.WeightClass != "" {
		parts = append(parts, fmt.Sprintf("fights at %s", fighter.WeightClass))
	}
	if fighter.HeightInches != nil {
		parts = append(parts, fmt.Sprintf("stands %s", formatHeight(*fighter.HeightInches)))
	}
	if fighter.ReachInches != nil {
		parts = append(parts, fmt.Sprintf("has a %.0f\" reach", *fighter.ReachInches))
	}
	if fighter.Age != nil {
		parts = append(parts, fmt.Sprintf("is %d years old", *fighter.Age))
	}
	if fighter.Stance != "" {
		parts = append(parts, fmt.Sprintf("fights %s", fighter.Stance))
	}
	if fighter.Nationality != "" {
		parts = append(parts, fmt.Sprintf("represents %s", fighter.Nationality))
	}

	answer := fmt.Sprintf("I don't have physical stats on file for %s.", fighter.Name)
	if len(parts) > 0 {
		answer = fmt.Sprintf("%s %s.", fighter.Name, joinClauses(parts))
	}

	return &QueryResult{
		Question:  question,
		QueryType: QueryFighterStats,
		Answer:    answer,
		Data:      &StatsData{Fighter: fighter},
	}
}

func (s *Synthesizer) answerEvent(ctx context.Context, question, direction string) (*QueryResult, error) {
	now := s.now()

	var (
		event *models.Event
		err   error
	)
	if direction == DirectionLast {
		event, err = s.store.Events.Last(ctx, now)
	} else {
		event, err = s.store.Events.Next(ctx, now)
	}

	if errors.Is(err, repository.ErrNotFound) {
		wording := "upcoming"
		if direction == DirectionLast {
			wording = "past"
		}
		return &QueryResult{
			Question:  question,
			QueryType: QueryEvent,
			Answer:    fmt.Sprintf("I couldn't find any %s event.", wording),
			Data:      nil,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	var answer string
	if direction == DirectionLast {
		answer = fmt.Sprintf("The last event was %s on %s%s.", event.Name, event.Date.Format("January 2, 2006"), eventPlace(event))
	} else {
		answer = fmt.Sprintf("The next event is %s on %s%s.", event.Name, event.Date.Format("January 2, 2006"), eventPlace(event))
	}

	return &QueryResult{
		Question:  question,
		QueryType: QueryEvent,
		Answer:    answer,
		Data:      event,
	}, nil
}

func (s *Synthesizer) answerRankings(ctx context.Context, question, divisionName string) (*QueryResult, error) {
	division, err := s.store.Rankings.DivisionByName(ctx, divisionName)
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundResult(question, QueryRankings, divisionName+" division"), nil
	}
	if err != nil {
		return nil, err
	}

	entries, err := s.store.Rankings.Entries(ctx, division.ID)
	if err != nil {
		return nil, err
	}
	SortRanking(entries)

	if len(entries) == 0 {
		return notFoundResult(question, QueryRankings, divisionName+" rankings"), nil
	}

	var lines []string
	for _, e := range entries {
		name := e.FighterID
		if e.Fighter != nil {
			name = e.Fighter.Name
		}
		if e.IsChampion() {
			label := "C"
			if e.Interim {
				label = "IC"
			}
			lines = append(lines, fmt.Sprintf("%s: %s", label, name))
		} else {
			lines = append(lines, fmt.Sprintf("%d. %s", e.Rank, name))
		}
	}

	return &QueryResult{
		Question:  question,
		QueryType: QueryRankings,
		Answer:    fmt.Sprintf("Current %s rankings: %s.", division.Name, strings.Join(lines, ", ")),
		Data:      &RankingData{Division: division.Name, Entries: entries},
	}, nil
}

// SortRanking orders entries champion first (interim champion directly after),
// then rank ascending.
func SortRanking(entries []models.RankingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ci, cj := entries[i].IsChampion(), entries[j].IsChampion()
		if ci != cj {
			return ci
		}
		if ci && cj {
			return !entries[i].Interim && entries[j].Interim
		}
		return entries[i].Rank < entries[j].Rank
	})
}

func (s *Synthesizer) answerFights(ctx context.Context, question string, fighter *models.Fighter, limit int) (*QueryResult, error) {
	fights, err := s.store.Fights.ByFighter(ctx, fighter.ID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 1
	}
	if len(fights) == 0 {
		return &QueryResult{
			Question:  question,
			QueryType: QueryFighterFights,
			Answer:    fmt.Sprintf("I couldn't find any fights on record for %s.", fighter.Name),
			Data:      nil,
		}, nil
	}
	if len(fights) > limit {
		fights = fights[:limit]
	}

	summaries := make([]FightSummary, 0, len(fights))
	var lines []string
	for _, fight := range fights {
		summary := FightSummary{
			Result: fight.ResultFor(fighter.ID),
			Method: fight.Method,
		}
		opponentID := fight.OpponentOf(fighter.ID)
		summary.Opponent = opponentID
		if fight.Fighter1 != nil && fight.Fighter1.ID == opponentID {
			summary.Opponent = fight.Fighter1.Name
		}
		if fight.Fighter2 != nil && fight.Fighter2.ID == opponentID {
			summary.Opponent = fight.Fighter2.Name
		}
		if fight.Event != nil {
			summary.EventName = fight.Event.Name
			summary.EventDate = fight.Event.Date
		}
		summaries = append(summaries, summary)

		line := fmt.Sprintf("%s vs %s", summary.Result, summary.Opponent)
		if summary.Method != "" {
			line += fmt.Sprintf(" (%s)", summary.Method)
		}
		lines = append(lines, line)
	}

	noun := "fight"
	if len(summaries) > 1 {
		noun = fmt.Sprintf("%d fights", len(summaries))
	}
	return &QueryResult{
		Question:  question,
		QueryType: QueryFighterFights,
		Answer:    fmt.Sprintf("%s's last %s: %s.", fighter.Name, noun, strings.Join(lines, ", ")),
		Data:      &FightHistoryData{Fighter: fighter, Fights: summaries},
	}, nil
}

// unknownResult is the graceful envelope for questions nothing matched.
func unknownResult(question string) *QueryResult {
	return &QueryResult{
		Question:    question,
		QueryType:   QueryUnknown,
		Answer:      "I'm not sure I understand that question. Here are some things you can ask me.",
		Data:        nil,
		Suggestions: ExampleQueries,
	}
}

// notFoundResult is the graceful envelope for an entity that didn't resolve.
func notFoundResult(question string, qtype QueryType, subject string) *QueryResult {
	return &QueryResult{
		Question:  question,
		QueryType: qtype,
		Answer:    fmt.Sprintf("Sorry, I couldn't find %s.", subject),
		Data:      nil,
	}
}

// ambiguousResult lists the candidate fighters so the user can re-ask.
func ambiguousResult(question string, qtype QueryType, failure *ResolveFailure) *QueryResult {
	return &QueryResult{
		Question:  question,
		QueryType: qtype,
		Answer: fmt.Sprintf("I found several fighters matching %q: %s. Which one did you mean?",
			failure.Subject, strings.Join(failure.Candidates, ", ")),
		Data: nil,
	}
}

func joinClauses(parts []string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

func formatHeight(inches float64) string {
	feet := int(inches) / 12
	rem := inches - float64(feet*12)
	return fmt.Sprintf("%d'%.0f\"", feet, rem)
}

func eventPlace(event *models.Event) string {
	switch {
	case event.Venue != "" && event.City != "":
		return fmt.Sprintf(" at %s in %s", event.Venue, event.City)
	case event.Venue != "":
		return fmt.Sprintf(" at %s", event.Venue)
	case event.City != "":
		return fmt.Sprintf(" in %s", event.City)
	}
	return ""
}

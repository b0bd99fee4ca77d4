package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"mma-stats-system/models"
)

// Memory is an in-memory Store implementation used by tests and local seeds.
// It applies the same matching and ordering rules as the GORM store.
type Memory struct {
	FightersByID map[string]*models.Fighter
	FightList    []models.Fight
	EventList    []models.Event
	Divisions    []models.Division
	RankingList  []models.RankingEntry
	OddsList     []models.FightOdds
}

// NewMemory builds an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{FightersByID: make(map[string]*models.Fighter)}
}

// AddFighter registers a fighter, filling the normalized-name column the way
// the write paths do.
func (m *Memory) AddFighter(f models.Fighter) {
	f.NameNormalized = NormalizeName(f.Name)
	cp := f
	m.FightersByID[f.ID] = &cp
}

// AsStore exposes the fake behind the repository interfaces.
func (m *Memory) AsStore() *Store {
	return &Store{Fighters: m, Fights: m, Events: memoryEvents{m}, Rankings: m, Odds: m}
}

// memoryEvents adapts Memory to EventStore; GetByID would otherwise collide
// with the fighter lookup of the same name.
type memoryEvents struct {
	m *Memory
}

func (e memoryEvents) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return e.m.GetEventByID(ctx, id)
}

func (e memoryEvents) Next(ctx context.Context, after time.Time) (*models.Event, error) {
	return e.m.Next(ctx, after)
}

func (e memoryEvents) Last(ctx context.Context, before time.Time) (*models.Event, error) {
	return e.m.Last(ctx, before)
}

func (m *Memory) GetByID(_ context.Context, id string) (*models.Fighter, error) {
	if f, ok := m.FightersByID[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) GetBySlug(_ context.Context, slug string) (*models.Fighter, error) {
	for _, f := range m.FightersByID {
		if f.Slug == slug {
			cp := *f
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SearchByName(_ context.Context, name string) ([]models.Fighter, error) {
	needle := NormalizeName(name)
	if needle == "" {
		return nil, nil
	}
	var out []models.Fighter
	for _, f := range m.FightersByID {
		if strings.Contains(f.NameNormalized, needle) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) ActivePool(_ context.Context) ([]models.Fighter, error) {
	var out []models.Fighter
	for _, f := range m.FightersByID {
		if f.Active && f.HasCoreAttributes() {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) ByFighter(_ context.Context, fighterID string) ([]models.Fight, error) {
	var out []models.Fight
	for _, fight := range m.FightList {
		if !fight.Involves(fighterID) {
			continue
		}
		cp := fight
		if cp.Event == nil {
			if ev := m.eventByID(cp.EventID); ev != nil {
				cp.Event = ev
			}
		}
		if f1, ok := m.FightersByID[cp.Fighter1ID]; ok && cp.Fighter1 == nil {
			c := *f1
			cp.Fighter1 = &c
		}
		if f2, ok := m.FightersByID[cp.Fighter2ID]; ok && cp.Fighter2 == nil {
			c := *f2
			cp.Fighter2 = &c
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		var di, dj time.Time
		if out[i].Event != nil {
			di = out[i].Event.Date
		}
		if out[j].Event != nil {
			dj = out[j].Event.Date
		}
		return di.After(dj)
	})
	return out, nil
}

func (m *Memory) Finished(_ context.Context) ([]models.Fight, error) {
	var out []models.Fight
	for _, fight := range m.FightList {
		if fight.WinnerID != nil || fight.Draw {
			out = append(out, fight)
		}
	}
	return out, nil
}

func (m *Memory) eventByID(id string) *models.Event {
	for i := range m.EventList {
		if m.EventList[i].ID == id {
			cp := m.EventList[i]
			return &cp
		}
	}
	return nil
}

func (m *Memory) GetEventByID(_ context.Context, id string) (*models.Event, error) {
	if ev := m.eventByID(id); ev != nil {
		return ev, nil
	}
	return nil, ErrNotFound
}

func (m *Memory) Next(_ context.Context, after time.Time) (*models.Event, error) {
	var best *models.Event
	for i := range m.EventList {
		ev := &m.EventList[i]
		if ev.Date.Before(after) {
			continue
		}
		if best == nil || ev.Date.Before(best.Date) {
			best = ev
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (m *Memory) Last(_ context.Context, before time.Time) (*models.Event, error) {
	var best *models.Event
	for i := range m.EventList {
		ev := &m.EventList[i]
		if !ev.Date.Before(before) {
			continue
		}
		if best == nil || ev.Date.After(best.Date) {
			best = ev
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (m *Memory) DivisionByName(_ context.Context, name string) (*models.Division, error) {
	for i := range m.Divisions {
		if strings.EqualFold(m.Divisions[i].Name, name) {
			cp := m.Divisions[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) Entries(_ context.Context, divisionID string) ([]models.RankingEntry, error) {
	var out []models.RankingEntry
	for _, e := range m.RankingList {
		if e.DivisionID != divisionID {
			continue
		}
		cp := e
		if f, ok := m.FightersByID[e.FighterID]; ok {
			c := *f
			cp.Fighter = &c
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (m *Memory) ByFight(_ context.Context, fightID string) ([]models.FightOdds, error) {
	var out []models.FightOdds
	for _, o := range m.OddsList {
		if o.FightID == fightID {
			out = append(out, o)
		}
	}
	return out, nil
}

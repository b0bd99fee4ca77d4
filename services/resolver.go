package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"mma-stats-system/models"
	"mma-stats-system/repository"
)

const (
	DirectionNext = "next"
	DirectionLast = "last"
)

// ResolvedEntities carries whatever the question referenced: a fighter for the
// fighter-oriented types, a division for rankings, a temporal direction for
// event queries.
type ResolvedEntities struct {
	Fighter   *models.Fighter
	Division  string
	Direction string
	Limit     int
}

// ResolveFailure is the typed outcome for an entity the resolver could not
// pin down. Kind separates "nothing matched" from "too many matched".
type ResolveFailure struct {
	Kind       string // "not_found" | "ambiguous"
	Subject    string // what was looked for, e.g. the extracted name
	Candidates []string
}

func (e *ResolveFailure) Error() string {
	if e.Kind == "ambiguous" {
		return fmt.Sprintf("ambiguous match for %q: %s", e.Subject, strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("no match for %q", e.Subject)
}

// Resolver extracts entities from question text and resolves them against the
// fighter and division stores.
type Resolver struct {
	fighters repository.FighterStore
}

func NewResolver(fighters repository.FighterStore) *Resolver {
	return &Resolver{fighters: fighters}
}

// Resolve extracts and looks up the entities the query type needs. A
// *ResolveFailure is returned when a referenced entity cannot be resolved;
// any other error is a store failure.
func (r *Resolver) Resolve(ctx context.Context, question string, intent Intent) (*ResolvedEntities, error) {
	switch intent.Type {
	case QueryFighterRecord, QueryFighterStats, QueryFighterFights:
		fighter, err := r.resolveFighter(ctx, question)
		if err != nil {
			return nil, err
		}
		return &ResolvedEntities{Fighter: fighter, Limit: fightLimit(intent)}, nil

	case QueryRankings:
		division := ExtractDivision(question)
		if division == "" {
			return nil, &ResolveFailure{Kind: "not_found", Subject: "division"}
		}
		return &ResolvedEntities{Division: division}, nil

	case QueryEvent:
		return &ResolvedEntities{Direction: eventDirection(question, intent)}, nil
	}

	return &ResolvedEntities{}, nil
}

// nameStopwords are capitalized words that open questions but never open a
// fighter's name.
var nameStopwords = map[string]bool{
	"what": true, "whats": true, "who": true, "whos": true, "when": true,
	"where": true, "how": true, "is": true, "was": true, "does": true,
	"did": true, "has": true, "have": true, "show": true, "tell": true,
	"give": true, "list": true, "me": true, "the": true, "a": true,
	"ufc": true, "mma": true, "i": true,
}

var capitalRunRe = regexp.MustCompile(`(?:\p{Lu}[\p{L}'’.-]*)(?:\s+\p{Lu}[\p{L}'’.-]*)*`)

// ExtractCandidateName pulls the longest run of capitalized words plausible as
// a person's name, with leading question words stripped.
func ExtractCandidateName(question string) string {
	runs := capitalRunRe.FindAllString(question, -1)

	best := ""
	for _, run := range runs {
		words := strings.Fields(run)
		// drop leading stopwords ("What", "Who", "Show", "UFC", ...)
		for len(words) > 0 {
			w := strings.ToLower(strings.Trim(words[0], "'’.-"))
			if nameStopwords[w] {
				words = words[1:]
				continue
			}
			break
		}
		candidate := strings.Join(words, " ")
		candidate = strings.TrimSuffix(candidate, "'s")
		candidate = strings.TrimSuffix(candidate, "’s")
		candidate = strings.Trim(candidate, "'’.-")
		if len(candidate) > len(best) {
			best = candidate
		}
	}
	return best
}

func (r *Resolver) resolveFighter(ctx context.Context, question string) (*models.Fighter, error) {
	name := ExtractCandidateName(question)
	if name == "" {
		return nil, &ResolveFailure{Kind: "not_found", Subject: "fighter"}
	}

	matches, err := r.fighters.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fighter lookup failed: %w", err)
	}

	if len(matches) == 0 {
		return nil, &ResolveFailure{Kind: "not_found", Subject: name}
	}
	if len(matches) == 1 {
		return &matches[0], nil
	}

	// several substring matches: an exact normalized match still wins
	needle := repository.NormalizeName(name)
	for i := range matches {
		if matches[i].NameNormalized == needle {
			return &matches[i], nil
		}
	}

	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, m.Name)
	}
	sort.Strings(candidates)
	return nil, &ResolveFailure{Kind: "ambiguous", Subject: name, Candidates: candidates}
}

// divisionsByLength is the canonical division list sorted longest first, so
// "light heavyweight" and the women's divisions match before their suffixes.
var divisionsByLength = func() []string {
	out := make([]string, len(models.WeightClasses))
	copy(out, models.WeightClasses)
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}()

// ExtractDivision finds a canonical weight-class token in the question, or ""
// when none is recognized. "p4p" and "pound for pound" map to the P4P lists.
func ExtractDivision(question string) string {
	q := strings.ToLower(question)
	q = strings.ReplaceAll(q, "’", "'")

	if strings.Contains(q, "p4p") || regexp.MustCompile(`pound[\s-]+for[\s-]+pound`).MatchString(q) {
		if strings.Contains(q, "women") || strings.Contains(q, "female") {
			return "women's pound-for-pound"
		}
		return "men's pound-for-pound"
	}

	for _, division := range divisionsByLength {
		if strings.Contains(q, division) {
			// a men's division name inside a women's phrase means the
			// women's variant was wanted but isn't canonical as written
			if !strings.HasPrefix(division, "women's") && strings.Contains(q, "women's "+division) {
				continue
			}
			return division
		}
	}
	return ""
}

func fightLimit(intent Intent) int {
	limit := 1
	if raw := intent.Group("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 10 {
		limit = 10
	}
	return limit
}

func eventDirection(question string, intent Intent) string {
	qualifier := strings.ToLower(intent.Group("direction"))
	if qualifier == "" {
		qualifier = strings.ToLower(question)
	}
	switch {
	case strings.Contains(qualifier, "last"),
		strings.Contains(qualifier, "previous"),
		strings.Contains(qualifier, "recent"),
		strings.Contains(qualifier, "latest"):
		return DirectionLast
	default:
		return DirectionNext
	}
}

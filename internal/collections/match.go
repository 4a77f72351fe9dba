package collections

import (
	"sort"
	"strings"

	"github.com/findez/findez/internal/model"
)

// MatchKind classifies how strongly an item relates to a purchase intent.
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchSimilar MatchKind = "similar"
)

// Match is one item that relates to a purchase intent, with the reasons
// it was included.
type Match struct {
	Item    model.Item `json:"item"`
	Reasons []string   `json:"reasons"`
	Kind    MatchKind  `json:"kind"`
}

// fallbackReason covers items included without a more specific signal.
const fallbackReason = "Related by search"

// MatchIntent scores every item against a free-text purchase intent and
// returns the items with at least one signal, exact matches first, then
// similar matches in ascending name order. parsed carries optional hints
// from an upstream query parse; only its string values are consumed.
func MatchIntent(intent string, parsed map[string]any, items []model.Item) []Match {
	normIntent := NormalizeText(intent)
	intentTokens := TokenSet(intent)

	// Hint strings extend the intent token set.
	var hintTokens []map[string]bool
	for _, v := range parsed {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		toks := TokenSet(s)
		hintTokens = append(hintTokens, toks)
		for t := range toks {
			intentTokens[t] = true
		}
	}

	intentCatDomains := DomainsForTokens(intentTokens, CategoryDomains)
	intentLocDomains := DomainsForTokens(intentTokens, LocationDomains)

	var matches []Match
	for _, item := range items {
		exact := NormalizeText(item.Name) == normIntent && normIntent != ""

		var reasons []string
		if exact {
			reasons = append(reasons, "Exact name match")
		}

		nameTokens := TokenSet(item.Name)
		if Intersects(nameTokens, intentTokens) {
			reasons = append(reasons, "Name overlaps your intent")
		}

		catTokens := TokenSet(item.Category)
		if Intersects(catTokens, intentTokens) {
			reasons = append(reasons, "Category overlaps your intent")
		}

		locTokens := TokenSet(item.Location)
		if Intersects(locTokens, intentTokens) {
			reasons = append(reasons, "Location overlaps your intent")
		}

		// Domain comparison folds the name into the category side: the
		// name often carries the category signal ("Rechargeable AA")
		// when the category field is generic ("Home").
		itemCatTokens := union(catTokens, nameTokens)
		if Intersects(DomainsForTokens(itemCatTokens, CategoryDomains), intentCatDomains) {
			reasons = append(reasons, "Category is in a related area")
		}
		if Intersects(DomainsForTokens(locTokens, LocationDomains), intentLocDomains) {
			reasons = append(reasons, "Location is in a related area")
		}

		if hintsOverlap(hintTokens, item) {
			reasons = append(reasons, fallbackReason)
		}

		if !exact && len(reasons) == 0 {
			continue
		}
		if len(reasons) == 0 {
			reasons = []string{fallbackReason}
		}

		kind := MatchSimilar
		if exact {
			kind = MatchExact
		}
		matches = append(matches, Match{Item: item, Reasons: reasons, Kind: kind})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Kind != matches[j].Kind {
			return matches[i].Kind == MatchExact
		}
		return strings.ToLower(matches[i].Item.Name) < strings.ToLower(matches[j].Item.Name)
	})

	return matches
}

// hintsOverlap reports whether any parsed hint relates to the item's
// category or location, by substring or token intersection.
func hintsOverlap(hints []map[string]bool, item model.Item) bool {
	if len(hints) == 0 {
		return false
	}
	category := NormalizeText(item.Category)
	location := NormalizeText(item.Location)
	catTokens := TokenSet(item.Category)
	locTokens := TokenSet(item.Location)

	for _, toks := range hints {
		if Intersects(toks, catTokens) || Intersects(toks, locTokens) {
			return true
		}
		for t := range toks {
			if strings.Contains(category, t) || strings.Contains(location, t) {
				return true
			}
		}
	}
	return false
}

func union(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool, len(a)+len(b))
	for t := range a {
		out[t] = true
	}
	for t := range b {
		out[t] = true
	}
	return out
}

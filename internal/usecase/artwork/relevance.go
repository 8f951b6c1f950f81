package artwork

import (
	"sort"
	"strings"
	"unicode"

	"github.com/openmuse/gallery/domain"
)

const (
	scoreExactTitle      = 100
	scoreExactArtist     = 90
	scoreTitleSubstring  = 50
	scoreArtistSubstring = 40
	scoreWordMatch       = 10
	scoreDeepField       = 5

	// highConfidenceThreshold splits strong matches from weak ones. When
	// any candidate clears it only high-confidence results are returned,
	// trading recall for precision.
	highConfidenceThreshold = 50
	highConfidenceLimit     = 5
	matchLimit              = 10
)

// Rank filters the candidates down to artworks judged relevant to the
// query, most relevant first. Zero-score artworks are excluded entirely.
// deep additionally matches department, medium and culture.
func Rank(candidates []domain.Artwork, query string, deep bool) []domain.Artwork {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	terms := strings.Fields(query)

	type scored struct {
		artwork domain.Artwork
		score   int
	}
	matches := make([]scored, 0, len(candidates))
	for _, a := range candidates {
		if s := score(a, query, terms, deep); s > 0 {
			matches = append(matches, scored{artwork: a, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	limit := matchLimit
	if len(matches) > 0 && matches[0].score >= highConfidenceThreshold {
		// Strong matches exist; drop everything below the bar.
		cut := len(matches)
		for i, m := range matches {
			if m.score < highConfidenceThreshold {
				cut = i
				break
			}
		}
		matches = matches[:cut]
		limit = highConfidenceLimit
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}

	res := make([]domain.Artwork, len(matches))
	for i, m := range matches {
		res[i] = m.artwork
	}
	return res
}

func score(a domain.Artwork, query string, terms []string, deep bool) int {
	title := strings.ToLower(a.Title)
	artist := strings.ToLower(a.ArtistDisplayName)

	s := 0
	switch {
	case title == query:
		s += scoreExactTitle
	case artist == query:
		s += scoreExactArtist
	case title != "" && strings.Contains(title, query):
		s += scoreTitleSubstring
	case artist != "" && strings.Contains(artist, query):
		s += scoreArtistSubstring
	}

	words := splitWords(title + " " + artist)
	for _, term := range terms {
		for _, w := range words {
			if strings.Contains(w, term) || strings.Contains(term, w) {
				s += scoreWordMatch
				break
			}
		}
	}

	if deep {
		for _, field := range []string{a.Department, a.Medium, a.Culture} {
			if field == "" {
				continue
			}
			if strings.Contains(strings.ToLower(field), query) {
				s += scoreDeepField
			}
		}
	}

	return s
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

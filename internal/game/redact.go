package game

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"danny-movie-game-server/internal/model"
)

// NamePlaceholder replaces known person names in plot text.
const NamePlaceholder = "[name]"

// RedactionConfig carries the word lists driving the proper-noun pass.
// Lists are matched case-insensitively. Injected rather than hardcoded
// so fixtures can swap them out.
type RedactionConfig struct {
	// AlwaysRedact wins over every other rule.
	AlwaysRedact map[string]struct{}
	// NeverRedact vetoes redaction even for capitalized words.
	NeverRedact map[string]struct{}
	// Stopwords are common function words that stay visible when they
	// open a sentence.
	Stopwords map[string]struct{}
}

// NewRedactionConfig builds a config from plain word lists.
func NewRedactionConfig(always, never []string) RedactionConfig {
	return RedactionConfig{
		AlwaysRedact: wordSet(always),
		NeverRedact:  wordSet(never),
		Stopwords:    wordSet(defaultStopwords),
	}
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

// defaultStopwords keeps ordinary sentence openers visible. A
// capitalized word that starts a sentence is only redacted when it is
// not on this list.
var defaultStopwords = []string{
	"a", "an", "the", "and", "but", "or", "nor", "so", "yet",
	"in", "on", "at", "by", "to", "of", "for", "with", "from", "as",
	"after", "before", "during", "when", "while", "where", "once",
	"he", "she", "it", "they", "we", "you", "i", "his", "her", "its",
	"their", "our", "this", "that", "these", "those", "there", "here",
	"now", "then", "soon", "meanwhile", "however", "although", "though",
	"despite", "until", "unless", "if", "because", "since", "two",
	"one", "years", "set", "based", "amid", "following", "upon",
}

var (
	placeholderRunRe   = regexp.MustCompile(`\[name\](?:\s+\[name\])+`)
	placeholderSpaceRe = regexp.MustCompile(`\s+(\[name\])\s+`)
	placeholderLeadRe  = regexp.MustCompile(`\[name\]\s+`)
	placeholderTrailRe = regexp.MustCompile(`\s+\[name\]`)
)

// RemoveKnownNames replaces every case-insensitive whole-word
// occurrence of each name with the placeholder token, collapses runs of
// adjacent placeholders and tidies surrounding whitespace. Names come
// from structured cast/director fields so matches are exact; the
// heuristic proper-noun pass handles everything else.
func RemoveKnownNames(plot string, names []string) string {
	if plot == "" {
		return ""
	}
	out := plot
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
		if err != nil {
			continue
		}
		out = re.ReplaceAllString(out, NamePlaceholder)
	}
	out = placeholderRunRe.ReplaceAllString(out, NamePlaceholder)
	// Normalize whatever whitespace surrounded the original name, line
	// breaks included, to single spaces around the placeholder.
	out = placeholderSpaceRe.ReplaceAllString(out, " $1 ")
	out = placeholderLeadRe.ReplaceAllString(out, NamePlaceholder+" ")
	out = placeholderTrailRe.ReplaceAllString(out, " "+NamePlaceholder)
	return strings.TrimSpace(out)
}

// KnownNames collects the people names attached to a movie record that
// must be scrubbed from its plot.
func KnownNames(d *model.MovieDetails) []string {
	var names []string
	names = append(names, d.CastOrdered...)
	for _, dir := range strings.Split(d.Director, ",") {
		if dir = strings.TrimSpace(dir); dir != "" {
			names = append(names, dir)
		}
	}
	return names
}

// SegmentPlot splits a plot into ordered segments, marking residual
// proper nouns as redacted. Concatenating segment texts reproduces the
// input exactly. When nothing gets redacted the whole plot comes back
// as a single visible segment so clients can render plain text without
// special cases.
func SegmentPlot(plot string, cfg RedactionConfig) []model.PlotSegment {
	if plot == "" {
		return nil
	}

	units := classifyUnits(plot, cfg)

	// Whitespace between two redacted words joins them into one
	// hidden run.
	for i := 1; i < len(units)-1; i++ {
		if units[i].ws && units[i-1].redacted && units[i+1].redacted {
			units[i].redacted = true
		}
	}

	anyRedacted := false
	for _, u := range units {
		if u.redacted {
			anyRedacted = true
			break
		}
	}
	if !anyRedacted {
		return []model.PlotSegment{{Text: plot}}
	}

	var segs []model.PlotSegment
	for _, u := range units {
		if n := len(segs); n > 0 && segs[n-1].IsRedacted == u.redacted {
			segs[n-1].Text += u.text
			continue
		}
		segs = append(segs, model.PlotSegment{Text: u.text, IsRedacted: u.redacted})
	}
	return segs
}

type unit struct {
	text     string
	ws       bool
	redacted bool
}

// classifyUnits tokenizes the plot into whitespace and word units,
// splitting each redacted word into its punctuation shell and hidden
// core so delimiters like parentheses and quotes stay visible.
func classifyUnits(plot string, cfg RedactionConfig) []unit {
	var units []unit
	sentenceStart := true

	for _, tok := range splitTokens(plot) {
		if tok.ws {
			units = append(units, unit{text: tok.text, ws: true})
			continue
		}

		prefix, bare, suffix := stripPunct(tok.text)
		inParens := strings.Contains(prefix, "(") && strings.Contains(suffix, ")")
		inQuotes := containsQuote(prefix) && containsQuote(suffix)

		if bare != "" && isRedactable(bare, sentenceStart, inParens, inQuotes, cfg) {
			if prefix != "" {
				units = append(units, unit{text: prefix})
			}
			units = append(units, unit{text: bare, redacted: true})
			if suffix != "" {
				units = append(units, unit{text: suffix})
			}
		} else {
			units = append(units, unit{text: tok.text})
		}

		if bare == "" {
			sentenceStart = strings.ContainsAny(tok.text, ".!?")
		} else {
			sentenceStart = strings.ContainsAny(suffix, ".!?")
		}
	}
	return units
}

type token struct {
	text string
	ws   bool
}

func splitTokens(s string) []token {
	var toks []token
	start := 0
	curWS := false
	for i, r := range s {
		isWS := unicode.IsSpace(r)
		if i == 0 {
			curWS = isWS
			continue
		}
		if isWS != curWS {
			toks = append(toks, token{text: s[start:i], ws: curWS})
			start = i
			curWS = isWS
		}
	}
	if start < len(s) {
		toks = append(toks, token{text: s[start:], ws: curWS})
	}
	return toks
}

// stripPunct splits a word token into a leading punctuation run, the
// bare word, and a trailing punctuation run.
func stripPunct(s string) (prefix, bare, suffix string) {
	start := 0
	for start < len(s) {
		r, size := utf8.DecodeRuneInString(s[start:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		start += size
	}
	end := len(s)
	for end > start {
		r, size := utf8.DecodeLastRuneInString(s[start:end])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		end -= size
	}
	return s[:start], s[start:end], s[end:]
}

func containsQuote(s string) bool {
	return strings.ContainsAny(s, `"`) || strings.Contains(s, "“") || strings.Contains(s, "”")
}

// isRedactable decides whether a bare word should be hidden. The
// always list wins, the never list vetoes, and the rest is the
// capitalization heuristic: a capitalized word is a proper-noun
// candidate unless it opens a sentence as a short or common function
// word. Accepts false positives as a game trade-off.
func isRedactable(bare string, sentenceStart, inParens, inQuotes bool, cfg RedactionConfig) bool {
	lower := strings.ToLower(bare)
	// Possessives ("Danny's") must hit the same list entry as the bare
	// name.
	base := strings.TrimSuffix(strings.TrimSuffix(lower, "'s"), "’s")
	if _, ok := cfg.AlwaysRedact[base]; ok {
		return true
	}
	if _, ok := cfg.NeverRedact[base]; ok {
		return false
	}
	first, _ := utf8.DecodeRuneInString(bare)
	if !unicode.IsUpper(first) {
		return false
	}
	if !sentenceStart {
		return true
	}
	_, stop := cfg.Stopwords[lower]
	if utf8.RuneCountInString(bare) > 1 && !stop {
		return true
	}
	return inParens || inQuotes
}

package game

import (
	"fmt"
	"regexp"
	"strings"

	"danny-movie-game-server/internal/model"
)

// MaxHintLevel is the number of reveal steps in one puzzle, ordered
// from least to most identifying. The final level reveals the redacted
// plot.
const MaxHintLevel = 7

// Hint is one revealed clue. Segments is set only on the plot hint.
type Hint struct {
	Level    int                 `json:"level"`
	Text     string              `json:"text,omitempty"`
	Segments []model.PlotSegment `json:"segments,omitempty"`
}

// Sequencer maps hint levels onto metadata fields in a fixed reveal
// order: genre, rating, runtime, supporting cast, director, lead cast,
// plot.
type Sequencer struct {
	details  *model.MovieDetails
	segments []model.PlotSegment
}

func NewSequencer(d *model.MovieDetails, plotSegments []model.PlotSegment) *Sequencer {
	return &Sequencer{details: d, segments: plotSegments}
}

// Hint returns the clue for a level, or nil when the backing field is
// absent so the caller can skip it without penalty.
func (s *Sequencer) Hint(level int) *Hint {
	d := s.details
	switch level {
	case 1:
		if d.Genre != "" {
			return &Hint{Level: level, Text: "This movie's genre is: " + d.Genre}
		}
	case 2:
		if d.ContentRating != "" {
			return &Hint{Level: level, Text: "This movie is rated: " + d.ContentRating}
		}
	case 3:
		if d.RuntimeMinutes > 0 {
			return &Hint{Level: level, Text: fmt.Sprintf("This movie's runtime is: %d min", d.RuntimeMinutes)}
		}
	case 4:
		if sup := SupportingActors(d.CastOrdered); sup != "" {
			return &Hint{Level: level, Text: "This movie features " + sup}
		}
	case 5:
		if d.Director != "" {
			return &Hint{Level: level, Text: "This movie was directed by " + d.Director}
		}
	case 6:
		if lead := LeadActor(d.CastOrdered); lead != "" {
			return &Hint{Level: level, Text: "This movie stars " + lead}
		}
	case 7:
		if len(s.segments) > 0 {
			return &Hint{Level: level, Segments: s.segments}
		}
	}
	return nil
}

// LeadActor returns the first-billed cast member.
func LeadActor(cast []string) string {
	if len(cast) == 0 {
		return ""
	}
	return cast[0]
}

// SupportingActors joins the fourth and fifth billed cast members,
// the least identifying names worth hinting with.
func SupportingActors(cast []string) string {
	var fourth, fifth string
	if len(cast) > 3 {
		fourth = cast[3]
	}
	if len(cast) > 4 {
		fifth = cast[4]
	}
	switch {
	case fourth != "" && fifth != "":
		return fourth + " and " + fifth
	case fourth != "":
		return fourth
	default:
		return fifth
	}
}

// State of one puzzle attempt. Won and Lost are terminal.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Game is the guess/hint state machine for a single puzzle instance.
// An empty guess ("no clue") consumes the hint counter the same way a
// wrong guess does.
type Game struct {
	seq       *Sequencer
	answer    string
	state     State
	level     int
	hintsUsed int
}

func NewGame(d *model.MovieDetails, plotSegments []model.PlotSegment) *Game {
	return &Game{
		seq:    NewSequencer(d, plotSegments),
		answer: NormalizeTitle(d.Title),
		state:  StatePlaying,
	}
}

func (g *Game) State() State   { return g.state }
func (g *Game) HintsUsed() int { return g.hintsUsed }

// Guess processes one answer. A correct title wins. A wrong or empty
// answer reveals the next available hint, skipping levels whose field
// is missing; when no hints remain the game is lost.
func (g *Game) Guess(raw string) (State, *Hint) {
	if g.state != StatePlaying {
		return g.state, nil
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed != "" && NormalizeTitle(trimmed) == g.answer {
		g.state = StateWon
		return g.state, nil
	}
	if g.level >= MaxHintLevel {
		g.state = StateLost
		return g.state, nil
	}
	g.hintsUsed++
	for g.level < MaxHintLevel {
		g.level++
		if h := g.seq.Hint(g.level); h != nil {
			return g.state, h
		}
	}
	// Every remaining field was empty; nothing left to reveal.
	g.state = StateLost
	return g.state, nil
}

var (
	titlePunctRe = regexp.MustCompile(`[^\w\s]`)
	titleSpaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeTitle lowercases, strips punctuation and collapses
// whitespace so "The Matrix!" matches "the matrix".
func NormalizeTitle(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	t = titlePunctRe.ReplaceAllString(t, "")
	t = titleSpaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

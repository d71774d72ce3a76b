package questiongen

import (
	"fmt"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/progress"
)

// AdaptMinAttempts is the number of attempts before performance moves the
// difficulty away from the concept's base level.
const AdaptMinAttempts = 3

// Adaptation is the outcome of adjusting a concept's base difficulty.
type Adaptation struct {
	Difficulty int
	// Guidance tells the question writer how the learner is doing. Empty
	// when there is too little history to judge.
	Guidance string
}

// AdaptDifficulty shifts base difficulty by the learner's confidence.
func AdaptDifficulty(base int, perf *progress.ConceptProgress) Adaptation {
	if perf == nil || perf.Attempts < AdaptMinAttempts {
		return Adaptation{Difficulty: base}
	}

	conf, n := perf.Confidence, perf.Attempts
	switch {
	case conf >= 80:
		return Adaptation{
			Difficulty: min(catalog.MaxDifficulty, base+1),
			Guidance: fmt.Sprintf("The student has shown strong understanding (%d%% accuracy over %d attempts). "+
				"Generate a MORE CHALLENGING question that tests deeper application and analysis.", conf, n),
		}
	case conf >= 60:
		return Adaptation{
			Difficulty: base,
			Guidance: fmt.Sprintf("The student is progressing (%d%% accuracy over %d attempts). "+
				"Generate a question at the standard difficulty level.", conf, n),
		}
	case conf >= 40:
		return Adaptation{
			Difficulty: max(catalog.MinDifficulty, base-1),
			Guidance: fmt.Sprintf("The student is finding this challenging (%d%% accuracy over %d attempts). "+
				"Generate a question that reinforces core concepts before testing application.", conf, n),
		}
	default:
		return Adaptation{
			Difficulty: max(catalog.MinDifficulty, base-2),
			Guidance: fmt.Sprintf("The student needs more foundational practice (%d%% accuracy over %d attempts). "+
				"Generate a straightforward question focusing on basic understanding and definitions.", conf, n),
		}
	}
}

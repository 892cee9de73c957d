// Package simulation drives the predictor API the way a learner would:
// predict, maybe attempt the recommended action, report the outcome,
// repeat until the track is finished or the iteration budget runs out.
package simulation

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"bkt_predictor/internal/model"

	"github.com/google/uuid"
)

var actionTypes = []string{"test", "practice", "article", "video", "hint"}

// stepMinutesBase is the nominal duration of each action type before
// the difficulty surcharge.
var stepMinutesBase = map[string]int{
	"hint":     2,
	"article":  6,
	"video":    8,
	"practice": 7,
	"test":     10,
}

type Options struct {
	BaseURL             string
	IterLimit           int
	MinActionsPerLesson int
	Seed                int64
	HasSeed             bool
	Verbose             bool
	LogJSONL            string
	Transition          float64
	TotalLessons        int

	// Out receives the verbose per-step lines and the final summary.
	Out io.Writer
}

// trackLesson is one lesson of the generated track.
type trackLesson struct {
	masteryTarget float64
	maxActions    int
}

// studentState is the simulated learner.
type studentState struct {
	engagementProb  float64
	themeID         string
	themeMastery    float64
	themeTimeSpentS int
	relatedThemes   []model.Theme
	lessonIndex     int
	totalLessons    int
	lessonMastery   float64
	actionIndex     int
}

type Summary struct {
	Done             bool `json:"done"`
	LessonsCompleted int  `json:"lessons_completed"`
	Iterations       int  `json:"iterations"`
}

type Runner struct {
	opts   Options
	client *Client
	rng    *rand.Rand
	jsonl  *os.File
	runID  string
}

func NewRunner(opts Options) *Runner {
	if opts.TotalLessons <= 0 {
		opts.TotalLessons = 10
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	seed := opts.Seed
	if !opts.HasSeed {
		seed = time.Now().UnixNano()
	}

	return &Runner{
		opts:   opts,
		client: NewClient(opts.BaseURL),
		rng:    rand.New(rand.NewSource(seed)),
		runID:  uuid.New().String(),
	}
}

func clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func round3(x float64) float64 {
	return float64(int(x*1000+0.5)) / 1000
}

// uniform returns a sample from U[low, high).
func (r *Runner) uniform(low, high float64) float64 {
	return low + r.rng.Float64()*(high-low)
}

// randint returns a sample from {low..high} inclusive.
func (r *Runner) randint(low, high int) int {
	return low + r.rng.Intn(high-low+1)
}

func (r *Runner) generateActions(n int) []model.Action {
	actions := make([]model.Action, n)
	for i := range actions {
		actions[i] = model.Action{
			ActionID:         i + 1,
			ActionType:       actionTypes[r.rng.Intn(len(actionTypes))],
			ActionDifficulty: float64(r.randint(1, 10)) / 10,
		}
	}
	return actions
}

func (r *Runner) generateTrack() []trackLesson {
	track := make([]trackLesson, r.opts.TotalLessons)
	for i := range track {
		track[i] = trackLesson{
			masteryTarget: r.uniform(0.85, 0.95),
			maxActions:    r.randint(10, 16),
		}
	}
	return track
}

func (r *Runner) generateStudent() *studentState {
	related := make([]model.Theme, r.randint(2, 4))
	for i := range related {
		related[i] = model.Theme{
			ThemeID:            fmt.Sprintf("rel_%03d", r.randint(1, 999)),
			MasteryCoefficient: round3(r.uniform(0.1, 0.95)),
			TimeSpent:          r.randint(0, 14400),
		}
	}

	return &studentState{
		engagementProb: r.uniform(0.85, 0.98),
		themeID:        fmt.Sprintf("theme_%03d", r.randint(1, 999)),
		themeMastery:   r.uniform(0.05, 0.20),
		relatedThemes:  related,
		lessonIndex:    1,
		totalLessons:   r.opts.TotalLessons,
		lessonMastery:  r.uniform(0.0, 0.15),
		actionIndex:    1,
	}
}

func stepMinutes(actionType string, difficulty float64) int {
	base, ok := stepMinutesBase[actionType]
	if !ok {
		base = 6
	}
	return base + int(4*difficulty+0.5)
}

func (r *Runner) buildPredictRequest(s *studentState, actions []model.Action) *model.PredictRequest {
	mastery := round3(s.lessonMastery)
	return &model.PredictRequest{
		Theme: model.Theme{
			ThemeID:            s.themeID,
			MasteryCoefficient: round3(s.themeMastery),
			TimeSpent:          s.themeTimeSpentS,
		},
		RelatedThemes: s.relatedThemes,
		LessonIndex:   s.lessonIndex,
		LessonMastery: &mastery,
		TotalLessons:  s.totalLessons,
		ActionIndex:   s.actionIndex,
		Actions:       actions,
	}
}

func (r *Runner) writeJSONL(obj interface{}) {
	if r.jsonl == nil {
		return
	}
	line, err := json.Marshal(obj)
	if err != nil {
		return
	}
	r.jsonl.Write(append(line, '\n'))
}

type stepSnapshot struct {
	LessonIndex   int     `json:"lesson_index"`
	ActionIndex   int     `json:"action_index"`
	AttemptsDone  int     `json:"attempts_done"`
	LessonMastery float64 `json:"lesson_mastery"`
	ThemeMastery  float64 `json:"theme_mastery"`
}

func (r *Runner) snapshot(s *studentState) stepSnapshot {
	return stepSnapshot{
		LessonIndex:   s.lessonIndex,
		ActionIndex:   s.actionIndex,
		AttemptsDone:  s.actionIndex - 1,
		LessonMastery: s.lessonMastery,
		ThemeMastery:  s.themeMastery,
	}
}

// Run executes the simulation loop and returns the track summary.
func (r *Runner) Run() (*Summary, error) {
	if err := r.client.WaitForServer(80, 200*time.Millisecond); err != nil {
		return nil, err
	}

	if r.opts.LogJSONL != "" {
		if dir := filepath.Dir(r.opts.LogJSONL); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, err
			}
		}
		fp, err := os.Create(r.opts.LogJSONL)
		if err != nil {
			return nil, err
		}
		r.jsonl = fp
		defer fp.Close()
	}

	track := r.generateTrack()
	student := r.generateStudent()

	r.writeJSONL(map[string]interface{}{
		"event_type": "run_start",
		"ts":         time.Now().UTC().Format(time.RFC3339),
		"run_id":     r.runID,
		"theme_id":   student.themeID,
	})

	completedLessons := 0
	iterations := 0

	for it := 1; it <= r.opts.IterLimit; it++ {
		if student.lessonIndex > student.totalLessons {
			break
		}
		iterations = it

		current := track[student.lessonIndex-1]
		actions := r.generateActions(6)
		pre := r.snapshot(student)

		pred, err := r.client.Predict(r.buildPredictRequest(student, actions))
		if err != nil {
			return nil, err
		}
		chosen := pred.ChosenAction
		if chosen == nil {
			return nil, fmt.Errorf("predict returned no chosen action")
		}

		attempted := r.rng.Float64() <= student.engagementProb
		var success *bool
		var pSuccess float64
		minutesSpent := 0

		if attempted {
			student.actionIndex++

			// Nudge the predicted probability so the learner is noisy,
			// not a perfect oracle of the model.
			pSuccess = clamp(chosen.SuccessPrediction + r.uniform(-0.10, 0.10))
			ok := r.rng.Float64() < pSuccess
			success = &ok

			minutesSpent = stepMinutes(chosen.ActionType, chosen.ActionDifficulty)
			student.themeTimeSpentS += minutesSpent * 60

			obs, err := r.client.Observe(&model.ObserveRequest{
				ThemeID:        student.themeID,
				Attempted:      true,
				Correct:        success,
				PriorL:         chosen.PriorL,
				EffectiveGuess: chosen.EffectiveGuess,
				EffectiveSlip:  chosen.EffectiveSlip,
				Transition:     r.opts.Transition,
			})
			if err != nil {
				return nil, err
			}

			student.lessonMastery = obs.UpdatedL
			student.themeMastery = clamp(0.92*student.themeMastery + 0.08*student.lessonMastery)
		}

		attemptsDone := student.actionIndex - 1
		lessonDone := (student.lessonMastery >= current.masteryTarget && attemptsDone >= r.opts.MinActionsPerLesson) ||
			attemptsDone >= current.maxActions

		post := r.snapshot(student)

		if r.opts.Verbose {
			fmt.Fprintf(r.opts.Out,
				"[%03d] lesson=%d attempts=%d lesson_mastery=%.3f lesson_target=%.2f chosen=%d attempted=%t success=%v p=%.3f done=%t theme_mastery=%.3f\n",
				it, pre.LessonIndex, post.AttemptsDone, post.LessonMastery, current.masteryTarget,
				chosen.ActionID, attempted, success, pSuccess, lessonDone, post.ThemeMastery)
		}

		r.writeJSONL(map[string]interface{}{
			"event_type":    "step",
			"ts":            time.Now().UTC().Format(time.RFC3339),
			"run_id":        r.runID,
			"iteration":     it,
			"pre":           pre,
			"chosen_action": chosen,
			"attempted":     attempted,
			"success":       success,
			"p_success":     pSuccess,
			"minutes_spent": minutesSpent,
			"post":          post,
			"lesson_done":   lessonDone,
		})

		if lessonDone {
			completedLessons++
			student.lessonIndex++
			student.actionIndex = 1
			student.lessonMastery = clamp(student.themeMastery + r.uniform(-0.15, 0.10))
		}
	}

	done := student.lessonIndex > student.totalLessons
	summary := &Summary{
		Done:             done,
		LessonsCompleted: completedLessons,
		Iterations:       iterations,
	}

	r.writeJSONL(map[string]interface{}{
		"event_type":        "summary",
		"ts":                time.Now().UTC().Format(time.RFC3339),
		"run_id":            r.runID,
		"done":              summary.Done,
		"lessons_completed": summary.LessonsCompleted,
	})

	fmt.Fprintf(r.opts.Out, "\n=== SUMMARY ===\ndone=%t lessons_completed=%d/%d\n",
		done, completedLessons, student.totalLessons)

	return summary, nil
}

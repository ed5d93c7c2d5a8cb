// SPDX-License-Identifier: EPL-2.0

package envelope

import "math"

// Stage is the current phase of an ADSR envelope.
type Stage int

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Settings are the envelope times in seconds and the sustain level in [0, 1].
type Settings struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// ADSR is a linear attack/decay/sustain/release envelope. Every ramp starts
// from the gain the envelope currently holds, so stage changes never jump.
//
// An ADSR is owned by a single voice and is not safe for concurrent use.
type ADSR struct {
	sampleRate float64
	settings   Settings

	stage     Stage
	value     float64
	target    float64
	step      float64
	remaining int // samples left in the current ramp
	sustain   float64
}

// New creates an idle envelope.
func New(sampleRate float64, s Settings) *ADSR {
	e := &ADSR{}
	e.Init(sampleRate, s)
	return e
}

// Init resets the envelope in place, for voices that reuse their storage.
func (e *ADSR) Init(sampleRate float64, s Settings) {
	*e = ADSR{sampleRate: sampleRate}
	e.SetSettings(s)
}

// SetSettings replaces the envelope times. They apply to stages entered
// afterwards. A running decay is re-aimed at the new sustain level over the
// samples it has left; a held sustain keeps the level it was entered with.
func (e *ADSR) SetSettings(s Settings) {
	s.Attack = nonNegative(s.Attack)
	s.Decay = nonNegative(s.Decay)
	s.Release = nonNegative(s.Release)
	s.Sustain = clamp01(s.Sustain)
	e.settings = s

	if e.stage == StageDecay && e.target != s.Sustain {
		e.target = s.Sustain
		if e.remaining > 0 {
			e.step = (e.target - e.value) / float64(e.remaining)
		}
	}
}

// Settings returns the active settings.
func (e *ADSR) Settings() Settings { return e.settings }

// SetSampleRate changes the tick rate. The ramp in progress is rescaled so
// it still ends at the same wall-clock time.
func (e *ADSR) SetSampleRate(sampleRate float64) {
	if sampleRate <= 0 || sampleRate == e.sampleRate {
		return
	}
	if e.remaining > 0 && e.sampleRate > 0 {
		e.remaining = max(1, int(math.Round(float64(e.remaining)*sampleRate/e.sampleRate)))
		e.step = (e.target - e.value) / float64(e.remaining)
	}
	e.sampleRate = sampleRate
}

// Trigger starts the attack from the current gain.
func (e *ADSR) Trigger() {
	e.enter(StageAttack)
}

// Release starts the release ramp from the current gain. It has no effect
// on an idle envelope. Zero-length stages that are still pending (e.g. an
// attack of 0 right after Trigger) are completed first, so releasing an
// instant-attack note fades from full level instead of from silence.
func (e *ADSR) Release() {
	if e.stage == StageIdle {
		return
	}
	e.settle()
	if e.stage == StageIdle || e.stage == StageRelease {
		return
	}
	e.enter(StageRelease)
}

// Reset forces the envelope to idle with zero gain.
func (e *ADSR) Reset() {
	e.stage = StageIdle
	e.value = 0
	e.target = 0
	e.step = 0
	e.remaining = 0
}

// Next advances the envelope by one sample and returns the gain for that
// sample. It is the only call that moves the envelope forward.
func (e *ADSR) Next() float64 {
	e.settle()

	switch e.stage {
	case StageIdle:
		e.value = 0
		return 0
	case StageSustain:
		e.value = e.sustain
		return e.value
	}

	e.value += e.step
	e.remaining--
	if e.remaining <= 0 {
		e.value = e.target
		e.enter(e.stage.next())
	}
	return e.value
}

func (e *ADSR) Stage() Stage { return e.stage }

// Value is the gain produced by the most recent Next call.
func (e *ADSR) Value() float64 { return e.value }

// Idle reports whether the envelope has finished.
func (e *ADSR) Idle() bool { return e.stage == StageIdle }

// settle completes ramps whose length is zero.
func (e *ADSR) settle() {
	for e.remaining <= 0 && e.stage.ramps() {
		e.value = e.target
		e.enter(e.stage.next())
	}
}

func (e *ADSR) enter(stage Stage) {
	e.stage = stage
	e.step = 0
	e.remaining = 0

	var seconds float64
	switch stage {
	case StageIdle:
		e.value = 0
		e.target = 0
		return
	case StageAttack:
		e.target = 1
		seconds = e.settings.Attack
	case StageDecay:
		e.target = e.settings.Sustain
		seconds = e.settings.Decay
	case StageSustain:
		// hold what the decay reached
		e.sustain = e.value
		e.target = e.sustain
		return
	case StageRelease:
		e.target = 0
		seconds = e.settings.Release
	}

	e.remaining = e.samples(seconds)
	if e.remaining > 0 {
		e.step = (e.target - e.value) / float64(e.remaining)
	}
}

func (e *ADSR) samples(seconds float64) int {
	if seconds <= 0 || e.sampleRate <= 0 {
		return 0
	}
	return int(math.Round(seconds * e.sampleRate))
}

func (s Stage) ramps() bool {
	return s == StageAttack || s == StageDecay || s == StageRelease
}

func (s Stage) next() Stage {
	switch s {
	case StageAttack:
		return StageDecay
	case StageDecay:
		return StageSustain
	default:
		return StageIdle
	}
}

// maxStageSeconds bounds a single ramp so sample counts stay representable.
const maxStageSeconds = 3600.0

func nonNegative(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return math.Min(v, maxStageSeconds)
}

func clamp01(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v >= 0:
		return v
	default:
		// also catches NaN
		return 0
	}
}

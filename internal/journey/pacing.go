package journey

import "time"

// Pacing holds the delays and counts that set the rhythm of the journey.
type Pacing struct {
	RoseTarget            int
	SpawnInterval         time.Duration
	RoseFallMin           time.Duration
	RoseFallSpread        time.Duration
	PopLifetime           time.Duration
	CollectionFinishDelay time.Duration
	AnswerDelay           time.Duration
	SummaryDelay          time.Duration
	QuizSkipDelay         time.Duration
	ConfettiPieces        int
	ConfettiLifetime      time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{
		RoseTarget:            5,
		SpawnInterval:         900 * time.Millisecond,
		RoseFallMin:           3 * time.Second,
		RoseFallSpread:        2 * time.Second,
		PopLifetime:           800 * time.Millisecond,
		CollectionFinishDelay: 700 * time.Millisecond,
		AnswerDelay:           800 * time.Millisecond,
		SummaryDelay:          1200 * time.Millisecond,
		QuizSkipDelay:         1500 * time.Millisecond,
		ConfettiPieces:        80,
		ConfettiLifetime:      3 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultPacing.
func (p Pacing) withDefaults() Pacing {
	d := DefaultPacing()
	if p == (Pacing{}) {
		return d
	}
	if p.RoseTarget <= 0 {
		p.RoseTarget = d.RoseTarget
	}
	if p.SpawnInterval <= 0 {
		p.SpawnInterval = d.SpawnInterval
	}
	if p.RoseFallMin <= 0 {
		p.RoseFallMin = d.RoseFallMin
	}
	if p.RoseFallSpread <= 0 {
		p.RoseFallSpread = d.RoseFallSpread
	}
	if p.PopLifetime <= 0 {
		p.PopLifetime = d.PopLifetime
	}
	if p.CollectionFinishDelay <= 0 {
		p.CollectionFinishDelay = d.CollectionFinishDelay
	}
	if p.AnswerDelay <= 0 {
		p.AnswerDelay = d.AnswerDelay
	}
	if p.SummaryDelay <= 0 {
		p.SummaryDelay = d.SummaryDelay
	}
	if p.QuizSkipDelay <= 0 {
		p.QuizSkipDelay = d.QuizSkipDelay
	}
	if p.ConfettiPieces <= 0 {
		p.ConfettiPieces = d.ConfettiPieces
	}
	if p.ConfettiLifetime <= 0 {
		p.ConfettiLifetime = d.ConfettiLifetime
	}
	return p
}

// durationFraction returns f of d, for f in [0, 1).
func durationFraction(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}

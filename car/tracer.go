package car

import "github.com/sirupsen/logrus"

// Event is a single point of observable progress during Check, handed
// to a Tracer the way the teacher's solver package hands a
// SearchPosition to its Tracer at each search step.
type Event struct {
	Kind       string
	FrameStep  int
	Level      int
	FrameSizes []int
}

// Tracer receives Events as Check runs. The zero Tracer (nil) is
// valid and traces nothing.
type Tracer interface {
	Trace(e Event)
}

// DefaultTracer discards every event, matching the teacher's
// zero-cost no-op tracer.
type DefaultTracer struct{}

func (DefaultTracer) Trace(Event) {}

// LogrusTracer reports each Event through a structured logrus entry
// at Debug level, the way the rest of this codebase logs instead of
// writing to stdout directly.
type LogrusTracer struct {
	Log *logrus.Logger
}

func (t LogrusTracer) Trace(e Event) {
	log := t.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.WithFields(logrus.Fields{
		"kind":       e.Kind,
		"frameStep":  e.FrameStep,
		"level":      e.Level,
		"frameSizes": e.FrameSizes,
	}).Debug("car: progress")
}

package game

import (
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
)

const (
	chimeSampleRate = beep.SampleRate(44100)
	chimeFreq       = 880
	chimeLength     = 300 * time.Millisecond
)

// chime plays a short sine tone when the monitored pipeline degrades. The
// speaker is initialized lazily on first use; if that fails the chime stays
// silent for the rest of the run.
type chime struct {
	initOnce sync.Once
	ready    bool
}

func (c *chime) play() {
	c.initOnce.Do(func() {
		err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/20))
		c.ready = err == nil
	})
	if !c.ready {
		return
	}

	tone, err := generators.SinTone(chimeSampleRate, chimeFreq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(chimeSampleRate.N(chimeLength), tone))
}

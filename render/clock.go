package render

import "github.com/phanxgames/reelmark"

// Clock is a reelmark.Player without video output. While playing it advances
// the playhead in real time and reports it back to the timeline, so sections
// can be recorded against a running clock when no decoder is attached.
type Clock struct {
	tl      *reelmark.Timeline
	pos     float64
	rate    float64
	playing bool
}

// NewClock returns a paused clock at the timeline's playhead and attaches it
// as the timeline's player.
func NewClock(tl *reelmark.Timeline) *Clock {
	c := &Clock{tl: tl, pos: float64(tl.Position()), rate: 1}
	tl.SetPlayer(c)
	return c
}

// Seek implements reelmark.Player.
func (c *Clock) Seek(ms int64) { c.pos = float64(ms) }

// SetPlaybackRate implements reelmark.Player. Non-positive rates are ignored.
func (c *Clock) SetPlaybackRate(rate float64) {
	if rate > 0 {
		c.rate = rate
	}
}

func (c *Clock) Playing() bool { return c.playing }
func (c *Clock) Rate() float64  { return c.rate }

// Toggle plays or pauses. Playing from the end starts over at 0.
func (c *Clock) Toggle() {
	c.playing = !c.playing
	if c.playing && c.pos >= float64(c.tl.Duration()) {
		c.pos = 0
	}
}

// Tick advances the clock by dt seconds. It stops at the end of the video.
func (c *Clock) Tick(dt float64) {
	if !c.playing {
		return
	}
	end := float64(c.tl.Duration())
	c.pos = min(c.pos+dt*1000*c.rate, end)
	if c.pos >= end {
		c.playing = false
	}
	c.tl.SetPosition(int64(c.pos))
}

package testbed

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/pageflip/engine/core"
)

type StepKind uint8

const (
	StepPress StepKind = iota
	StepMove
	StepRelease
	// StepWait holds the script until no animation runs, then for Frames
	// more frames.
	StepWait
)

func (k StepKind) String() string {
	switch k {
	case StepPress:
		return "press"
	case StepMove:
		return "move"
	case StepRelease:
		return "release"
	case StepWait:
		return "wait"
	}
	return "unknown"
}

type Step struct {
	Kind     StepKind
	X, Y     float32
	Duration int
	Frames   int
}

// Script is a sequence of pointer steps, one per frame.
type Script []Step

// moveSteps spread a drag over this many frames
const moveSteps = 8

func drag(fromX, toX, releaseX, y float32, duration int) Script {
	s := Script{{Kind: StepPress, X: fromX, Y: y}}
	for i := 1; i <= moveSteps; i++ {
		x := fromX + (toX-fromX)*float32(i)/moveSteps
		s = append(s, Step{Kind: StepMove, X: x, Y: y})
	}
	return append(s,
		Step{Kind: StepRelease, X: releaseX, Y: y, Duration: duration},
		Step{Kind: StepWait, Frames: 1},
	)
}

// DragForward drags the bottom right corner across the page and lets go
// near the left edge.
func DragForward(width, height, duration int) Script {
	w, h := float32(width), float32(height)
	return drag(w*0.9, w*0.5, w*0.15, h*0.9, duration)
}

// DragBackward pulls a page in from the left edge and lets go on the
// right side.
func DragBackward(width, height, duration int) Script {
	w, h := float32(width), float32(height)
	return drag(w*0.15, w*0.5, w*0.7, h*0.5, duration)
}

// Restore starts a forward drag and lets go close to where it started.
func Restore(width, height, duration int) Script {
	w, h := float32(width), float32(height)
	return drag(w*0.9, w*0.5, w*0.7, h*0.9, duration)
}

// Click taps (x, y) without moving.
func Click(x, y float32, duration int) Script {
	return Script{
		{Kind: StepPress, X: x, Y: y},
		{Kind: StepRelease, X: x, Y: y, Duration: duration},
		{Kind: StepWait, Frames: 1},
	}
}

// ParseScript builds a script from comma separated gesture names:
// forward, backward, restore, click-forward, click-backward and wait.
func ParseScript(s string, width, height, duration int) (Script, error) {
	var script Script
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "":
		case "forward":
			script = append(script, DragForward(width, height, duration)...)
		case "backward":
			script = append(script, DragBackward(width, height, duration)...)
		case "restore":
			script = append(script, Restore(width, height, duration)...)
		case "click-forward":
			script = append(script, Click(float32(width)*0.95, float32(height)/2, duration)...)
		case "click-backward":
			script = append(script, Click(float32(width)*0.05, float32(height)/2, duration)...)
		case "wait":
			script = append(script, Step{Kind: StepWait, Frames: 10})
		default:
			return nil, fmt.Errorf("unknown gesture %q", name)
		}
	}
	return script, nil
}

// Player feeds a script to an input, one step per frame.
type Player struct {
	script Script
	pos    int
	waited int
}

func NewPlayer(script Script) *Player {
	return &Player{script: script}
}

func (p *Player) Done() bool {
	return p.pos >= len(p.script)
}

// Advance runs the next step. animating reports whether a flip is still
// animating, which holds wait steps.
func (p *Player) Advance(in *core.Input, animating bool) {
	if p.Done() {
		return
	}
	step := p.script[p.pos]
	switch step.Kind {
	case StepPress:
		in.ProcessButton(core.BUTTON_LEFT, true, step.X, step.Y, 0)
	case StepMove:
		in.ProcessMove(step.X, step.Y)
	case StepRelease:
		in.ProcessButton(core.BUTTON_LEFT, false, step.X, step.Y, step.Duration)
	case StepWait:
		if animating {
			return
		}
		if p.waited < step.Frames {
			p.waited++
			return
		}
		p.waited = 0
	}
	p.pos++
}

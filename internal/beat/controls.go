package beat

import "github.com/alkime/doba/pkg/uictl"

type muteKnob struct{ g *Generator }

func (mk muteKnob) Read() bool { return mk.g.Muted() }
func (mk muteKnob) Toggle()    { mk.g.Toggle() }

type volumeSlider struct{ g *Generator }

func (vs volumeSlider) Read() float64 { return vs.g.Volume() }
func (vs volumeSlider) Set(v float64) { vs.g.SetVolume(v) }

// MuteKnob exposes mute as a UI control.
func (g *Generator) MuteKnob() uictl.Knob {
	return muteKnob{g: g}
}

// VolumeSlider exposes the master volume as a UI control.
func (g *Generator) VolumeSlider() uictl.Slider[float64] {
	return volumeSlider{g: g}
}

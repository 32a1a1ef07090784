package story

import (
	"fmt"

	"github.com/lixenwraith/amrisha/scene"
	"github.com/lixenwraith/amrisha/vmath"
)

// setHeartRate updates the vitals display: bar length mapped from the bpm
// band and the readout label. Display proxy only, no clinical model
func (d *Driver) setHeartRate(bpm float64) {
	d.heartRate = bpm

	v := d.cfg.Vitals
	span := v.MaxBPM - v.MinBPM
	bar := vmath.Clamp((bpm-v.MinBPM)/span*v.BarMax, v.BarMin, v.BarMax)

	d.sink.SetScalar(scene.ObjHeartBar, "value", bar)
	d.sink.SetText(scene.ObjHeartLabel, fmt.Sprintf("Heart rate: %d bpm", int(bpm)))

	if d.statHeartRate != nil {
		d.statHeartRate.Set(bpm)
	}
}

// HeartRate returns the currently displayed bpm
func (d *Driver) HeartRate() float64 {
	return d.heartRate
}

package carcontrol

// alertLatch remembers whether any cluster alert is currently shown. An edge
// in either direction forces an immediate UI send so the display and sound
// never wait out the periodic cadence.
type alertLatch struct {
	active bool
}

// update recomputes the any-alert condition against the latch and reports
// whether it changed this cycle.
func (l *alertLatch) update(activeNow bool) bool {
	if activeNow != l.active {
		l.active = activeNow
		return true
	}
	return false
}

func (cc CarControl) collisionAlert() bool {
	return cc.HUD.Visual == AlertForwardCollision
}

func (cc CarControl) steerAlert() bool {
	return cc.HUD.Visual == AlertSteerRequired || cc.HUD.Visual == AlertLaneDeparture
}

package countdown

// Listener receives countdown notifications. Calls for one timer never
// overlap and are made without any timer lock held, so a listener may call
// back into the timer.
type Listener interface {
	// OnTick is called on every Start and once per elapsed interval with the
	// remaining time rendered in the active pattern.
	OnTick(display string)

	// OnFinished is called once when the countdown reaches 0:00.
	OnFinished()
}

// ListenerFuncs adapts a pair of functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Tick     func(display string)
	Finished func()
}

func (f ListenerFuncs) OnTick(display string) {
	if f.Tick != nil {
		f.Tick(display)
	}
}

func (f ListenerFuncs) OnFinished() {
	if f.Finished != nil {
		f.Finished()
	}
}

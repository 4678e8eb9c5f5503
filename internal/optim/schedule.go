package optim

// Scheduler maps a training step to a learning rate.
type Scheduler interface {
	LR(step int) float64
}

// ConstantLR always returns the same rate.
type ConstantLR float64

// LR implements Scheduler.
func (c ConstantLR) LR(int) float64 {
	return float64(c)
}

// LinearDecay interpolates from Start at step 0 to End at step Steps and
// holds End afterwards.
//
// LinearDecay{Start: 1.0, End: 0.1, Steps: 100} gives 1.0 - 0.9*k/100.
type LinearDecay struct {
	Start float64
	End   float64
	Steps int
}

// LR implements Scheduler.
func (d LinearDecay) LR(step int) float64 {
	if d.Steps <= 0 || step >= d.Steps {
		return d.End
	}
	if step <= 0 {
		return d.Start
	}
	return d.Start - (d.Start-d.End)*float64(step)/float64(d.Steps)
}

// Apply sets opt's learning rate for step.
func Apply(opt Optimizer, sched Scheduler, step int) {
	opt.SetLR(sched.LR(step))
}

package domain

import "strings"

// Phase is one step of the authoring wizard.
type Phase int

const (
	PhaseStrategy Phase = iota
	PhaseCreative
	PhaseFormat
)

// Phases lists the wizard steps in submit order.
var Phases = []Phase{PhaseStrategy, PhaseCreative, PhaseFormat}

func (p Phase) String() string {
	switch p {
	case PhaseStrategy:
		return "strategy"
	case PhaseCreative:
		return "creative"
	case PhaseFormat:
		return "format"
	}
	return "unknown"
}

// ValidatePhase checks the fields owned by a single phase.
func (r *CompositionRequest) ValidatePhase(p Phase) error {
	switch p {
	case PhaseStrategy:
		if strings.TrimSpace(r.AdName) == "" {
			return &ValidationError{Phase: p, Field: "adName", Message: "Please enter an Ad Name."}
		}
	case PhaseCreative:
		if strings.TrimSpace(r.Header1) == "" {
			return &ValidationError{Phase: p, Field: "header1", Message: "A Main Headline (Header 1) is required."}
		}
	case PhaseFormat:
		if len(r.AdSizes) == 0 {
			return &ValidationError{Phase: p, Field: "adSizes", Message: "Please select at least one ad size."}
		}
		for _, size := range r.AdSizes {
			if !size.Valid() {
				return &ValidationError{Phase: p, Field: "adSizes", Message: "Ad size " + string(size) + " is not a valid aspect ratio."}
			}
		}
	}
	return nil
}

// Validate runs every phase in submit order and returns the first failure.
func (r *CompositionRequest) Validate() error {
	for _, p := range Phases {
		if err := r.ValidatePhase(p); err != nil {
			return err
		}
	}
	return nil
}

// Wizard tracks the step a user is on. Moving forward validates only the
// step being left; moving back never validates.
type Wizard struct {
	step Phase
}

// Step returns the current phase.
func (w *Wizard) Step() Phase {
	return w.step
}

// Next validates the current step and advances. The last step stays put.
func (w *Wizard) Next(r *CompositionRequest) error {
	if err := r.ValidatePhase(w.step); err != nil {
		return err
	}
	if w.step < PhaseFormat {
		w.step++
	}
	return nil
}

// Back returns to the previous step without validation.
func (w *Wizard) Back() {
	if w.step > PhaseStrategy {
		w.step--
	}
}

// GoTo jumps to any earlier step without validation. Jumping forward is
// refused so no step is skipped unvalidated.
func (w *Wizard) GoTo(p Phase) bool {
	if p < PhaseStrategy || p > w.step {
		return false
	}
	w.step = p
	return true
}

// Submit validates the whole request in phase order and recomputes the
// derived fields when it passes.
func (w *Wizard) Submit(r *CompositionRequest) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.PrepareForGeneration()
	return nil
}

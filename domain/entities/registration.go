package entities

// Registration declares what a plugin or activity type supports. Each list is
// either nil (the kind is not declared and not checked) or non-empty.
type Registration struct {
	Messages []string        `json:"messages,omitempty" yaml:"messages,omitempty" validate:"omitnil,min=1,dive,required"`
	Entities []string        `json:"entities,omitempty" yaml:"entities,omitempty" validate:"omitnil,min=1,dive,required"`
	Stages   []PipelineStage `json:"stages,omitempty" yaml:"stages,omitempty" validate:"omitnil,min=1,dive,oneof=10 20 30 40"`
	Modes    []ExecutionMode `json:"modes,omitempty" yaml:"modes,omitempty" validate:"omitnil,min=1,dive,oneof=0 1"`
}

// Declared reports whether at least one kind is declared.
func (r Registration) Declared() bool {
	return r.Messages != nil || r.Entities != nil || r.Stages != nil || r.Modes != nil
}

// Clone returns a deep copy so the caller cannot mutate the declared lists.
func (r Registration) Clone() Registration {
	return Registration{
		Messages: cloneSlice(r.Messages),
		Entities: cloneSlice(r.Entities),
		Stages:   cloneSlice(r.Stages),
		Modes:    cloneSlice(r.Modes),
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// RegistrationStep binds a registration to a plugin name in a registration file.
type RegistrationStep struct {
	Plugin       string       `json:"plugin" yaml:"plugin" validate:"required"`
	Description  string       `json:"description,omitempty" yaml:"description,omitempty"`
	Registration Registration `json:"registration" yaml:"registration"`
}

// RegistrationFile is the root of a registration file.
type RegistrationFile struct {
	Steps []RegistrationStep `json:"steps" yaml:"steps" validate:"dive"`
}

// Lookup returns the registration declared for the named plugin.
func (f *RegistrationFile) Lookup(plugin string) (Registration, bool) {
	if f == nil {
		return Registration{}, false
	}
	for _, step := range f.Steps {
		if step.Plugin == plugin {
			return step.Registration, true
		}
	}
	return Registration{}, false
}

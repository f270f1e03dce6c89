package runner

import "fmt"

// Call records a single invocation made through a Fake.
type Call struct {
	Name string
	Args []string
}

// Fake is a scripted Runner for tests. Responses are keyed by command name;
// commands without a response succeed with empty output.
type Fake struct {
	Responses map[string]*Result
	Errors    map[string]error
	Calls     []Call
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{
		Responses: make(map[string]*Result),
		Errors:    make(map[string]error),
	}
}

// Run records the call and returns the scripted response for name.
func (f *Fake) Run(name string, args ...string) (*Result, error) {
	f.Calls = append(f.Calls, Call{Name: name, Args: append([]string(nil), args...)})

	if err, ok := f.Errors[name]; ok {
		return nil, fmt.Errorf("failed to run %s: %w", name, err)
	}
	if res, ok := f.Responses[name]; ok {
		cp := *res
		return &cp, nil
	}
	return &Result{}, nil
}

// CallsTo returns every recorded invocation of name, in order.
func (f *Fake) CallsTo(name string) []Call {
	var calls []Call
	for _, c := range f.Calls {
		if c.Name == name {
			calls = append(calls, c)
		}
	}
	return calls
}

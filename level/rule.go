package level

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ErrRuleNoResult is returned when a success rule never assigns `success`.
var ErrRuleNoResult = errors.New("level: success rule does not define success")

const ruleResultVar = "success"

// ruleModules are the only stdlib modules a rule may import.
var ruleModules = []string{"math", "text"}

// RuleInput is the state a success rule can read. Each field is exposed to
// the script as a global of the same snake_case name.
type RuleInput struct {
	KeysRequired int
	MissingKeys  int
	Coins        int
	Lives        int
	Remaining    float64
}

func (in RuleInput) vars() map[string]any {
	return map[string]any{
		"keys_required": in.KeysRequired,
		"missing_keys":  in.MissingKeys,
		"coins":         in.Coins,
		"lives":         in.Lives,
		"remaining":     in.Remaining,
	}
}

// SuccessRule is a compiled tengo script deciding when a level is won.
type SuccessRule struct {
	compiled *tengo.Compiled
}

// CompileRule compiles src once. The script sees the RuleInput globals and
// the math and text modules, and must assign a boolean `success`.
func CompileRule(src string) (*SuccessRule, error) {
	script := tengo.NewScript([]byte(src))
	for name, value := range (RuleInput{}).vars() {
		if err := script.Add(name, value); err != nil {
			return nil, fmt.Errorf("level: compile rule: %w", err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(ruleModules...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("level: compile rule: %w", err)
	}
	return &SuccessRule{compiled: compiled}, nil
}

// Evaluate runs the rule against in.
func (r *SuccessRule) Evaluate(in RuleInput) (bool, error) {
	if r == nil || r.compiled == nil {
		return false, nil
	}
	for name, value := range in.vars() {
		if err := r.compiled.Set(name, value); err != nil {
			return false, fmt.Errorf("level: evaluate rule: %w", err)
		}
	}
	if err := r.compiled.Run(); err != nil {
		return false, fmt.Errorf("level: evaluate rule: %w", err)
	}
	if !r.compiled.IsDefined(ruleResultVar) {
		return false, ErrRuleNoResult
	}
	return r.compiled.Get(ruleResultVar).Bool(), nil
}

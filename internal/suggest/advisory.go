package suggest

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

// AdvisoryDef is an operator-supplied free-text advisory. When is an expr
// boolean over the variables sleep, work, social, screen and energy.
type AdvisoryDef struct {
	Name    string
	When    string
	Message string
}

// advisoryVars maps expression variable names to summary fields.
var advisoryVars = map[string]Field{
	"sleep":  FieldSleep,
	"work":   FieldWork,
	"social": FieldSocial,
	"screen": FieldScreen,
	"energy": FieldEnergy,
}

func advisoryEnv(s MetricSummary) map[string]any {
	return map[string]any{
		"sleep":  s.SleepHours,
		"work":   s.WorkHours,
		"social": s.SocialTime,
		"screen": s.ScreenTime,
		"energy": s.EmotionalEnergy,
	}
}

// CompileAdvisories compiles each definition once and returns advisory rules
// ready to append to the rule table. A bad expression fails the whole set.
func CompileAdvisories(defs []AdvisoryDef) ([]Rule, error) {
	rules := make([]Rule, 0, len(defs))
	seen := make(map[string]bool, len(defs))
	for i, def := range defs {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			name = fmt.Sprintf("advisory_%d", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("advisory %q: duplicate name", name)
		}
		seen[name] = true

		if strings.TrimSpace(def.Message) == "" {
			return nil, fmt.Errorf("advisory %q: message is required", name)
		}

		needs, err := referencedFields(def.When)
		if err != nil {
			return nil, fmt.Errorf("advisory %q: %w", name, err)
		}

		program, err := expr.Compile(def.When, expr.Env(advisoryEnv(MetricSummary{})), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("advisory %q: compiling %q: %w", name, def.When, err)
		}

		rules = append(rules, Rule{
			Name:     name,
			Priority: PriorityLow,
			Needs:    needs,
			When:     runAdvisory(program),
			Message:  staticMessage(def.Message),
		})
	}
	return rules, nil
}

func runAdvisory(program *vm.Program) func(MetricSummary) bool {
	return func(s MetricSummary) bool {
		out, err := expr.Run(program, advisoryEnv(s))
		if err != nil {
			return false
		}
		ok, _ := out.(bool)
		return ok
	}
}

func staticMessage(msg string) func(MetricSummary) string {
	return func(MetricSummary) string { return msg }
}

// fieldCollector gathers the summary fields an expression reads.
type fieldCollector struct {
	fields Field
}

func (c *fieldCollector) Visit(node *ast.Node) {
	ident, ok := (*node).(*ast.IdentifierNode)
	if !ok {
		return
	}
	if f, known := advisoryVars[ident.Value]; known {
		c.fields |= f
	}
}

// referencedFields parses an expression and reports which summary fields it
// depends on, so the advisory stays silent when those inputs are missing.
// Unknown names are left for expr.Compile to reject.
func referencedFields(when string) (Field, error) {
	if strings.TrimSpace(when) == "" {
		return 0, fmt.Errorf("condition is required")
	}
	tree, err := parser.Parse(when)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", when, err)
	}
	var c fieldCollector
	ast.Walk(&tree.Node, &c)
	return c.fields, nil
}

// Package dsl evaluates CEL expressions against pipeline items, for
// rule-driven filtering and explain tooling.
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/spiritsage/spiritkit/core"
)

var (
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, err
}

// Eval evaluates boolean CEL expressions over one item and its
// request context.
//
// Expression surface:
//   - item.id / item.kind / item.category_id / item.score
//   - label.<key> (a label's value, null when absent)
//   - rctx.user_id / rctx.scene / rctx.params
//
// Examples:
//   - `item.kind == "brand"`
//   - `item.score > 0.7 && item.category_id != ""`
//   - `label.pick_phase != null`
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate compiles and runs expr, which must yield a boolean.
// The empty expression is vacuously true.
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}
	if e.env == nil {
		return false, fmt.Errorf("cel env unavailable")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		// Accessing an absent key errors in CEL; express existence
		// checks as `label.key != null` instead.
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}

	return result, nil
}

func (e *Eval) buildInput() map[string]any {
	labels := make(map[string]any)
	labelAccessor := make(map[string]any)
	if e.item != nil {
		for k, v := range e.item.Labels {
			labels[k] = map[string]any{
				"value":  v.Value,
				"source": v.Source,
			}
			labelAccessor[k] = v.Value
		}
	}

	item := map[string]any{}
	if e.item != nil {
		item = map[string]any{
			"id":          e.item.Key.ID,
			"kind":        string(e.item.Key.Kind),
			"category_id": e.item.CategoryID,
			"score":       e.item.Score,
			"meta":        e.item.Meta,
			"labels":      labels,
		}
	}

	rctx := map[string]any{}
	if e.rctx != nil {
		rctx = map[string]any{
			"user_id": e.rctx.UserID,
			"scene":   e.rctx.Scene,
			"params":  e.rctx.Params,
		}
	}

	return map[string]any{
		"item":  item,
		"label": labelAccessor,
		"rctx":  rctx,
	}
}

package eligibility

import (
	"context"
	"sort"
	"time"
)

// Chain evaluates registered rules in ascending priority order. Construction
// is explicit so rule order and hard/soft classification are visible in one
// place.
type Chain struct {
	rules []Rule
}

// NewChain creates a chain from the given rules, sorted by ascending
// priority. Ties keep registration order.
func NewChain(rules ...Rule) *Chain {
	sorted := append([]Rule{}, rules...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return &Chain{rules: sorted}
}

// Rules returns the rules in evaluation order
func (c *Chain) Rules() []Rule {
	return append([]Rule{}, c.rules...)
}

// Evaluate runs the chain against the context. A hard failure stops
// evaluation immediately and the overall result is ineligible; soft failures
// are recorded as reasons without stopping. Passing rules are recorded too,
// so the reason list explains the whole verdict.
func (c *Chain) Evaluate(ctx context.Context, ec *Context) Result {
	start := time.Now()
	result := Result{Eligible: true}

	for _, rule := range c.rules {
		rr := rule.Evaluate(ctx, ec)
		result.RulesEvaluated++
		result.Reasons = append(result.Reasons, Reason{
			RuleCode: rule.Code(),
			Passed:   rr.Passed,
			Hard:     rule.Hard(),
			Message:  rr.Message,
		})

		if !rr.Passed {
			if rule.Hard() {
				result.Eligible = false
				break
			}
			// Soft failure: recorded, evaluation continues.
		}
	}

	result.Elapsed = time.Since(start)
	return result
}

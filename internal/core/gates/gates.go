// Package gates implements the five zero-tolerance hard gates a schedule
// must clear before a certificate can approve it. Gates are pure and
// side-effect-free; all five run on every evaluation so diagnostics are
// complete, and any single violation forces rejection.
package gates

import (
	"fmt"

	"github.com/example/sendgate/internal/models"
	"github.com/example/sendgate/internal/taxonomy"
)

// Gate names, in evaluation order.
const (
	GateVaultCompliance   = "vault_compliance"
	GateAvoidExclusion    = "avoid_exclusion"
	GatePageTypeRules     = "page_type_rules"
	GateSendTypeDiversity = "send_type_diversity"
	GateFlyerRequirement  = "flyer_requirement"
)

// Input carries a schedule plus the per-creator business-data snapshots the
// gates evaluate against. Snapshots are read-only; a missing snapshot is a
// collaborator failure the caller must reject before evaluation.
type Input struct {
	Schedule   models.Schedule
	VaultTypes []string               // content types the creator has made available
	Rankings   map[string]models.Tier // content type -> performance tier
}

// GateResult is the outcome of one gate.
type GateResult struct {
	Name       string             `json:"name"`
	Passed     bool               `json:"passed"`
	Violations []models.Violation `json:"violations,omitempty"`
}

// Result is the outcome of a full gate evaluation.
type Result struct {
	Gates      []GateResult
	Diversity  DiversityCounts
	Violations []models.Violation // all gates, flattened
	Passed     bool
}

// Evaluator runs the hard-gate set against schedules. The taxonomy cache is
// injected so evaluators share lookup state without package globals.
type Evaluator struct {
	tax *taxonomy.Cache
}

// NewEvaluator creates a gate evaluator backed by the given taxonomy cache.
func NewEvaluator(tax *taxonomy.Cache) *Evaluator {
	return &Evaluator{tax: tax}
}

// Evaluate runs all five gates. No short-circuiting: every gate reports its
// violations even when an earlier gate already failed.
func (e *Evaluator) Evaluate(in Input) Result {
	diversity := CountDiversity(in.Schedule.Items, e.tax)

	results := []GateResult{
		e.vaultCompliance(in),
		e.avoidExclusion(in),
		e.pageTypeRules(in),
		e.sendTypeDiversity(in.Schedule.PageType, diversity),
		e.flyerRequirement(in),
	}

	var all []models.Violation
	passed := true
	for _, g := range results {
		if !g.Passed {
			passed = false
		}
		all = append(all, g.Violations...)
	}

	return Result{
		Gates:      results,
		Diversity:  diversity,
		Violations: all,
		Passed:     passed,
	}
}

// vaultCompliance checks every item's content type against the vault set.
func (e *Evaluator) vaultCompliance(in Input) GateResult {
	vault := make(map[string]bool, len(in.VaultTypes))
	for _, ct := range in.VaultTypes {
		vault[ct] = true
	}

	var violations []models.Violation
	for i, item := range in.Schedule.Items {
		if !vault[item.ContentType] {
			violations = append(violations, models.Violation{
				Code:        models.CodeVaultViolation,
				Message:     fmt.Sprintf("content type %q is not in the creator's vault", item.ContentType),
				SendTypeKey: item.SendTypeKey,
				ContentType: item.ContentType,
				ItemIndex:   i,
			})
		}
	}

	return GateResult{Name: GateVaultCompliance, Passed: len(violations) == 0, Violations: violations}
}

// avoidExclusion checks that no item uses AVOID-tier content.
func (e *Evaluator) avoidExclusion(in Input) GateResult {
	var violations []models.Violation
	for i, item := range in.Schedule.Items {
		if in.Rankings[item.ContentType] == models.TierAvoid {
			violations = append(violations, models.Violation{
				Code:        models.CodeAvoidTierViolation,
				Message:     fmt.Sprintf("content type %q is ranked AVOID for this creator", item.ContentType),
				SendTypeKey: item.SendTypeKey,
				ContentType: item.ContentType,
				ItemIndex:   i,
			})
		}
	}

	return GateResult{Name: GateAvoidExclusion, Passed: len(violations) == 0, Violations: violations}
}

// pageTypeRules checks send-type compatibility with the page type using the
// static compatibility matrix. Unknown send types are incompatible with
// every page type.
func (e *Evaluator) pageTypeRules(in Input) GateResult {
	var violations []models.Violation
	for i, item := range in.Schedule.Items {
		if e.tax.AllowedOnPage(item.SendTypeKey, in.Schedule.PageType) {
			continue
		}
		msg := fmt.Sprintf("send type %q is not allowed on %s pages", item.SendTypeKey, in.Schedule.PageType)
		if _, known := e.tax.Lookup(item.SendTypeKey); !known {
			msg = fmt.Sprintf("unknown send type %q", item.SendTypeKey)
		}
		violations = append(violations, models.Violation{
			Code:        models.CodePageTypeViolation,
			Message:     msg,
			SendTypeKey: item.SendTypeKey,
			ContentType: item.ContentType,
			ItemIndex:   i,
		})
	}

	return GateResult{Name: GatePageTypeRules, Passed: len(violations) == 0, Violations: violations}
}

// sendTypeDiversity checks the four distinct-count thresholds. The
// retention threshold only applies to paid pages.
func (e *Evaluator) sendTypeDiversity(pageType models.PageType, d DiversityCounts) GateResult {
	var violations []models.Violation
	fail := func(format string, args ...any) {
		violations = append(violations, models.Violation{
			Code:      models.CodeInsufficientDiversity,
			Message:   fmt.Sprintf(format, args...),
			ItemIndex: -1,
		})
	}

	if d.UniqueSendTypes < MinUniqueSendTypes {
		fail("schedule has %d unique send types, need at least %d", d.UniqueSendTypes, MinUniqueSendTypes)
	}
	if d.UniqueRevenue < MinUniqueRevenue {
		fail("schedule has %d unique revenue send types, need at least %d", d.UniqueRevenue, MinUniqueRevenue)
	}
	if d.UniqueEngagement < MinUniqueEngagement {
		fail("schedule has %d unique engagement send types, need at least %d", d.UniqueEngagement, MinUniqueEngagement)
	}
	if pageType == models.PageTypePaid && d.UniqueRetention < MinUniqueRetentionPaid {
		fail("paid-page schedule has %d unique retention send types, need at least %d", d.UniqueRetention, MinUniqueRetentionPaid)
	}

	return GateResult{Name: GateSendTypeDiversity, Passed: len(violations) == 0, Violations: violations}
}

// flyerRequirement checks that every item whose send type is in the
// flyer-required set actually carries a flyer.
func (e *Evaluator) flyerRequirement(in Input) GateResult {
	var violations []models.Violation
	for i, item := range in.Schedule.Items {
		if e.tax.FlyerRequired(item.SendTypeKey) && !item.FlyerRequired {
			violations = append(violations, models.Violation{
				Code:        models.CodeFlyerRequirement,
				Message:     fmt.Sprintf("send type %q requires a flyer but none is attached", item.SendTypeKey),
				SendTypeKey: item.SendTypeKey,
				ContentType: item.ContentType,
				ItemIndex:   i,
			})
		}
	}

	return GateResult{Name: GateFlyerRequirement, Passed: len(violations) == 0, Violations: violations}
}

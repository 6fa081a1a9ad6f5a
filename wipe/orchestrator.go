// Package wipe implements the method orchestrator (C3): it walks a
// method's pattern sequence once per round, applies the verify policy,
// and runs the final-stage rule, dispatching every pass to package
// pass (spec.md §4.3).
package wipe

import (
	"context"
	"fmt"

	"github.com/wipecore/diskwipe/config"
	"github.com/wipecore/diskwipe/devctx"
	"github.com/wipecore/diskwipe/entropy"
	"github.com/wipecore/diskwipe/method"
	"github.com/wipecore/diskwipe/pass"
	"github.com/wipecore/diskwipe/prng"
)

// Run executes dc.Options.Method against dc, using src for every seed
// and permutation draw the method needs. It validates the selected
// method/PRNG names against their registries (spec.md §6) before
// touching the device.
func Run(ctx context.Context, dc *devctx.Context, src entropy.Source) devctx.Result {
	m, err := method.Lookup(dc.Options.Method)
	if err != nil {
		dc.Logger.Errorf("wipe: %v", err)
		dc.SetResult(devctx.ResultSanity)
		return devctx.ResultSanity
	}

	if m.Kind != method.KindVerifyOnly && needsPRNG(m) {
		if _, err := prng.Lookup(dc.Options.PRNG); err != nil {
			dc.Logger.Errorf("wipe: %v", err)
			dc.SetResult(devctx.ResultSanity)
			return devctx.ResultSanity
		}
	}

	if m.Kind == method.KindVerifyOnly {
		return runVerifyOnly(ctx, dc, m)
	}

	patterns, err := m.Build(src)
	if err != nil {
		dc.Logger.Errorf("wipe: building pattern sequence for %s: %v", m.Name, err)
		dc.SetResult(devctx.ResultFatalIO)
		return devctx.ResultFatalIO
	}

	dc.SetPassCount(len(patterns))
	dc.SetRoundSize(roundSize(m, len(patterns), dc))
	dc.SetRoundCount(dc.Options.Rounds)

	for round := 1; round <= dc.Options.Rounds; round++ {
		dc.SetRoundWorking(round)
		dc.ResetRoundDone()

		for i, p := range patterns {
			dc.SetPassWorking(i + 1)

			lastpass := dc.Options.Verify == config.VerifyLast &&
				m.Kind != method.KindOPS2 &&
				!dc.Options.BlankAfter &&
				round == dc.Options.Rounds &&
				i == len(patterns)-1

			if result := runPattern(ctx, dc, src, p, m, lastpass); result != devctx.ResultSuccess {
				return result
			}
		}
	}

	if result := runFinalStage(ctx, dc, src, m); result != devctx.ResultSuccess {
		return result
	}

	return finalResult(dc)
}

// runPattern dispatches one pattern within a round (spec.md §4.3 step
// 2), applying the verify==All / lastpass / IS5Enhanced-exception
// rules uniformly for static and random patterns.
func runPattern(ctx context.Context, dc *devctx.Context, src entropy.Source, p method.Pattern, m method.Method, lastpass bool) devctx.Result {
	if p.IsRandom() {
		seed, result := pass.RandomPass(ctx, dc, src)
		if result != devctx.ResultSuccess {
			return result
		}
		if dc.Options.Verify == config.VerifyAll || lastpass || m.IS5Enhanced {
			return pass.RandomVerify(ctx, dc, seed)
		}
		return devctx.ResultSuccess
	}

	result := pass.StaticPass(ctx, dc, p.Static)
	if result != devctx.ResultSuccess {
		return result
	}
	if dc.Options.Verify == config.VerifyAll || lastpass {
		return pass.StaticVerify(ctx, dc, p.Static)
	}
	return devctx.ResultSuccess
}

// runFinalStage implements the exclusive-per-method final stage
// (spec.md §4.3 step 3).
func runFinalStage(ctx context.Context, dc *devctx.Context, src entropy.Source, m method.Method) devctx.Result {
	switch m.Kind {
	case method.KindOPS2:
		dc.SetPassType(devctx.PassFinalOps2)
		seed, result := pass.RandomPass(ctx, dc, src)
		if result != devctx.ResultSuccess {
			return result
		}
		if dc.Options.Verify == config.VerifyAll || dc.Options.Verify == config.VerifyLast {
			return pass.RandomVerify(ctx, dc, seed)
		}
		return devctx.ResultSuccess

	default:
		if !dc.Options.BlankAfter {
			return devctx.ResultSuccess
		}
		dc.SetPassType(devctx.PassFinalBlank)
		zero := []byte{0x00}
		result := pass.StaticPass(ctx, dc, zero)
		if result != devctx.ResultSuccess {
			return result
		}
		if dc.Options.Verify == config.VerifyAll || dc.Options.Verify == config.VerifyLast {
			return pass.StaticVerify(ctx, dc, zero)
		}
		return devctx.ResultSuccess
	}
}

// runVerifyOnly implements VerifyZero/VerifyOne: a single static_verify
// against the method's fixed pattern, no writes at all (spec.md §4.3
// step 3, §4.4).
func runVerifyOnly(ctx context.Context, dc *devctx.Context, m method.Method) devctx.Result {
	dc.SetPassCount(0)
	dc.SetRoundCount(dc.Options.Rounds)
	dc.SetRoundSize(dc.Size)
	dc.SetRoundWorking(1)
	dc.ResetRoundDone()

	result := pass.StaticVerify(ctx, dc, m.VerifyPattern)
	if result != devctx.ResultSuccess {
		return result
	}
	return finalResult(dc)
}

// finalResult implements spec.md §4.3 step 4 for a run that reached
// its end: 1 if any non-fatal counter accumulated, otherwise 0. Fatal
// codes are returned by Run directly from the failing pass.
func finalResult(dc *devctx.Context) devctx.Result {
	if dc.PassErrors() > 0 || dc.VerifyErrors() > 0 || dc.FsyncdataErrors() > 0 {
		dc.SetResult(devctx.ResultErrors)
		return devctx.ResultErrors
	}
	dc.SetResult(devctx.ResultSuccess)
	return devctx.ResultSuccess
}

// needsPRNG reports whether m can include a random pattern, so a
// missing/invalid dc.Options.PRNG should be rejected up front rather
// than surfacing mid-run as a Sanity failure on the first random pass.
func needsPRNG(m method.Method) bool {
	switch m.Name {
	case "zero", "one", "dodshort", "dod522022m":
		return false
	default:
		return true
	}
}

// roundSize implements the round_size table in spec.md §4.3.
func roundSize(m method.Method, patternCount int, dc *devctx.Context) int64 {
	size := dc.Size
	rounds := int64(dc.Options.Rounds)
	base := int64(patternCount) * size * rounds

	switch m.Kind {
	case method.KindOPS2:
		total := base
		if dc.Options.Verify == config.VerifyAll {
			total *= 2
		}
		total += size // mandatory final random pass
		if dc.Options.Verify != config.VerifyNone {
			total += size // its verify
		}
		return total

	default:
		total := base
		if dc.Options.Verify == config.VerifyAll {
			total *= 2
		}
		if m.IS5Enhanced {
			total += size * rounds // mandatory per-round verify on the PRNG pass
		}
		if dc.Options.BlankAfter {
			total += size // blank pass
			if dc.Options.Verify == config.VerifyLast {
				total += size // its verify
			}
		}
		return total
	}
}

// Describe is a small diagnostic helper that reports a method's
// effective pattern count without running it.
func Describe(name string, src entropy.Source) (string, error) {
	m, err := method.Lookup(name)
	if err != nil {
		return "", err
	}
	if m.Kind == method.KindVerifyOnly {
		return fmt.Sprintf("%s: verify-only against %#x", m.Name, m.VerifyPattern), nil
	}
	patterns, err := m.Build(src)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %d passes", m.Name, len(patterns)), nil
}

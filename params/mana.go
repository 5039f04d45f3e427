package params

// ManaValues is the pair C1's decay formula produces: the decayed portion
// of mana the input already held, and the newly generated mana accrued by
// holding baseAmount across the slot range (§4.1).
type ManaValues struct {
	Stored    uint64
	Potential uint64
}

// epochOf converts a slot index to an epoch index using the protocol's
// 2^SlotsPerEpochExponent slots-per-epoch convention.
func epochOf(slot uint32, p ManaParameters) uint64 {
	return uint64(slot) >> p.SlotsPerEpochExponent
}

// decayFactor looks up the fixed-point decay multiplier for holding mana
// across epochDiff epochs, clamped to the last tabulated entry the way a
// real decay-factor LUT would be (epochs beyond the table are assumed to
// have fully saturated decay).
func decayFactor(epochDiff uint64, p ManaParameters) uint64 {
	if epochDiff == 0 {
		return 1 << p.DecayFactorEpochsSumExponent
	}
	if len(p.DecayFactors) == 0 {
		return 1 << p.DecayFactorEpochsSumExponent
	}
	idx := epochDiff - 1
	if idx >= uint64(len(p.DecayFactors)) {
		idx = uint64(len(p.DecayFactors)) - 1
	}
	return p.DecayFactors[idx]
}

// DecayedMana computes the two quantities described in §4.1: the decay of
// mana already stored on the input, and the mana freshly generated by
// holding baseAmount of base coin from fromSlot (inclusive) to toSlot
// (exclusive). Both are fixed-point computations over the supplied params;
// no floating point is used so that two runs over identical inputs produce
// bit-identical results (§5).
func DecayedMana(initialMana uint64, baseAmount uint64, fromSlot, toSlot uint32, p ManaParameters) ManaValues {
	if toSlot <= fromSlot {
		return ManaValues{Stored: initialMana, Potential: 0}
	}

	fromEpoch := epochOf(fromSlot, p)
	toEpoch := epochOf(toSlot, p)
	epochDiff := toEpoch - fromEpoch

	decay := decayFactor(epochDiff, p)
	shift := p.DecayFactorEpochsSumExponent

	decayedStored := mulShiftRight(initialMana, decay, shift)

	// Newly generated mana: amount held for (toSlot-fromSlot) slots at
	// GenerationRate, expressed in the same fixed-point base as decay so
	// it can be decayed by the remaining epochs in the range (mana
	// generated early in the range decays more than mana generated at
	// its end; this uses the simplifying approximation of decaying the
	// whole generated amount by the full-range factor, which is what the
	// "decay_factor_epochs_sum" correction term in the real protocol is
	// designed to compensate for).
	slots := uint64(toSlot - fromSlot)
	rawGenerated := mulShiftRight(baseAmount*slots, p.GenerationRate, p.GenerationRateExponent)

	potential := mulShiftRight(rawGenerated, decay, shift)

	return ManaValues{Stored: decayedStored, Potential: potential}
}

// mulShiftRight computes floor(a*b / 2^shift) using 128-bit-safe math via
// big-free manual splitting, avoiding overflow for the ranges mana
// arithmetic operates in (amounts and mana both fit comfortably in 64
// bits for any realistic network parameters).
func mulShiftRight(a, b uint64, shift uint64) uint64 {
	hi, lo := mul64(a, b)
	return shrd(hi, lo, shift)
}

// mul64 returns the 128-bit product of a*b as (hi, lo).
func mul64(a, b uint64) (hi, lo uint64) {
	const mask32 = 0xffffffff
	aLo, aHi := a&mask32, a>>32
	bLo, bHi := b&mask32, b>>32

	t := aLo * bLo
	w0 := t & mask32
	k := t >> 32

	t = aHi*bLo + k
	w1 := t & mask32
	w2 := t >> 32

	t = aLo*bHi + w1
	k = t >> 32

	hi = aHi*bHi + w2 + k
	lo = (t << 32) + w0
	return hi, lo
}

// shrd shifts the 128-bit (hi, lo) pair right by shift bits and returns the
// low 64 bits of the result, which is always representable in 64 bits for
// the shift ranges this package uses (shift < 64).
func shrd(hi, lo uint64, shift uint64) uint64 {
	if shift == 0 {
		return lo
	}
	if shift >= 64 {
		return hi >> (shift - 64)
	}
	return (lo >> shift) | (hi << (64 - shift))
}

// EffectiveMana sums stored and potential mana, the quantity the remainder
// and allotment engines treat as an input's contribution to the mana
// balance (§4.7, §4.8).
func (m ManaValues) EffectiveMana() uint64 {
	return m.Stored + m.Potential
}

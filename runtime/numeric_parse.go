package runtime

import "math"

// This file is the Go-native strtoull/strtoll/strtold: parsing numeric
// prefixes out of arbitrary text for a freestanding target with no host
// libc to borrow the real thing from. The base-detection, cutoff-based
// overflow clamping and two's-complement negation of unsigned values all
// follow the reference cstdlib conversion routines directly; see
// parseUintRaw for the shared core both ParseUint and ParseInt delegate to.

const maxConvBase = 36

// parseUintRaw is the shared digit-walking core of ParseUint and ParseInt.
// It never applies the sign: callers interpret magnitude and neg themselves,
// since ParseInt's clamping rules need the pre-sign magnitude.
func parseUintRaw(s string, base int) (magnitude uint64, neg bool, consumed int, overflowed bool) {
	if base != 0 && (base < 2 || base > maxConvBase) {
		return 0, false, 0, false
	}

	n := len(s)
	i := 0
	for i < n && isSpace(s[i]) {
		i++
	}
	if i < n && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	end := 0
	sawDigit := false

	if i < n && s[i] == '0' {
		i++
		end = i
		sawDigit = true
		if base == 16 && i < n && (s[i] == 'x' || s[i] == 'X') {
			i++
		} else if base == 0 {
			if i < n && (s[i] == 'x' || s[i] == 'X') {
				base = 16
				i++
			} else {
				base = 8
			}
		}
	} else if base == 0 {
		base = 10
	}

	const maxU64 = ^uint64(0)
	for i < n {
		d, ok := digitVal(s[i])
		if !ok || d >= base {
			break
		}
		sawDigit = true
		i++
		end = i
		if overflowed {
			continue
		}
		if magnitude > (maxU64-uint64(d))/uint64(base) {
			overflowed = true
			magnitude = maxU64
			continue
		}
		magnitude = magnitude*uint64(base) + uint64(d)
	}

	if !sawDigit {
		return 0, false, 0, false
	}
	return magnitude, neg, end, overflowed
}

// ParseUint parses an unsigned integer prefix of s in the given base (0 for
// auto-detection via a 0x/0X or leading-0 prefix, otherwise 2..36). A
// leading '-' is honoured by negating the parsed magnitude modulo 2^64,
// matching strtoull's contract. consumed is the number of bytes of s that
// contributed to the result; it is 0 when no conversion could be performed.
func ParseUint(s string, base int) (value uint64, consumed int, overflowed bool) {
	magnitude, neg, consumed, overflowed := parseUintRaw(s, base)
	if consumed == 0 {
		return 0, 0, false
	}
	if overflowed {
		return ^uint64(0), consumed, true
	}
	if neg {
		magnitude = -magnitude
	}
	return magnitude, consumed, false
}

// ParseInt parses a signed integer prefix of s in the given base. Overflow
// of the unsigned magnitude, or a magnitude outside the representable
// int64 range once the sign is applied, clamps to math.MinInt64 or
// math.MaxInt64 and reports overflowed.
func ParseInt(s string, base int) (value int64, consumed int, overflowed bool) {
	magnitude, neg, consumed, overflowed := parseUintRaw(s, base)
	if consumed == 0 {
		return 0, 0, false
	}
	if overflowed {
		if neg {
			return math.MinInt64, consumed, true
		}
		return math.MaxInt64, consumed, true
	}

	const maxPositive = uint64(math.MaxInt64)
	const minNegativeMagnitude = maxPositive + 1 // |math.MinInt64|

	if !neg {
		if magnitude > maxPositive {
			return math.MaxInt64, consumed, true
		}
		return int64(magnitude), consumed, false
	}
	if magnitude > minNegativeMagnitude {
		return math.MinInt64, consumed, true
	}
	if magnitude == minNegativeMagnitude {
		return math.MinInt64, consumed, false
	}
	return -int64(magnitude), consumed, false
}

// ParseLongDouble parses a floating-point prefix of s: optional sign, an
// 0x/0X hex-float prefix (binary exponent via p/P) or decimal digits
// (decimal exponent via e/E), and the special tokens INFINITY/INF/NAN in
// any letter case. It reports the widest native floating-point type Go
// offers, float64, in place of the C89 "long double" the original
// conversion targets. Applying an exponent saturates to +/-MaxFloat64 or to
// the smallest representable nonzero magnitude rather than overflowing to
// +/-Inf or flushing a nonzero value to zero. Saturation applies only to the
// exponent step: a digit string whose own value exceeds float64's range
// yields +/-Inf, and fractional digits too small to represent yield zero.
func ParseLongDouble(s string) (value float64, consumed int) {
	n := len(s)
	i := 0
	for i < n && isSpace(s[i]) {
		i++
	}

	neg := false
	if i < n && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	base := 10
	if i+1 < n && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') {
		base = 16
		i += 2
	}

	if tok, ok := matchFold(s[i:], "infinity"); ok {
		return signedInf(neg), i + tok
	}
	if tok, ok := matchFold(s[i:], "nan"); ok {
		return math.NaN(), i + tok
	}
	if tok, ok := matchFold(s[i:], "inf"); ok {
		return signedInf(neg), i + tok
	}

	var before, after float64
	intStart := i
	for i < n {
		d, ok := digitVal(s[i])
		if !ok || d >= base {
			break
		}
		before = before*float64(base) + float64(d)
		i++
	}
	sawInt := i > intStart

	sawFrac := false
	if i < n && s[i] == '.' {
		i++
		zeros := 0
		for i < n && s[i] == '0' {
			zeros++
			i++
		}
		fracStart := i
		for i < n {
			d, ok := digitVal(s[i])
			if !ok || d >= base {
				break
			}
			after = after*float64(base) + float64(d)
			i++
		}
		sawFracDigits := i > fracStart
		sawFrac = zeros > 0 || sawFracDigits
		for after >= 1.0 {
			after /= float64(base)
		}
		for z := 0; z < zeros; z++ {
			after /= float64(base)
		}
	}

	if !sawInt && !sawFrac {
		return 0, 0
	}

	result := before + after

	expLetterPos := i
	exponent := 0
	haveExp := false
	if i < n && ((base == 10 && (s[i] == 'e' || s[i] == 'E')) || (base == 16 && (s[i] == 'p' || s[i] == 'P'))) {
		j := i + 1
		expSign := 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			if s[j] == '-' {
				expSign = -1
			}
			j++
		}
		digitsStart := j
		expVal := 0
		for j < n && s[j] >= '0' && s[j] <= '9' {
			expVal = expVal*10 + int(s[j]-'0')
			j++
		}
		if j > digitsStart {
			exponent = expSign * expVal
			haveExp = true
			i = j
		} else {
			i = expLetterPos
		}
	}

	if haveExp {
		effBase := base
		if base == 16 {
			effBase = 2
		}
		for exponent > 0 {
			if result > math.MaxFloat64/float64(effBase) {
				result = math.MaxFloat64
				break
			}
			result *= float64(effBase)
			exponent--
		}
		for exponent < 0 {
			if result != 0 && result < math.SmallestNonzeroFloat64*float64(effBase) {
				result = math.SmallestNonzeroFloat64
				break
			}
			result /= float64(effBase)
			exponent++
		}
	}

	if neg {
		result = -result
	}
	return result, i
}

func signedInf(neg bool) float64 {
	if neg {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// ParseUint32, ParseInt32, ParseFloat32 and ParseFloat64 are narrow-width
// wrappers over the three conversions above, clamping the wide result into
// the smaller type the way strtoul/strtol/strtof narrow their own
// strtoull/strtoll/strtold results.
func ParseUint32(s string, base int) (value uint32, consumed int, overflowed bool) {
	v, c, ovf := ParseUint(s, base)
	if v > math.MaxUint32 {
		return math.MaxUint32, c, true
	}
	return uint32(v), c, ovf
}

func ParseInt32(s string, base int) (value int32, consumed int, overflowed bool) {
	v, c, ovf := ParseInt(s, base)
	if v > math.MaxInt32 {
		return math.MaxInt32, c, true
	}
	if v < math.MinInt32 {
		return math.MinInt32, c, true
	}
	return int32(v), c, ovf
}

func ParseFloat64(s string) (value float64, consumed int) {
	return ParseLongDouble(s)
}

func ParseFloat32(s string) (value float32, consumed int) {
	v, c := ParseLongDouble(s)
	switch {
	case math.IsNaN(v), math.IsInf(v, 0):
		return float32(v), c
	case v > math.MaxFloat32:
		return math.MaxFloat32, c
	case v < -math.MaxFloat32:
		return -math.MaxFloat32, c
	}
	return float32(v), c
}

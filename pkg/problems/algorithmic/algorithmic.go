// Package algorithmic generates synthetic sequence-to-sequence tasks:
// copying, shifting, reversing and digit arithmetic over bounded random
// symbol sequences.
//
// All randomness is drawn from pkg/rng, so a sequence is reproduced
// exactly by re-seeding with rng.SeedAll and starting the factory again.
package algorithmic

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/akshay120860/tensor2tensor/pkg/features"
	"github.com/akshay120860/tensor2tensor/pkg/rng"
)

// cases yields numCases examples built by build, one per pull.
func cases(numCases int, build func() (features.Example, error)) features.Iterator {
	sent := 0
	return features.FromFunc(
		func(ctx context.Context) (features.Example, error) {
			if numCases <= sent {
				return nil, io.EOF
			}
			ex, err := build()
			if err != nil {
				return nil, err
			}
			sent += 1
			return ex, nil
		},
		nil,
	)
}

func randomDigits(length int, numSymbols int64) features.Ints {
	digits := make(features.Ints, length)
	for i := range digits {
		digits[i] = rng.Int63n(numSymbols)
	}
	return digits
}

func reversed(digits features.Ints) features.Ints {
	r := make(features.Ints, len(digits))
	for i, d := range digits {
		r[len(digits)-1-i] = d
	}
	return r
}

// Identity yields examples whose targets are a copy of the inputs.
//
// Each input is a sequence of random symbols in [0, numSymbols), with
// random length in [1, maxLength].
func Identity(numSymbols int64, maxLength int, numCases int) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		return cases(numCases, func() (features.Example, error) {
			digits := randomDigits(rng.Intn(maxLength)+1, numSymbols)
			return features.Example{"inputs": digits, "targets": digits}, nil
		}), nil
	}
}

// Shift yields examples whose targets are the inputs with shift added
// to every symbol. Inputs stay below numSymbols - shift so that targets
// stay below numSymbols.
func Shift(numSymbols int64, shift int64, maxLength int, numCases int) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		return cases(numCases, func() (features.Example, error) {
			inputs := randomDigits(rng.Intn(maxLength)+1, numSymbols-shift)
			targets := make(features.Ints, len(inputs))
			for i, d := range inputs {
				targets[i] = d + shift
			}
			return features.Example{"inputs": inputs, "targets": targets}, nil
		}), nil
	}
}

// Reverse yields examples whose targets are the inputs backwards.
func Reverse(numSymbols int64, maxLength int, numCases int) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		return cases(numCases, func() (features.Example, error) {
			inputs := randomDigits(rng.Intn(maxLength)+1, numSymbols)
			return features.Example{"inputs": inputs, "targets": reversed(inputs)}, nil
		}), nil
	}
}

// ReverseNLPLike is Reverse with natural-language-like statistics:
// symbols are Zipf distributed over [1, numSymbols] and sequence
// lengths are normally distributed around maxLength/2 with standard
// deviation maxLength/scaleStdDev.
//
// alpha is the Zipf exponent and must be greater than 1.
func ReverseNLPLike(numSymbols int64, maxLength int, numCases int, scaleStdDev float64, alpha float64) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		if alpha <= 1 {
			return nil, fmt.Errorf("zipf exponent must be greater than 1, but is %f", alpha)
		}
		stdDev := float64(maxLength) / scaleStdDev
		zipf := rng.Zipf(alpha, 1, uint64(numSymbols-1))
		return cases(numCases, func() (features.Example, error) {
			length := int(math.Abs(rng.NormFloat64()*stdDev+float64(maxLength)/2)) + 1
			inputs := make(features.Ints, length)
			for i := range inputs {
				inputs[i] = int64(zipf.Uint64()) + 1
			}
			return features.Example{"inputs": inputs, "targets": reversed(inputs)}, nil
		}), nil
	}
}

// randomNumber draws a random number of exactly length digits, as a
// lower-endian digit sequence. The most significant digit of a
// multi-digit number is never zero.
func randomNumber(length int, base int64) features.Ints {
	digits := make(features.Ints, length)
	for i := 0; i < length-1; i++ {
		digits[i] = rng.Int63n(base)
	}
	if length == 1 {
		digits[0] = rng.Int63n(base)
	} else {
		digits[length-1] = rng.Int63n(base-1) + 1
	}
	return digits
}

// addDigits adds two lower-endian digit sequences.
func addDigits(a, b features.Ints, base int64) features.Ints {
	n := len(a)
	if n < len(b) {
		n = len(b)
	}
	sum := make(features.Ints, 0, n+1)
	carry := int64(0)
	for i := 0; i < n; i++ {
		d := carry
		if i < len(a) {
			d += a[i]
		}
		if i < len(b) {
			d += b[i]
		}
		sum = append(sum, d%base)
		carry = d / base
	}
	if 0 < carry {
		sum = append(sum, carry)
	}
	return sum
}

// mulDigits multiplies two lower-endian digit sequences, schoolbook way.
// Digit arithmetic never overflows, whatever the operand lengths are.
func mulDigits(a, b features.Ints, base int64) features.Ints {
	prod := make(features.Ints, len(a)+len(b))
	for i, da := range a {
		carry := int64(0)
		for j, db := range b {
			v := prod[i+j] + da*db + carry
			prod[i+j] = v % base
			carry = v / base
		}
		prod[i+len(b)] += carry
	}
	return trimZeros(prod)
}

// trimZeros drops zero digits from the most significant end, keeping at
// least one digit.
func trimZeros(digits features.Ints) features.Ints {
	end := len(digits)
	for 1 < end && digits[end-1] == 0 {
		end -= 1
	}
	return digits[:end]
}

// operands draws the two numbers of an arithmetic example. Each has a
// random length in [1, maxLength/2], so both fit the input together
// with a separator.
func operands(maxLength int, base int64) (features.Ints, features.Ints) {
	n1 := randomNumber(rng.Intn(maxLength/2)+1, base)
	n2 := randomNumber(rng.Intn(maxLength/2)+1, base)
	return n1, n2
}

// joined concatenates two digit sequences around a separator symbol.
// The separator value is base itself, one past the largest digit.
func joined(n1, n2 features.Ints, base int64) features.Ints {
	inputs := make(features.Ints, 0, len(n1)+1+len(n2))
	inputs = append(inputs, n1...)
	inputs = append(inputs, base)
	inputs = append(inputs, n2...)
	return inputs
}

// Addition yields examples asking to add two random numbers.
//
// Inputs are the two lower-endian operands joined by a separator
// symbol, targets their lower-endian sum. maxLength bounds the input
// length and must be at least 3 to fit two digits and the separator.
func Addition(base int64, maxLength int, numCases int) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		if maxLength < 3 {
			return nil, fmt.Errorf("maximum length must be at least 3, but is %d", maxLength)
		}
		return cases(numCases, func() (features.Example, error) {
			n1, n2 := operands(maxLength, base)
			return features.Example{
				"inputs":  joined(n1, n2, base),
				"targets": addDigits(n1, n2, base),
			}, nil
		}), nil
	}
}

// Multiplication yields examples asking to multiply two random numbers,
// shaped like Addition.
func Multiplication(base int64, maxLength int, numCases int) func(context.Context) (features.Iterator, error) {
	return func(ctx context.Context) (features.Iterator, error) {
		if maxLength < 3 {
			return nil, fmt.Errorf("maximum length must be at least 3, but is %d", maxLength)
		}
		return cases(numCases, func() (features.Example, error) {
			n1, n2 := operands(maxLength, base)
			return features.Example{
				"inputs":  joined(n1, n2, base),
				"targets": mulDigits(n1, n2, base),
			}, nil
		}), nil
	}
}

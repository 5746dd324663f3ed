package scheme

import (
	"fmt"
	"strings"
)

// Variant identifies one of the fixed set of constructions. The set is closed
// at build time; there is no runtime registry.
type Variant int

const (
	// VariantLinear is the single-level baseline with client-side booleans.
	VariantLinear Variant = iota

	// VariantTwoLevRR is the two-level sub-linear scheme, response-revealing.
	VariantTwoLevRR

	// VariantTwoLevRH is the two-level scheme with response-hiding padding.
	VariantTwoLevRH

	// VariantIEXTwoLev adds a pairwise cross-tag table for native booleans.
	VariantIEXTwoLev

	// VariantIEXZMF combines Bloom-filter compaction with native booleans.
	VariantIEXZMF
)

// Variants lists every variant in canonical order.
func Variants() []Variant {
	return []Variant{VariantLinear, VariantTwoLevRR, VariantTwoLevRH, VariantIEXTwoLev, VariantIEXZMF}
}

// String returns the canonical scheme name.
func (v Variant) String() string {
	switch v {
	case VariantLinear:
		return "Linear"
	case VariantTwoLevRR:
		return "2Lev-RR"
	case VariantTwoLevRH:
		return "2Lev-RH"
	case VariantIEXTwoLev:
		return "IEX-2Lev"
	case VariantIEXZMF:
		return "IEX-ZMF"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ErrUnknownVariant reports a scheme name that maps to no variant.
type ErrUnknownVariant struct {
	Name string
}

func (e *ErrUnknownVariant) Error() string {
	return fmt.Sprintf("unknown scheme %q (available: %s)", e.Name, strings.Join(VariantNames(), ", "))
}

// VariantNames returns the canonical names of all variants.
func VariantNames() []string {
	vs := Variants()
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

// NameToVariant resolves a scheme name to its variant. Matching is
// case-insensitive and accepts the historical aliases ("ZMF" for the linear
// baseline, underscore separators, "TwoLev" spellings).
func NameToVariant(name string) (Variant, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	switch n {
	case "linear", "zmf", "baseline":
		return VariantLinear, nil
	case "2lev-rr", "twolev-rr", "2lev":
		return VariantTwoLevRR, nil
	case "2lev-rh", "twolev-rh":
		return VariantTwoLevRH, nil
	case "iex-2lev", "iex2lev", "iex-twolev":
		return VariantIEXTwoLev, nil
	case "iex-zmf", "iexzmf":
		return VariantIEXZMF, nil
	default:
		return 0, &ErrUnknownVariant{Name: name}
	}
}

// New constructs a scheme instance for the variant.
func New(v Variant, optFns ...func(*Options)) Scheme {
	opts := DefaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	switch v {
	case VariantTwoLevRR:
		return newTwoLev(false, opts)
	case VariantTwoLevRH:
		return newTwoLev(true, opts)
	case VariantIEXTwoLev:
		return newIEXTwoLev(opts)
	case VariantIEXZMF:
		return newIEXZMF(opts)
	default:
		return newLinear(opts)
	}
}

// NewByName resolves a name and constructs the scheme.
func NewByName(name string, optFns ...func(*Options)) (Scheme, error) {
	v, err := NameToVariant(name)
	if err != nil {
		return nil, err
	}
	return New(v, optFns...), nil
}

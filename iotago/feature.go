package iotago

// FeatureKind discriminates the feature variants. Ordering here is also
// feature sort order on the wire (§6.3).
type FeatureKind byte

const (
	FeatureSender FeatureKind = iota
	FeatureIssuer
	FeatureMetadata
	FeatureTag
	FeatureBlockIssuer
)

// MaxFeaturesCount is the wire-level cap on features per output (§6.3:
// count packed as a u8, kind-dependent, at most 4).
const MaxFeaturesCount = 4

// Feature is implemented by every feature variant.
type Feature interface {
	Kind() FeatureKind
	// Immutable reports whether this feature, once set at creation, is
	// carried byte-identical across every later state transition (§3
	// invariant 6, §4.5).
	Immutable() bool
}

// SenderFeature names the logical sender of an output; consuming it seeds a
// Sender requirement (§3, §4.9).
type SenderFeature struct {
	Address Address
	IsImmut bool
}

func (f SenderFeature) Kind() FeatureKind { return FeatureSender }
func (f SenderFeature) Immutable() bool   { return f.IsImmut }

// IssuerFeature names the logical issuer of a freshly-minted chain output;
// it is always immutable once set (§4.9).
type IssuerFeature struct {
	Address Address
}

func (f IssuerFeature) Kind() FeatureKind { return FeatureIssuer }
func (f IssuerFeature) Immutable() bool   { return true }

// MetadataFeature carries caller-defined key/value byte blobs.
type MetadataFeature struct {
	Entries map[string][]byte
	IsImmut bool
}

func (f MetadataFeature) Kind() FeatureKind { return FeatureMetadata }
func (f MetadataFeature) Immutable() bool   { return f.IsImmut }

// TagFeature is an opaque indexing tag.
type TagFeature struct {
	Tag []byte
}

func (f TagFeature) Kind() FeatureKind { return FeatureTag }
func (f TagFeature) Immutable() bool   { return false }

// BlockIssuerFeature grants an Account output the right to issue blocks and
// pay for it via mana allotments (§4.6, §4.8).
type BlockIssuerFeature struct {
	ExpirySlot     uint32
	PublicKeyHashes [][32]byte
}

func (f BlockIssuerFeature) Kind() FeatureKind { return FeatureBlockIssuer }
func (f BlockIssuerFeature) Immutable() bool   { return false }

// FeatureSet is the ordered-unique-by-kind set an output carries.
type FeatureSet []Feature

func (s FeatureSet) Get(kind FeatureKind) Feature {
	for _, f := range s {
		if f.Kind() == kind {
			return f
		}
	}
	return nil
}

func (s FeatureSet) Sender() *SenderFeature {
	if f, ok := s.Get(FeatureSender).(SenderFeature); ok {
		return &f
	}
	return nil
}

func (s FeatureSet) Issuer() *IssuerFeature {
	if f, ok := s.Get(FeatureIssuer).(IssuerFeature); ok {
		return &f
	}
	return nil
}

func (s FeatureSet) BlockIssuer() *BlockIssuerFeature {
	if f, ok := s.Get(FeatureBlockIssuer).(BlockIssuerFeature); ok {
		return &f
	}
	return nil
}

// ImmutableEqual reports whether two feature sets have byte-identical
// immutable features, the check C10 runs on every chain transition (§3
// invariant 6, §4.5).
func ImmutableEqual(a, b FeatureSet) bool {
	ia := immutableSubset(a)
	ib := immutableSubset(b)
	if len(ia) != len(ib) {
		return false
	}
	for kind, fa := range ia {
		fb, ok := ib[kind]
		if !ok {
			return false
		}
		if !featureEqual(fa, fb) {
			return false
		}
	}
	return true
}

func immutableSubset(s FeatureSet) map[FeatureKind]Feature {
	out := make(map[FeatureKind]Feature)
	for _, f := range s {
		if f.Immutable() {
			out[f.Kind()] = f
		}
	}
	return out
}

func featureEqual(a, b Feature) bool {
	switch av := a.(type) {
	case SenderFeature:
		bv, ok := b.(SenderFeature)
		return ok && AddressEqual(av.Address, bv.Address)
	case IssuerFeature:
		bv, ok := b.(IssuerFeature)
		return ok && AddressEqual(av.Address, bv.Address)
	case MetadataFeature:
		bv, ok := b.(MetadataFeature)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for k, v := range av.Entries {
			bv2, ok := bv.Entries[k]
			if !ok || string(v) != string(bv2) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

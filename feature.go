package iotago

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/iotaledger/hive.go/constraints"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
)

var (
	// ErrNonUniqueFeatures gets returned when multiple Feature(s) with the same FeatureType exist within a set.
	ErrNonUniqueFeatures = ierrors.New("non unique features within outputs")
	// ErrInvalidFeatureTransition gets returned when a Feature's transition within a chain output is invalid.
	ErrInvalidFeatureTransition = ierrors.New("invalid feature transition")
)

// Feature is an abstract building block extending the features of an Output.
type Feature interface {
	constraints.Cloneable[Feature]
	constraints.Equalable[Feature]
	constraints.Comparable[Feature]

	// Type returns the type of the Feature.
	Type() FeatureType
}

// FeatureType defines the type of features.
type FeatureType byte

const (
	// FeatureSender denotes a SenderFeature.
	FeatureSender FeatureType = iota
	// FeatureIssuer denotes an IssuerFeature.
	FeatureIssuer
	// FeatureMetadata denotes a MetadataFeature.
	FeatureMetadata
	// FeatureStateMetadata denotes a StateMetadataFeature.
	FeatureStateMetadata
	// FeatureTag denotes a TagFeature.
	FeatureTag
)

var featNames = [FeatureTag + 1]string{
	"SenderFeature",
	"IssuerFeature",
	"MetadataFeature",
	"StateMetadataFeature",
	"TagFeature",
}

func (featType FeatureType) String() string {
	if int(featType) >= len(featNames) {
		return fmt.Sprintf("unknown feature type: %d", featType)
	}

	return featNames[featType]
}

// Features is a slice of Feature(s).
type Features[T Feature] []T

// Clone clones the Features.
func (f Features[T]) Clone() Features[T] {
	cpy := make(Features[T], len(f))
	for i, v := range f {
		//nolint:forcetypeassert // we can safely assume that this is of type T
		cpy[i] = v.Clone().(T)
	}

	return cpy
}

// Set converts the slice into a FeatureSet.
// Returns an error if a FeatureType occurs multiple times.
func (f Features[T]) Set() (FeatureSet, error) {
	set := make(FeatureSet)
	for _, feat := range f {
		if _, has := set[feat.Type()]; has {
			return nil, ErrNonUniqueFeatures
		}
		set[feat.Type()] = feat
	}

	return set, nil
}

// MustSet works like Set but panics if an error occurs.
func (f Features[T]) MustSet() FeatureSet {
	set, err := f.Set()
	if err != nil {
		panic(err)
	}

	return set
}

// Equal checks whether this slice is equal to other.
func (f Features[T]) Equal(other Features[T]) bool {
	if len(f) != len(other) {
		return false
	}

	for idx, feat := range f {
		if !feat.Equal(other[idx]) {
			return false
		}
	}

	return true
}

// Upsert adds the given feature or updates the previous one if already present.
func (f *Features[T]) Upsert(feature T) {
	for i, ele := range *f {
		if ele.Type() == feature.Type() {
			(*f)[i] = feature

			return
		}
	}
	*f = append(*f, feature)
}

// Remove removes the feature with the given type.
func (f *Features[T]) Remove(featureType FeatureType) bool {
	for i, ele := range *f {
		if ele.Type() == featureType {
			*f = append((*f)[:i], (*f)[i+1:]...)

			return true
		}
	}

	return false
}

// Sort sorts the Features in place by type.
func (f Features[T]) Sort() {
	sort.Slice(f, func(i, j int) bool { return f[i].Compare(f[j]) < 0 })
}

// FeatureSet is a set of Feature(s) keyed by their type.
type FeatureSet map[FeatureType]Feature

// Clone clones the FeatureSet.
func (f FeatureSet) Clone() FeatureSet {
	return lo.CloneMap(f)
}

// SenderFeature returns the SenderFeature in the set or nil.
func (f FeatureSet) SenderFeature() *SenderFeature {
	b, has := f[FeatureSender]
	if !has {
		return nil
	}

	//nolint:forcetypeassert // we can safely assume that this is a SenderFeature
	return b.(*SenderFeature)
}

// Issuer returns the IssuerFeature in the set or nil.
func (f FeatureSet) Issuer() *IssuerFeature {
	b, has := f[FeatureIssuer]
	if !has {
		return nil
	}

	//nolint:forcetypeassert // we can safely assume that this is an IssuerFeature
	return b.(*IssuerFeature)
}

// Metadata returns the MetadataFeature in the set or nil.
func (f FeatureSet) Metadata() *MetadataFeature {
	b, has := f[FeatureMetadata]
	if !has {
		return nil
	}

	//nolint:forcetypeassert // we can safely assume that this is a MetadataFeature
	return b.(*MetadataFeature)
}

// StateMetadata returns the StateMetadataFeature in the set or nil.
func (f FeatureSet) StateMetadata() *StateMetadataFeature {
	b, has := f[FeatureStateMetadata]
	if !has {
		return nil
	}

	//nolint:forcetypeassert // we can safely assume that this is a StateMetadataFeature
	return b.(*StateMetadataFeature)
}

// Tag returns the TagFeature in the set or nil.
func (f FeatureSet) Tag() *TagFeature {
	b, has := f[FeatureTag]
	if !has {
		return nil
	}

	//nolint:forcetypeassert // we can safely assume that this is a TagFeature
	return b.(*TagFeature)
}

// FeatureUnchanged checks whether the specified Feature type is unchanged between in and out.
func FeatureUnchanged(featType FeatureType, inFeatSet FeatureSet, outFeatSet FeatureSet) error {
	in, inHas := inFeatSet[featType]
	out, outHas := outFeatSet[featType]

	switch {
	case outHas && !inHas:
		return ierrors.Wrapf(ErrInvalidFeatureTransition, "%s in next state but not in previous", featType)
	case !outHas && inHas:
		return ierrors.Wrapf(ErrInvalidFeatureTransition, "%s in current state but not in next", featType)
	}

	if in == nil {
		return nil
	}

	if !in.Equal(out) {
		return ierrors.Wrapf(ErrInvalidFeatureTransition, "%s changed, in %v / out %v", featType, in, out)
	}

	return nil
}

// SenderFeature associates an output with a sender identity, which must be
// unlocked by the transaction consuming it (spec.md §4.5).
type SenderFeature struct {
	Address Address
}

func (s *SenderFeature) Type() FeatureType { return FeatureSender }

func (s *SenderFeature) Clone() Feature { return &SenderFeature{Address: s.Address} }

func (s *SenderFeature) Equal(other Feature) bool {
	o, is := other.(*SenderFeature)

	return is && s.Address.Equal(o.Address)
}

func (s *SenderFeature) Compare(other Feature) int {
	return int(s.Type()) - int(other.Type())
}

// IssuerFeature associates a newly-minted Alias/NFT output with the identity
// that minted it. Immutable across the chain's lifetime.
type IssuerFeature struct {
	Address Address
}

func (s *IssuerFeature) Type() FeatureType { return FeatureIssuer }

func (s *IssuerFeature) Clone() Feature { return &IssuerFeature{Address: s.Address} }

func (s *IssuerFeature) Equal(other Feature) bool {
	o, is := other.(*IssuerFeature)

	return is && s.Address.Equal(o.Address)
}

func (s *IssuerFeature) Compare(other Feature) int {
	return int(s.Type()) - int(other.Type())
}

// MetadataFeature is an arbitrary byte payload attached to an output.
type MetadataFeature struct {
	Data []byte
}

func (s *MetadataFeature) Type() FeatureType { return FeatureMetadata }

func (s *MetadataFeature) Clone() Feature {
	return &MetadataFeature{Data: append([]byte(nil), s.Data...)}
}

func (s *MetadataFeature) Equal(other Feature) bool {
	o, is := other.(*MetadataFeature)

	return is && bytes.Equal(s.Data, o.Data)
}

func (s *MetadataFeature) Compare(other Feature) int {
	return int(s.Type()) - int(other.Type())
}

// StateMetadataFeature carries an Alias output's state-machine payload.
// It may only change on a state transition, never on a governance transition.
type StateMetadataFeature struct {
	Data []byte
}

func (s *StateMetadataFeature) Type() FeatureType { return FeatureStateMetadata }

func (s *StateMetadataFeature) Clone() Feature {
	return &StateMetadataFeature{Data: append([]byte(nil), s.Data...)}
}

func (s *StateMetadataFeature) Equal(other Feature) bool {
	o, is := other.(*StateMetadataFeature)

	return is && bytes.Equal(s.Data, o.Data)
}

func (s *StateMetadataFeature) Compare(other Feature) int {
	return int(s.Type()) - int(other.Type())
}

// TagFeature is a feature which allows an output to be additionally tagged by a user defined value.
type TagFeature struct {
	Tag []byte
}

func (s *TagFeature) Type() FeatureType { return FeatureTag }

func (s *TagFeature) Clone() Feature {
	return &TagFeature{Tag: append([]byte(nil), s.Tag...)}
}

func (s *TagFeature) Equal(other Feature) bool {
	o, is := other.(*TagFeature)

	return is && bytes.Equal(s.Tag, o.Tag)
}

func (s *TagFeature) Compare(other Feature) int {
	return int(s.Type()) - int(other.Type())
}

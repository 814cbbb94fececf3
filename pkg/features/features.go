// Package features holds the example data model shared by all problem
// generators: an Example is a mapping from feature name to a list of
// homogeneous scalar values.
//
// Examples are serialized to the tf.train.Example wire format (see
// marshal.go), so datasets written by this tool can be consumed by
// TensorFlow input pipelines as TFRecord files.
package features

// Feature is one feature value list of an Example.
//
// Exactly three kinds exist: Ints, Floats and Bytes.
// Homogeneity of a value list is guaranteed by construction.
type Feature interface {
	isFeature()
}

// Ints is an all-integer feature value list.
type Ints []int64

// Floats is an all-float feature value list.
type Floats []float32

// Bytes is a feature value list of byte strings.
type Bytes [][]byte

func (Ints) isFeature()   {}
func (Floats) isFeature() {}
func (Bytes) isFeature()  {}

// Strings builds a Bytes feature from texts.
func Strings(texts ...string) Bytes {
	b := make(Bytes, len(texts))
	for i, t := range texts {
		b[i] = []byte(t)
	}
	return b
}

// Example is one training/evaluation instance.
//
// Each generator defines its own feature set. No cross-example schema is
// enforced by this layer; downstream consumers assume consistency within
// a problem.
type Example map[string]Feature

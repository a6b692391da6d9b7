package tdigest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const encodingVersion int32 = 1

// AsBytes serializes the digest: a version header, delta, and the
// ordered (mean, weight) sequence, all big-endian. Means and weights
// are written as full float64s so the round trip is bit-exact; weights
// are fractional after partial merges, so no varint packing applies.
func (t *TDigest) AsBytes() ([]byte, error) {
	buffer := new(bytes.Buffer)

	err := binary.Write(buffer, binary.BigEndian, encodingVersion)
	if err != nil {
		return nil, err
	}
	if err = binary.Write(buffer, binary.BigEndian, t.delta); err != nil {
		return nil, err
	}
	// count is stored rather than recomputed on read: the compactor's
	// rounding step can leave it different from the exact weight sum.
	if err = binary.Write(buffer, binary.BigEndian, t.count); err != nil {
		return nil, err
	}
	if err = binary.Write(buffer, binary.BigEndian, int32(t.summary.Len())); err != nil {
		return nil, err
	}

	t.summary.ForEach(func(mean, weight float64) bool {
		err = binary.Write(buffer, binary.BigEndian, mean)
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	t.summary.ForEach(func(mean, weight float64) bool {
		err = binary.Write(buffer, binary.BigEndian, weight)
		return err == nil
	})
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// FromBytes reads a digest serialized with AsBytes. The centroid
// sequence is restored verbatim, so the round trip is exact. Extra
// options (an RNG, typically) are applied on top of the serialized
// delta.
func FromBytes(buf *bytes.Reader, options ...Option) (*TDigest, error) {
	var version int32
	if err := binary.Read(buf, binary.BigEndian, &version); err != nil {
		return nil, err
	}
	if version != encodingVersion {
		return nil, fmt.Errorf("unsupported encoding version: %d", version)
	}

	var delta float64
	if err := binary.Read(buf, binary.BigEndian, &delta); err != nil {
		return nil, err
	}

	var count float64
	if err := binary.Read(buf, binary.BigEndian, &count); err != nil {
		return nil, err
	}

	var numCentroids int32
	if err := binary.Read(buf, binary.BigEndian, &numCentroids); err != nil {
		return nil, err
	}
	if numCentroids < 0 {
		return nil, errors.New("malformed serialization: negative centroid count")
	}

	t, err := New(append([]Option{Delta(delta)}, options...)...)
	if err != nil {
		return nil, err
	}

	means := make([]float64, numCentroids)
	for i := int32(0); i < numCentroids; i++ {
		var mean float64
		if err := binary.Read(buf, binary.BigEndian, &mean); err != nil {
			return nil, err
		}
		if i > 0 && mean < means[i-1] {
			return nil, errors.New("malformed serialization: means not sorted")
		}
		means[i] = mean
	}

	for i := int32(0); i < numCentroids; i++ {
		var w float64
		if err := binary.Read(buf, binary.BigEndian, &w); err != nil {
			return nil, err
		}
		if w <= 0 {
			return nil, errors.New("malformed serialization: non-positive weight")
		}
		t.summary.insertAt(t.summary.Len(), means[i], w)
	}
	t.count = count

	return t, nil
}

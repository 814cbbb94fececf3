package tfrecord_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshay120860/tensor2tensor/pkg/tfrecord"
)

func TestWriteRecord_Framing(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	w := tfrecord.NewWriter(buf)

	payload := []byte("0123456789")
	require.NoError(t, w.WriteRecord(payload))

	raw := buf.Bytes()
	require.Len(t, raw, 8+4+len(payload)+4, "frame is length + length crc + payload + payload crc")

	assert.Equal(t, uint64(len(payload)), binary.LittleEndian.Uint64(raw[0:8]))
	assert.Equal(t, payload, raw[12:12+len(payload)])
}

func TestRoundTrip(t *testing.T) {
	records := [][]byte{
		[]byte("first"),
		{},
		[]byte("third record, somewhat longer than the others"),
		{0x00, 0xFF, 0x10},
	}

	buf := bytes.NewBuffer(nil)
	w := tfrecord.NewWriter(buf)
	for _, rec := range records {
		require.NoError(t, w.WriteRecord(rec))
	}

	got, err := tfrecord.ReadAll(buf)
	require.NoError(t, err)

	require.Len(t, got, len(records))
	for i := range records {
		assert.Equal(t, records[i], got[i], "record %d", i)
	}
}

func TestReader_EmptyStream(t *testing.T) {
	r := tfrecord.NewReader(bytes.NewReader(nil))
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_TruncatedStream(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	w := tfrecord.NewWriter(buf)
	require.NoError(t, w.WriteRecord([]byte("some record")))

	raw := buf.Bytes()

	t.Run("cut inside the header", func(t *testing.T) {
		r := tfrecord.NewReader(bytes.NewReader(raw[:6]))
		_, err := r.Next()
		assert.Equal(t, io.ErrUnexpectedEOF, err)
	})

	t.Run("cut inside the payload", func(t *testing.T) {
		r := tfrecord.NewReader(bytes.NewReader(raw[:len(raw)-8]))
		_, err := r.Next()
		assert.Equal(t, io.ErrUnexpectedEOF, err)
	})
}

func TestReader_Corruption(t *testing.T) {
	build := func() []byte {
		buf := bytes.NewBuffer(nil)
		w := tfrecord.NewWriter(buf)
		require.NoError(t, w.WriteRecord([]byte("precious bytes")))
		return buf.Bytes()
	}

	t.Run("flipped byte in length crc", func(t *testing.T) {
		raw := build()
		raw[9] ^= 0x01

		_, err := tfrecord.NewReader(bytes.NewReader(raw)).Next()
		assert.ErrorContains(t, err, "length crc mismatch")
	})

	t.Run("flipped byte in payload", func(t *testing.T) {
		raw := build()
		raw[13] ^= 0x01

		_, err := tfrecord.NewReader(bytes.NewReader(raw)).Next()
		assert.ErrorContains(t, err, "payload crc mismatch")
	})
}

// Package tfrecord reads and writes the TFRecord framing format.
//
// Each record is framed as
//
//	uint64 length (little endian)
//	uint32 masked crc32c of the length bytes
//	payload bytes
//	uint32 masked crc32c of the payload
//
// The payload is opaque to this package.
package tfrecord

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// mask delta, from the TFRecord format definition.
const maskDelta = 0xa282ead8

func maskedCRC(data []byte) uint32 {
	crc := crc32.Checksum(data, castagnoli)
	return ((crc >> 15) | (crc << 17)) + maskDelta
}

// Writer frames records onto an io.Writer.
//
// Writer does not buffer. Wrap the destination in a bufio.Writer when
// writing many small records, and flush that before closing.
type Writer struct {
	dest io.Writer
}

func NewWriter(dest io.Writer) *Writer {
	return &Writer{dest: dest}
}

// WriteRecord frames and writes one record.
func (w *Writer) WriteRecord(record []byte) error {
	var header [12]byte
	binary.LittleEndian.PutUint64(header[0:8], uint64(len(record)))
	binary.LittleEndian.PutUint32(header[8:12], maskedCRC(header[0:8]))

	if _, err := w.dest.Write(header[:]); err != nil {
		return err
	}
	if _, err := w.dest.Write(record); err != nil {
		return err
	}

	var footer [4]byte
	binary.LittleEndian.PutUint32(footer[:], maskedCRC(record))
	_, err := w.dest.Write(footer[:])
	return err
}

// Reader reads framed records from an io.Reader.
type Reader struct {
	source io.Reader
}

func NewReader(source io.Reader) *Reader {
	return &Reader{source: source}
}

// Next returns the next record.
//
// At the clean end of the stream it returns io.EOF. A stream cut mid-record
// is reported as io.ErrUnexpectedEOF, and a corrupted record as an error
// naming the broken checksum.
func (r *Reader) Next() ([]byte, error) {
	var header [12]byte
	if _, err := io.ReadFull(r.source, header[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	length := binary.LittleEndian.Uint64(header[0:8])
	lengthCRC := binary.LittleEndian.Uint32(header[8:12])
	if got := maskedCRC(header[0:8]); got != lengthCRC {
		return nil, fmt.Errorf("corrupted record: length crc mismatch (actual, expected) = (%08x, %08x)", got, lengthCRC)
	}

	body := make([]byte, length+4)
	if _, err := io.ReadFull(r.source, body); err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	record := body[:length]
	recordCRC := binary.LittleEndian.Uint32(body[length:])
	if got := maskedCRC(record); got != recordCRC {
		return nil, fmt.Errorf("corrupted record: payload crc mismatch (actual, expected) = (%08x, %08x)", got, recordCRC)
	}

	return record, nil
}

// ReadAll drains all remaining records.
func ReadAll(source io.Reader) ([][]byte, error) {
	reader := NewReader(source)

	records := [][]byte{}
	for {
		record, err := reader.Next()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

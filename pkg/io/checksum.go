package io

import (
	"crypto/md5"
	"hash"
	"io"
)

// MD5Reader passes reads through to its source while hashing every
// byte handed out, so the checksum of a stream can be taken while it
// is consumed.
type MD5Reader struct {
	source io.Reader
	hash   hash.Hash
}

func NewMD5Reader(source io.Reader) *MD5Reader {
	return &MD5Reader{source: source, hash: md5.New()}
}

func (r *MD5Reader) Read(p []byte) (int, error) {
	n, err := r.source.Read(p)
	if 0 < n {
		r.hash.Write(p[:n])
	}
	return n, err
}

// Sum is the MD5 checksum of everything read so far.
func (r *MD5Reader) Sum() []byte {
	return r.hash.Sum(nil)
}

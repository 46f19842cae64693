package server

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Session ids are ULIDs: 26 Crockford Base32 characters, a millisecond
// timestamp followed by randomness, so they sort by creation time.

var (
	idMu    sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func newSessionID(now time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()

	ts := uint64(now.UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	for i := 0; i < 6; i++ {
		b[i] = byte(ts >> (40 - 8*i))
	}
	// crypto/rand.Read cannot fail as of Go 1.24; it aborts the process
	// instead of returning an error.
	_, _ = rand.Read(b[6:])
	// Sequence in bytes 6-7 keeps ids unique within the same millisecond.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)
	return encodeULID(b)
}

// encodeULID writes the 128 bits as 26 five-bit groups, most significant first.
func encodeULID(b [16]byte) string {
	hi := binary.BigEndian.Uint64(b[:8])
	lo := binary.BigEndian.Uint64(b[8:])
	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = crockford[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

// Package strtable reads and writes the string table that accompanies
// encoded trees.
//
// Layout: an optional 7-byte "astdict" signature, the string count as an
// unsigned LEB128 varint, then each string terminated by a 0x00 byte. A 0x01
// byte escapes the byte that follows it, so strings may contain 0x00 and
// 0x01.
package strtable

import (
	"bufio"
	"encoding/binary"
	"io"

	"binastgen/internal/errors"
)

// Signature is the magic prefix of a standalone string table.
const Signature = "astdict"

const (
	terminator = 0x00
	escape     = 0x01
)

// ErrBadSignature is returned when a signature was expected but not found.
var ErrBadSignature = errors.New("bad string table signature")

// maxPrealloc caps the capacity reserved from an untrusted count.
const maxPrealloc = 1 << 16

// Read reads a string table from r. When checkSignature is set the table
// must start with Signature.
func Read(r io.Reader, checkSignature bool) ([]string, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		buffered := bufio.NewReader(r)
		br, r = buffered, buffered
	}

	if checkSignature {
		sig := make([]byte, len(Signature))
		if _, err := io.ReadFull(r, sig); err != nil {
			return nil, errors.Wrap(unexpectedEOF(err), "reading signature")
		}
		if string(sig) != Signature {
			return nil, errors.Wrapf(ErrBadSignature, "found %q", sig)
		}
	}

	count, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, errors.Wrap(unexpectedEOF(err), "reading string count")
	}

	strings := make([]string, 0, min(count, maxPrealloc))
	var buf []byte
	for i := uint64(0); i < count; i++ {
		buf = buf[:0]
		for {
			c, err := br.ReadByte()
			if err != nil {
				return nil, errors.Wrapf(unexpectedEOF(err), "reading string %d of %d", i, count)
			}
			if c == terminator {
				break
			}
			if c == escape {
				if c, err = br.ReadByte(); err != nil {
					return nil, errors.Wrapf(unexpectedEOF(err), "reading string %d of %d", i, count)
				}
			}
			buf = append(buf, c)
		}
		strings = append(strings, string(buf))
	}
	return strings, nil
}

// Write writes strings to w in the format Read accepts.
func Write(w io.Writer, strings []string, withSignature bool) error {
	bw := bufio.NewWriter(w)

	if withSignature {
		if _, err := bw.WriteString(Signature); err != nil {
			return err
		}
	}

	var count [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(count[:], uint64(len(strings)))
	if _, err := bw.Write(count[:n]); err != nil {
		return err
	}

	for _, s := range strings {
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c == terminator || c == escape {
				if err := bw.WriteByte(escape); err != nil {
					return err
				}
			}
			if err := bw.WriteByte(c); err != nil {
				return err
			}
		}
		if err := bw.WriteByte(terminator); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

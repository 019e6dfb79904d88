// Copyright © 2024 rsatoy contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package blockcipher segments a payload into PKCS#1 v1.5-style padded
// blocks, encrypts them under a public key, and reverses the process
// under a private key — optionally through the CRT fast path. This is
// the component that actually moves bytes; bigintops, primality,
// primegen and rsakey exist to hand it trustworthy keys.
package blockcipher

import (
	"errors"
	"io"
	"math/big"

	"github.com/cryptolab/rsatoy/crypto/bigintops"
	"github.com/cryptolab/rsatoy/crypto/randutil"
	"github.com/cryptolab/rsatoy/crypto/rsakey"
)

var (
	// ErrMessageOutOfRange is returned when a block's integer encoding
	// is not smaller than the modulus.
	ErrMessageOutOfRange = errors.New("blockcipher: message integer out of range")
	// ErrMalformedCiphertext is returned when the ciphertext length is
	// not a multiple of the block width k. An empty ciphertext is not an
	// error: it decrypts to an empty plaintext.
	ErrMalformedCiphertext = errors.New("blockcipher: ciphertext length is not a multiple of the block width")
	// ErrPaddingError is returned (in strict mode, fatally; in lenient
	// mode, per-block and recorded as a BlockWarning) when a decrypted
	// block's PKCS#1 v1.5 envelope cannot be parsed.
	ErrPaddingError = errors.New("blockcipher: padding could not be parsed")
	// ErrMissingKey is returned when decryption is requested with no
	// usable private key material.
	ErrMissingKey = errors.New("blockcipher: no private key supplied")
)

// minPaddingOverhead is the 0x00 0x02 prefix, the 0x00 separator, and a
// PS of at least eight bytes: k - 11 is the largest payload segment a
// k-byte block can carry.
const minPaddingOverhead = 11

// blockWidth returns k = ceil(bitlen(n)/8), the byte width every block
// is encoded to, and the largest plaintext segment each block can
// carry.
func blockWidth(n *big.Int) (k, maxPayload int) {
	k = (n.BitLen() + 7) / 8
	return k, k - minPaddingOverhead
}

// BlockWarning records a single block that failed to decrypt cleanly in
// lenient mode; DecryptPayload returns it to the caller and omits the
// block's data rather than failing the whole payload.
type BlockWarning struct {
	// Index is the zero-based position of the offending block.
	Index int
	// Err is always ErrPaddingError; arithmetic errors are fatal and are
	// never recorded as warnings.
	Err error
}

// DecryptOptions controls the per-block error policy spec.md §7
// describes: lenient (the default, zero value) records a BlockWarning
// for a malformed block and skips it; Strict promotes the first
// PaddingError to fatal.
type DecryptOptions struct {
	Strict bool
}

// EncryptPayload segments payload into max_payload-sized chunks, pads
// each to a full block, encrypts it under pub, and concatenates the
// k-byte encodings in order. An empty payload produces an empty
// ciphertext (spec.md §9's open question on zero-length input,
// resolved in SPEC_FULL.md §4.5).
func EncryptPayload(random io.Reader, payload []byte, pub *rsakey.PublicKey) ([]byte, error) {
	k, maxPayload := blockWidth(pub.N)
	if len(payload) == 0 {
		return []byte{}, nil
	}

	numBlocks := (len(payload) + maxPayload - 1) / maxPayload
	ciphertext := make([]byte, 0, numBlocks*k)

	for start := 0; start < len(payload); start += maxPayload {
		end := start + maxPayload
		if end > len(payload) {
			end = len(payload)
		}
		segment := payload[start:end]

		block, err := padSegment(random, segment, k)
		if err != nil {
			return nil, err
		}

		mInt := new(big.Int).SetBytes(block)
		if mInt.Cmp(pub.N) >= 0 {
			return nil, ErrMessageOutOfRange
		}

		cInt, err := bigintops.ModPow(mInt, pub.E, pub.N)
		if err != nil {
			return nil, err
		}

		ciphertext = append(ciphertext, leftPad(cInt.Bytes(), k)...)
	}

	return ciphertext, nil
}

// padSegment builds the k-byte EM = 0x00 0x02 PS 0x00 DATA envelope for
// a single plaintext segment.
func padSegment(random io.Reader, segment []byte, k int) ([]byte, error) {
	m := len(segment)
	psLen := k - 3 - m

	ps, err := randutil.NonZeroBytes(random, psLen)
	if err != nil {
		return nil, err
	}

	em := make([]byte, 0, k)
	em = append(em, 0x00, 0x02)
	em = append(em, ps...)
	em = append(em, 0x00)
	em = append(em, segment...)
	return em, nil
}

// DecryptPayload splits ciphertext into k-byte blocks (k taken from
// priv.N), decrypts each — via the CRT fast path when priv carries P
// and Q, otherwise the standard path — strips padding, and
// concatenates the recovered segments. Lenient mode (the default)
// returns the BlockWarnings for any block it had to skip; strict mode
// returns the first such warning's error instead.
func DecryptPayload(ciphertext []byte, priv *rsakey.PrivateKey, opts DecryptOptions) ([]byte, []BlockWarning, error) {
	if priv == nil {
		return nil, nil, ErrMissingKey
	}

	k, _ := blockWidth(priv.N)
	if len(ciphertext) == 0 {
		return []byte{}, nil, nil
	}
	if len(ciphertext)%k != 0 {
		return nil, nil, ErrMalformedCiphertext
	}

	numBlocks := len(ciphertext) / k
	plaintext := make([]byte, 0, numBlocks*k)
	var warnings []BlockWarning

	for i := 0; i < numBlocks; i++ {
		block := ciphertext[i*k : (i+1)*k]
		cInt := new(big.Int).SetBytes(block)

		mInt, err := decryptBlock(cInt, priv)
		if err != nil {
			return nil, nil, err
		}

		em := leftPad(mInt.Bytes(), k)
		data, err := unpad(em)
		if err != nil {
			if opts.Strict {
				return nil, nil, ErrPaddingError
			}
			warnings = append(warnings, BlockWarning{Index: i, Err: ErrPaddingError})
			continue
		}
		plaintext = append(plaintext, data...)
	}

	return plaintext, warnings, nil
}

// decryptBlock applies the standard or CRT private-key operation,
// dispatching on whether priv carries its factors. See
// crt_decrypt.go for the CRT path itself.
func decryptBlock(cInt *big.Int, priv *rsakey.PrivateKey) (*big.Int, error) {
	if priv.HasCRT() {
		return crtDecrypt(cInt, priv)
	}
	return bigintops.ModPow(cInt, priv.D, priv.N)
}

// unpad parses a k-byte re-padded block's PKCS#1 v1.5 envelope. The
// caller is expected to have already re-encoded the decrypted integer
// to exactly k bytes with leftPad, so the envelope always begins with
// the canonical 0x00 0x02 — spec.md §9's leading-zero tolerance
// ambiguity never arises here.
func unpad(em []byte) ([]byte, error) {
	if len(em) < minPaddingOverhead || em[0] != 0x00 || em[1] != 0x02 {
		return nil, ErrPaddingError
	}
	for i := 2; i < len(em); i++ {
		if em[i] == 0x00 {
			return em[i+1:], nil
		}
	}
	return nil, ErrPaddingError
}

// leftPad copies src into a newly-allocated dest of length n, padding
// with leading zero bytes. When src is already n bytes or longer it
// returns the last n bytes of src itself, without copying. Grounded on monnand-rsa/utils.go's
// copyWithLeftPad, which exists for the exact same reason: big.Int.Bytes
// drops leading zero bytes, and callers that need a fixed-width
// encoding have to put them back.
func leftPad(src []byte, n int) []byte {
	if len(src) >= n {
		return src[len(src)-n:]
	}
	dest := make([]byte, n)
	copy(dest[n-len(src):], src)
	return dest
}

// Package signing recovers Ethereum addresses from ECDSA signatures over
// prefixed keccak256 message hashes.
package signing

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	// MaxV is the highest recovery id accepted on the wire.
	MaxV = 30

	legacyVOffset = 27
)

var (
	ErrInvalidV         = errors.New("signature v out of range")
	ErrInvalidRS        = errors.New("signature r/s out of range")
	ErrZeroAddress      = errors.New("signature recovers the zero address")
	ErrMalformedInteger = errors.New("malformed signature integer")
)

// Signature is the (v, r, s) triple sent by clients.
type Signature struct {
	V int      `json:"v"`
	R *big.Int `json:"r"`
	S *big.Int `json:"s"`
}

type signatureJSON struct {
	V json.Number `json:"v"`
	R json.Number `json:"r"`
	S json.Number `json:"s"`
}

// UnmarshalJSON accepts r and s either as JSON numbers of arbitrary size or
// as decimal strings.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var raw signatureJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := raw.V.Int64()
	if err != nil {
		return errors.Wrap(ErrMalformedInteger, "v")
	}
	r, ok := new(big.Int).SetString(raw.R.String(), 10)
	if !ok {
		return errors.Wrap(ErrMalformedInteger, "r")
	}
	sv, ok := new(big.Int).SetString(raw.S.String(), 10)
	if !ok {
		return errors.Wrap(ErrMalformedInteger, "s")
	}
	s.V, s.R, s.S = int(v), r, sv
	return nil
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"v":%d,"r":%s,"s":%s}`, s.V, intString(s.R), intString(s.S))), nil
}

func intString(i *big.Int) string {
	if i == nil {
		return "0"
	}
	return i.String()
}

// Hash returns keccak256(prefix || message).
func Hash(message, prefix string) []byte {
	return crypto.Keccak256([]byte(prefix), []byte(message))
}

// Recover returns the EIP-55 address that produced sig over message. It never
// returns the zero address together with a nil error.
func Recover(message string, sig Signature, prefix string) (common.Address, error) {
	raw, err := sig.bytes()
	if err != nil {
		return common.Address{}, err
	}
	pub, err := crypto.SigToPub(Hash(message, prefix), raw)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "signing.Recover.SigToPub")
	}
	addr := crypto.PubkeyToAddress(*pub)
	if addr == (common.Address{}) {
		return common.Address{}, ErrZeroAddress
	}
	return addr, nil
}

// Sign produces a signature over message with v in the 27/28 form.
func Sign(message string, key *ecdsa.PrivateKey, prefix string) (Signature, error) {
	raw, err := crypto.Sign(Hash(message, prefix), key)
	if err != nil {
		return Signature{}, errors.Wrap(err, "signing.Sign")
	}
	return Signature{
		V: int(raw[64]) + legacyVOffset,
		R: new(big.Int).SetBytes(raw[:32]),
		S: new(big.Int).SetBytes(raw[32:64]),
	}, nil
}

// bytes renders the signature in the 65 byte [R || S || V] layout expected by
// secp256k1 recovery, with V normalised to 0/1.
func (s Signature) bytes() ([]byte, error) {
	if s.V < 0 || s.V > MaxV {
		return nil, ErrInvalidV
	}
	v := s.V
	if v >= legacyVOffset {
		v -= legacyVOffset
	}
	if v > 1 {
		return nil, ErrInvalidV
	}
	if s.R == nil || s.S == nil || s.R.BitLen() > 256 || s.S.BitLen() > 256 {
		return nil, ErrInvalidRS
	}
	if !crypto.ValidateSignatureValues(byte(v), s.R, s.S, false) {
		return nil, ErrInvalidRS
	}
	out := make([]byte, crypto.SignatureLength)
	s.R.FillBytes(out[:32])
	s.S.FillBytes(out[32:64])
	out[64] = byte(v)
	return out, nil
}

// IsChecksumAddress reports whether addr is a hex address in EIP-55 casing.
func IsChecksumAddress(addr string) bool {
	if !common.IsHexAddress(addr) || !strings.HasPrefix(addr, "0x") {
		return false
	}
	return common.HexToAddress(addr).Hex() == addr
}

// AddressOf returns the checksummed address controlled by key.
func AddressOf(key *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(key.PublicKey).Hex()
}

// Codec built atop ReadMessage/WriteMessage: each framed message carries one
// Type-Length-Value record. The Type byte names a small, protocol-defined
// wire shape (a byte string, a bit array, an fhe.Ciphertext array, or an FHE
// key) rather than any Go type descriptor, so a non-Go implementation only
// needs this four-entry enum -- not gob's self-describing type stream -- to
// decode a message off the network, the same structural, sequential layout
// original_source's bincode::serialize gives prot_utils.rs's messages.
package wire

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
	"reflect"

	"github.com/summitto/fdexchange/fhe"
)

// tlvType tags the wire shape of a TLV record's payload.
type tlvType byte

const (
	typeBytes      tlvType = 1 // a raw byte string: string, []byte, [N]byte, or a single byte-sized value
	typeBits       tlvType = 2 // a bool slice/array, one byte per bit (0x00/0x01)
	typeCiphertext tlvType = 3 // a 4-byte count followed by that many fhe.Ciphertext encodings
	typeKey        tlvType = 4 // a 32-byte FHE key seed (fhe.ClientKey or fhe.ServerKey)
)

var (
	ciphertextType = reflect.TypeOf(fhe.Ciphertext{})
	boolType       = reflect.TypeOf(false)
	byteType       = reflect.TypeOf(byte(0))
	clientKeyType  = reflect.TypeOf(fhe.ClientKey{})
	serverKeyType  = reflect.TypeOf(fhe.ServerKey{})
)

// Send encodes v as one TLV record and writes it as a framed message. v must
// be one of the shapes this protocol exchanges: a string, a byte-sized value
// (such as common.Status), a byte slice/array, a bool slice/array, an
// fhe.Ciphertext slice/array, or an fhe.ClientKey/ServerKey.
func Send(w io.Writer, v any) error {
	typ, payload, err := marshalValue(reflect.ValueOf(v))
	if err != nil {
		return fmt.Errorf("wire: encoding message: %w", err)
	}
	framed := make([]byte, 1+len(payload))
	framed[0] = byte(typ)
	copy(framed[1:], payload)
	return WriteMessage(w, framed)
}

// Receive reads one framed message and decodes its TLV payload into v, which
// must be a non-nil pointer to one of the shapes Send accepts.
func Receive(r io.Reader, v any) error {
	raw, err := ReadMessage(r)
	if err != nil {
		return err
	}
	if len(raw) < 1 {
		return fmt.Errorf("wire: empty TLV record")
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("wire: Receive destination must be a non-nil pointer, got %T", v)
	}
	if err := unmarshalValue(tlvType(raw[0]), raw[1:], rv.Elem()); err != nil {
		return fmt.Errorf("wire: decoding message: %w", err)
	}
	return nil
}

func marshalValue(rv reflect.Value) (tlvType, []byte, error) {
	switch rv.Type() {
	case clientKeyType, serverKeyType:
		m := rv.Interface().(encoding.BinaryMarshaler)
		data, err := m.MarshalBinary()
		if err != nil {
			return 0, nil, err
		}
		return typeKey, data, nil
	}

	switch rv.Kind() {
	case reflect.String:
		return typeBytes, []byte(rv.String()), nil
	case reflect.Uint8:
		return typeBytes, []byte{byte(rv.Uint())}, nil
	case reflect.Slice, reflect.Array:
		switch rv.Type().Elem() {
		case ciphertextType:
			return marshalCiphertexts(rv)
		case boolType:
			return marshalBits(rv)
		case byteType:
			return marshalRawBytes(rv)
		}
	}
	return 0, nil, fmt.Errorf("unsupported value type %s", rv.Type())
}

func marshalRawBytes(rv reflect.Value) (tlvType, []byte, error) {
	out := make([]byte, rv.Len())
	reflect.Copy(reflect.ValueOf(out), rv)
	return typeBytes, out, nil
}

func marshalBits(rv reflect.Value) (tlvType, []byte, error) {
	bits := make([]bool, rv.Len())
	reflect.Copy(reflect.ValueOf(bits), rv)
	out := make([]byte, len(bits))
	for i, b := range bits {
		if b {
			out[i] = 1
		}
	}
	return typeBits, out, nil
}

func marshalCiphertexts(rv reflect.Value) (tlvType, []byte, error) {
	n := rv.Len()
	cts := make([]fhe.Ciphertext, n)
	reflect.Copy(reflect.ValueOf(cts), rv)

	out := make([]byte, 4, 4+n*fhe.CiphertextEncodedLen)
	binary.BigEndian.PutUint32(out, uint32(n))
	for _, ct := range cts {
		enc, err := ct.MarshalBinary()
		if err != nil {
			return 0, nil, err
		}
		out = append(out, enc...)
	}
	return typeCiphertext, out, nil
}

func unmarshalValue(typ tlvType, payload []byte, rv reflect.Value) error {
	if typ == typeKey {
		if rv.Type() != clientKeyType && rv.Type() != serverKeyType {
			return fmt.Errorf("cannot decode a key into %s", rv.Type())
		}
		u := rv.Addr().Interface().(encoding.BinaryUnmarshaler)
		return u.UnmarshalBinary(payload)
	}

	switch typ {
	case typeBytes:
		return unmarshalBytes(payload, rv)
	case typeBits:
		return unmarshalBits(payload, rv)
	case typeCiphertext:
		return unmarshalCiphertexts(payload, rv)
	default:
		return fmt.Errorf("unknown TLV type %d", typ)
	}
}

func unmarshalBytes(payload []byte, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(string(payload))
		return nil
	case reflect.Uint8:
		if len(payload) != 1 {
			return fmt.Errorf("expected a single byte, got %d", len(payload))
		}
		rv.SetUint(uint64(payload[0]))
		return nil
	case reflect.Slice:
		if rv.Type().Elem() != byteType {
			break
		}
		out := make([]byte, len(payload))
		copy(out, payload)
		rv.Set(reflect.ValueOf(out))
		return nil
	case reflect.Array:
		if rv.Type().Elem() != byteType {
			break
		}
		if rv.Len() != len(payload) {
			return fmt.Errorf("expected %d bytes, got %d", rv.Len(), len(payload))
		}
		reflect.Copy(rv, reflect.ValueOf(payload))
		return nil
	}
	return fmt.Errorf("cannot decode a byte string into %s", rv.Type())
}

func unmarshalBits(payload []byte, rv reflect.Value) error {
	bits := make([]bool, len(payload))
	for i, b := range payload {
		bits[i] = b != 0
	}
	switch rv.Kind() {
	case reflect.Slice:
		rv.Set(reflect.ValueOf(bits))
		return nil
	case reflect.Array:
		if rv.Len() != len(bits) {
			return fmt.Errorf("expected %d bits, got %d", rv.Len(), len(bits))
		}
		reflect.Copy(rv, reflect.ValueOf(bits))
		return nil
	}
	return fmt.Errorf("cannot decode a bit array into %s", rv.Type())
}

func unmarshalCiphertexts(payload []byte, rv reflect.Value) error {
	if len(payload) < 4 {
		return fmt.Errorf("truncated ciphertext count")
	}
	n := int(binary.BigEndian.Uint32(payload[:4]))
	body := payload[4:]
	if len(body) != n*fhe.CiphertextEncodedLen {
		return fmt.Errorf("ciphertext payload length mismatch: want %d, got %d", n*fhe.CiphertextEncodedLen, len(body))
	}

	cts := make([]fhe.Ciphertext, n)
	for i := range cts {
		start := i * fhe.CiphertextEncodedLen
		if err := cts[i].UnmarshalBinary(body[start : start+fhe.CiphertextEncodedLen]); err != nil {
			return err
		}
	}

	switch rv.Kind() {
	case reflect.Slice:
		rv.Set(reflect.ValueOf(cts))
		return nil
	case reflect.Array:
		if rv.Len() != n {
			return fmt.Errorf("expected %d ciphertexts, got %d", rv.Len(), n)
		}
		reflect.Copy(rv, reflect.ValueOf(cts))
		return nil
	}
	return fmt.Errorf("cannot decode a ciphertext array into %s", rv.Type())
}

package replay

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/vovakirdan/gridbreak/internal/games/breakout"
)

// Command envelope fields.
const (
	fieldCommands protowire.Number = 1 // packed varint
	fieldCount    protowire.Number = 2 // varint
)

// EncodeCommands packs commands into a protobuf-wire envelope.
func EncodeCommands(cmds []breakout.Command) []byte {
	var packed []byte
	for _, c := range cmds {
		packed = protowire.AppendVarint(packed, uint64(c)) //#nosec G115 -- commands are small non-negative values
	}

	var b []byte
	b = protowire.AppendTag(b, fieldCommands, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	b = protowire.AppendTag(b, fieldCount, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(len(cmds)))
	return b
}

// DecodeCommands unpacks an envelope built by EncodeCommands.
// Unknown fields are skipped.
func DecodeCommands(b []byte) ([]breakout.Command, error) {
	var (
		cmds     []breakout.Command
		count    uint64
		hasCount bool
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldCommands && typ == protowire.BytesType:
			packed, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(m))
			}
			b = b[m:]
			for len(packed) > 0 {
				v, k := protowire.ConsumeVarint(packed)
				if k < 0 {
					return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(k))
				}
				packed = packed[k:]
				if v > uint64(breakout.CommandQuit) {
					return nil, fmt.Errorf("%w: unknown command %d", ErrMalformed, v)
				}
				cmds = append(cmds, breakout.Command(v))
			}
		case num == fieldCount && typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(m))
			}
			b = b[m:]
			count, hasCount = v, true
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(m))
			}
			b = b[m:]
		}
	}

	if !hasCount {
		return nil, fmt.Errorf("%w: missing command count", ErrMalformed)
	}
	if count != uint64(len(cmds)) {
		return nil, fmt.Errorf("%w: count %d, found %d commands", ErrMalformed, count, len(cmds))
	}
	return cmds, nil
}

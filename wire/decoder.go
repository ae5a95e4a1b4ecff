package wire

// Decode interprets blob as a tag/value field sequence without a schema.
// It never fails: malformed or truncated input degrades to a partially
// populated (possibly empty) Message, and every length-delimited payload that
// resists classification is preserved verbatim as an unparsed field.
func Decode(blob []byte) Message {
	fields, _ := decodeFields(blob)

	m := Message{
		Size:   len(blob),
		Fields: fields,
	}

	m.collectStrings()

	return m
}

// decodeFields walks blob as a sequence of tagged fields. clean reports that
// every byte was consumed without truncation and without meeting a reserved
// wire type; callers use it to decide whether a payload qualifies as a
// nested message. On a dirty exit the fields decoded so far are kept and the
// remainder of the buffer is discarded, which never inflates the field count
// through guesswork.
func decodeFields(blob []byte) (fields []Field, clean bool) {
	c := NewCursor(blob)

	for !c.AtEnd() {
		tag, err := c.Varint()
		if err != nil {
			return fields, false
		}

		number := tag >> 3
		wireType := WireType(tag & 0x7)

		switch wireType {
		case TypeVarint:
			value, err := c.Varint()
			if err != nil {
				return fields, false
			}
			fields = append(fields, Field{Number: number, Type: wireType, Kind: KindInteger, Uint: value})

		case TypeFixed64:
			value, err := c.Fixed64()
			if err != nil {
				return fields, false
			}
			fields = append(fields, Field{Number: number, Type: wireType, Kind: KindInteger, Uint: value})

		case TypeFixed32:
			value, err := c.Fixed32()
			if err != nil {
				return fields, false
			}
			fields = append(fields, Field{Number: number, Type: wireType, Kind: KindInteger, Uint: uint64(value)})

		case TypeBytes:
			length, err := c.Varint()
			if err != nil || length > uint64(c.Remaining()) {
				return fields, false
			}

			payload, err := c.Bytes(int(length))
			if err != nil {
				return fields, false
			}

			fields = append(fields, classifyPayload(number, payload))

		default:
			// Reserved group markers. There is no way to tell how far the
			// group extends without a schema, so stop and keep the prefix.
			return fields, false
		}
	}

	return fields, true
}

// classifyPayload decides what a length-delimited payload is. A well-formed
// sub-message wins over printable text: losing structure is the more costly
// mistake for downstream type extraction, a byte span that decodes cleanly as
// fields is treated as fields even when it happens to be printable ASCII.
func classifyPayload(number uint64, payload []byte) Field {
	field := Field{Number: number, Type: TypeBytes}

	if nested, clean := decodeFields(payload); clean && len(nested) > 0 {
		field.Kind = KindNested
		field.Nested = nested
		return field
	}

	if looksTextual(payload) {
		field.Kind = KindText
		field.Text = string(payload)
		return field
	}

	field.Kind = KindUnparsed
	field.Raw = payload
	return field
}

// collectStrings walks the field tree and registers every text payload, plus
// any identifier-shaped token inside one, in insertion order.
func (m *Message) collectStrings() {
	seenString := make(map[string]struct{})
	seenIdent := make(map[string]struct{})

	var walk func(fields []Field)
	walk = func(fields []Field) {
		for _, f := range fields {
			switch f.Kind {
			case KindText:
				if _, ok := seenString[f.Text]; !ok {
					seenString[f.Text] = struct{}{}
					m.Strings = append(m.Strings, f.Text)
				}

				for _, ident := range Identifiers(f.Text) {
					if _, ok := seenIdent[ident]; !ok {
						seenIdent[ident] = struct{}{}
						m.Identifiers = append(m.Identifiers, ident)
					}
				}

			case KindNested:
				walk(f.Nested)
			}
		}
	}

	walk(m.Fields)
}

package bwtc

// Decode inverts the wire format produced by Encode, returning the
// original text (including its trailing Sentinel). It halts without
// returning a partial string on any malformed input.
func Decode(data []byte) (text string, err error) {
	defer errRecover(&err)

	r := &bitReader{data: data}

	n := eliasDecode(r)
	u := eliasDecode(r)
	if n > 0 && u == 0 {
		panicf(MalformedHeader, "zero distinct characters declared for a non-empty input")
	}

	dec := newHuffmanDecoder()
	for i := 0; i < u; i++ {
		ch := byte(r.ReadBits(7))
		indexOf(ch) // validates the character is in range

		codeLen := eliasDecode(r)
		if codeLen > r.Len() {
			panicf(MalformedHeader, "huffman code length %d exceeds remaining stream", codeLen)
		}
		code := r.ReadBitString(codeLen)
		if insErr := dec.Insert(code, ch); insErr != nil {
			panic(insErr)
		}
	}

	bwt := make([]byte, 0, n)
	remaining := n
	for remaining > 0 {
		if r.Len() == 0 {
			panicf(LengthUnderflow, "stream ended before declared length was reached")
		}
		c := dec.Decode(r)
		k := eliasDecode(r)
		if k > remaining {
			panicf(LengthOverflow, "run of length %d exceeds %d remaining characters", k, remaining)
		}
		for j := 0; j < k; j++ {
			bwt = append(bwt, c)
		}
		remaining -= k
	}

	return inverseBWT(string(bwt)), nil
}

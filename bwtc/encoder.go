package bwtc

// Encode compresses text, which must be non-empty, drawn from
// [MinChar, MaxChar], and terminated by exactly one Sentinel, into the
// codec's self-describing bit-stream: Elias-coded length and dictionary
// size, a per-character Huffman dictionary in order of first appearance in
// the BWT, and a run-length-encoded, Huffman- and Elias-coded BWT body,
// zero-padded to a whole number of bytes.
func Encode(text string) (out []byte, err error) {
	defer errRecover(&err)

	bwt := forwardBWT(text)

	var freq [AlphabetSize]int
	var order []byte
	for i := 0; i < len(bwt); i++ {
		ci := indexOf(bwt[i])
		if freq[ci] == 0 {
			order = append(order, bwt[i])
		}
		freq[ci]++
	}

	huff := buildHuffman(freq)
	elias := newEliasMemo(len(text))

	var w bitWriter
	w.WriteString(elias.Encode(len(text)))
	w.WriteString(elias.Encode(len(order)))

	for _, c := range order {
		w.WriteBits(uint64(c), 7)
		code, encErr := huff.Encode(c)
		if encErr != nil {
			panic(encErr)
		}
		w.WriteString(elias.Encode(len(code)))
		w.WriteString(code)
	}

	for i := 0; i < len(bwt); {
		c := bwt[i]
		run := 1
		for i+run < len(bwt) && bwt[i+run] == c {
			run++
		}
		code, _ := huff.Encode(c) // every bwt character was counted above
		w.WriteString(code)
		w.WriteString(elias.Encode(run))
		i += run
	}

	w.PadToByte()
	return w.Bytes(), nil
}

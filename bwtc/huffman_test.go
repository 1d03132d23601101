package bwtc

import "testing"

func TestBuildHuffmanSingleSymbol(t *testing.T) {
	var freq [AlphabetSize]int
	freq[indexOf('a')] = 7

	enc := buildHuffman(freq)
	code, err := enc.Encode('a')
	if err != nil {
		t.Fatalf("Encode('a') returned error: %v", err)
	}
	if code != "0" {
		t.Errorf("single-symbol code = %q, want %q", code, "0")
	}
}

func TestBuildHuffmanUnknownSymbol(t *testing.T) {
	var freq [AlphabetSize]int
	freq[indexOf('a')] = 1

	enc := buildHuffman(freq)
	if _, err := enc.Encode('b'); err == nil {
		t.Fatal("expected an error encoding a character absent from the frequency table")
	} else if e, ok := err.(*Error); !ok || e.Kind != UnknownSymbol {
		t.Fatalf("got error %v, want UnknownSymbol", err)
	}
}

func TestBuildHuffmanPrefixFree(t *testing.T) {
	var freq [AlphabetSize]int
	freq[indexOf('a')] = 45
	freq[indexOf('b')] = 13
	freq[indexOf('c')] = 12
	freq[indexOf('d')] = 16
	freq[indexOf('e')] = 9
	freq[indexOf('f')] = 5

	enc := buildHuffman(freq)

	var codes []string
	for _, c := range []byte("abcdef") {
		code, err := enc.Encode(c)
		if err != nil {
			t.Fatalf("Encode(%q) returned error: %v", c, err)
		}
		if code == "" {
			t.Fatalf("Encode(%q) returned empty code", c)
		}
		codes = append(codes, code)
	}

	for i, ci := range codes {
		for j, cj := range codes {
			if i == j {
				continue
			}
			if len(ci) <= len(cj) && cj[:len(ci)] == ci {
				t.Errorf("code %q is a prefix of code %q", ci, cj)
			}
		}
	}

	// Rarer characters must not receive shorter codes than more frequent ones.
	shortA, _ := enc.Encode('a')
	shortF, _ := enc.Encode('f')
	if len(shortF) < len(shortA) {
		t.Errorf("least frequent character got a shorter code (%q) than the most frequent (%q)", shortF, shortA)
	}
}

func TestHuffmanDecoderRoundTrip(t *testing.T) {
	var freq [AlphabetSize]int
	for _, c := range []byte("mississippi") {
		freq[indexOf(c)]++
	}
	enc := buildHuffman(freq)

	dec := newHuffmanDecoder()
	for _, c := range []byte("misp") {
		code, err := enc.Encode(c)
		if err != nil {
			t.Fatalf("Encode(%q) returned error: %v", c, err)
		}
		if err := dec.Insert(code, c); err != nil {
			t.Fatalf("Insert(%q, %q) returned error: %v", code, c, err)
		}
	}

	var w bitWriter
	for _, c := range []byte("mississippi") {
		code, _ := enc.Encode(c)
		w.WriteString(code)
	}
	w.PadToByte()

	r := &bitReader{data: w.Bytes()}
	for _, want := range []byte("mississippi") {
		if got := dec.Decode(r); got != want {
			t.Fatalf("Decode() = %q, want %q", got, want)
		}
	}
}

func TestHuffmanDecoderDuplicateCode(t *testing.T) {
	dec := newHuffmanDecoder()
	if err := dec.Insert("01", 'a'); err != nil {
		t.Fatalf("first Insert returned error: %v", err)
	}
	err := dec.Insert("01", 'b')
	if err == nil {
		t.Fatal("expected an error inserting a duplicate code")
	}
	if e, ok := err.(*Error); !ok || e.Kind != MalformedHeader {
		t.Fatalf("got error %v, want MalformedHeader", err)
	}
}

func TestHuffmanDecoderAmbiguousCode(t *testing.T) {
	dec := newHuffmanDecoder()
	if err := dec.Insert("10", 'a'); err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}

	var w bitWriter
	w.WriteString("11")
	r := &bitReader{data: w.Bytes()}

	defer func() {
		err, _ := recover().(error)
		if err == nil {
			t.Fatal("expected a panic decoding a bit sequence that matches no known code")
		}
		if e, ok := err.(*Error); !ok || e.Kind != AmbiguousCode {
			t.Fatalf("got error %v, want AmbiguousCode", err)
		}
	}()
	dec.Decode(r)
}

package bwtc

import "container/heap"

// huffNode is a node of the Huffman tree under construction. Leaves carry a
// character; internal nodes carry only the combined frequency of their two
// children.
type huffNode struct {
	freq      int
	char      byte
	isLeaf    bool
	left      *huffNode
	right     *huffNode
	order     int // insertion order, used to break frequency ties stably
}

// huffHeap is a min-heap of huffNode ordered by frequency, breaking ties by
// insertion order so that repeated builds of the same frequency table are
// deterministic.
type huffHeap []*huffNode

func (h huffHeap) Len() int { return len(h) }
func (h huffHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq < h[j].freq
	}
	return h[i].order < h[j].order
}
func (h huffHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *huffHeap) Push(x any) { *h = append(*h, x.(*huffNode)) }

func (h *huffHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// huffmanEncoder holds, for every alphabet index that occurred, the bit
// string its character encodes to. An absent entry is the empty string.
type huffmanEncoder struct {
	encoding [AlphabetSize]string
}

// buildHuffman constructs a canonical-enough Huffman code from freq (one
// entry per alphabet index; zero means the character did not occur). A
// single distinct character is special-cased to the code "0", since the
// usual tree-walk would otherwise produce an empty (unusable) code for it.
func buildHuffman(freq [AlphabetSize]int) *huffmanEncoder {
	h := make(huffHeap, 0, AlphabetSize)
	order := 0
	for i, f := range freq {
		if f > 0 {
			h = append(h, &huffNode{freq: f, char: charOf(i), isLeaf: true, order: order})
			order++
		}
	}
	heap.Init(&h)

	enc := &huffmanEncoder{}
	if len(h) == 0 {
		return enc
	}
	if len(h) == 1 {
		enc.encoding[indexOf(h[0].char)] = "0"
		return enc
	}

	for h.Len() > 1 {
		a := heap.Pop(&h).(*huffNode)
		b := heap.Pop(&h).(*huffNode)
		heap.Push(&h, &huffNode{
			freq:  a.freq + b.freq,
			left:  a,
			right: b,
			order: order,
		})
		order++
	}

	var walk func(n *huffNode, bits string)
	walk = func(n *huffNode, bits string) {
		if n.isLeaf {
			enc.encoding[indexOf(n.char)] = bits
			return
		}
		walk(n.left, bits+"0")
		walk(n.right, bits+"1")
	}
	walk(h[0], "")
	return enc
}

// Encode returns the bit string assigned to c.
func (enc *huffmanEncoder) Encode(c byte) (string, error) {
	bits := enc.encoding[indexOf(c)]
	if bits == "" {
		return "", errorf(UnknownSymbol, "character %q has no assigned code", rune(c))
	}
	return bits, nil
}

// huffmanDecodeNode is a node of the binary trie the stream decoder walks
// to find the shortest known prefix of the remaining bits.
type huffmanDecodeNode struct {
	children [2]*huffmanDecodeNode
	isLeaf   bool
	char     byte
}

// huffmanDecoder is built incrementally from the (code, char) pairs in a
// stream header.
type huffmanDecoder struct {
	root *huffmanDecodeNode
}

func newHuffmanDecoder() *huffmanDecoder {
	return &huffmanDecoder{root: &huffmanDecodeNode{}}
}

// Insert adds a code -> char mapping. It reports MalformedHeader if the
// same code string was already inserted, whatever its character.
func (d *huffmanDecoder) Insert(code string, c byte) error {
	n := d.root
	for i := 0; i < len(code); i++ {
		bit := 0
		if code[i] == '1' {
			bit = 1
		}
		if n.children[bit] == nil {
			n.children[bit] = &huffmanDecodeNode{}
		}
		n = n.children[bit]
	}
	if n.isLeaf {
		return errorf(MalformedHeader, "code %q is assigned to more than one character", code)
	}
	n.isLeaf = true
	n.char = c
	return nil
}

// Decode reads the shortest prefix of r that is a known code and returns
// the character it maps to. The walk stops at the first leaf it reaches;
// Insert rejects only exact duplicate codes, not a code that is a prefix of
// another, so a longer code behind a shorter one is never returned.
func (d *huffmanDecoder) Decode(r *bitReader) byte {
	n := d.root
	for !n.isLeaf {
		bit := r.ReadBit()
		next := n.children[bit]
		if next == nil {
			panicf(AmbiguousCode, "bit sequence does not extend any known code")
		}
		n = next
	}
	return n.char
}

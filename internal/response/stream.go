package response

// BodyStream is a finite, non-restartable iterator over bounded reads
// of a response body, in the bufio.Scanner style:
//
//	for s := resp.Stream(1024); s.Next(); {
//		use(s.Bytes())
//	}
//	if err := s.Err(); err != nil { ... }
//
// The sequence ends the first time a bounded read comes back empty;
// that empty tail is never yielded, and once ended the stream stays
// ended.
type BodyStream struct {
	r      *Response
	amount int
	decode bool
	chunk  []byte
	err    error
	done   bool
}

// Stream returns an iterator that repeatedly reads up to amount
// decoded bytes. A non-positive amount uses DefaultChunkSize. The
// optional trailing argument overrides the construction-time decode
// flag, as in ReadN.
func (r *Response) Stream(amount int, decodeContent ...bool) *BodyStream {
	decode := r.decodeContent
	if len(decodeContent) > 0 {
		decode = decodeContent[0]
	}
	if amount <= 0 {
		amount = DefaultChunkSize
	}
	return &BodyStream{r: r, amount: amount, decode: decode}
}

// Next advances to the next chunk. It returns false at the end of the
// body or on error; Err distinguishes the two.
func (s *BodyStream) Next() bool {
	if s.done {
		return false
	}
	chunk, err := s.r.readN(s.amount, s.decode)
	if err != nil {
		s.err, s.chunk, s.done = err, nil, true
		return false
	}
	if len(chunk) == 0 {
		s.chunk, s.done = nil, true
		return false
	}
	s.chunk = chunk
	return true
}

// Bytes returns the chunk produced by the last successful Next. The
// slice is owned by the caller; it is not reused between steps.
func (s *BodyStream) Bytes() []byte { return s.chunk }

func (s *BodyStream) Err() error { return s.err }

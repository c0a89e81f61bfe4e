package chunker

import "code-auditor/internal/scanner"

// Chunker caps how much of each file makes it into a prompt.
type Chunker struct {
	maxChars int
}

func New(maxChars int) *Chunker {
	if maxChars <= 0 {
		maxChars = 4000
	}
	return &Chunker{maxChars: maxChars}
}

// Cap returns the file set with every content truncated to the prompt
// budget. Files are copied; the originals stay intact for patching.
func (c *Chunker) Cap(files []scanner.File) []scanner.File {
	out := make([]scanner.File, len(files))
	for i, f := range files {
		out[i] = f
		if len(f.Content) > c.maxChars {
			out[i].Content = f.Content[:c.maxChars]
		}
	}
	return out
}

// Batch splits files into groups whose combined content stays under
// batchChars, so one oversized repository becomes several provider calls.
func (c *Chunker) Batch(files []scanner.File, batchChars int) [][]scanner.File {
	if batchChars <= 0 {
		return [][]scanner.File{files}
	}

	var batches [][]scanner.File
	var current []scanner.File
	used := 0

	for _, f := range c.Cap(files) {
		size := len(f.Content)
		if used+size > batchChars && len(current) > 0 {
			batches = append(batches, current)
			current = nil
			used = 0
		}
		current = append(current, f)
		used += size
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

package soundfont

// bookSymbol names the codebook of samples[index]. It is the name of the
// first earlier sample with an identical book, or the sample's own name when
// the book is new.
func bookSymbol(samples []*Sample, index int) (string, bool) {
	var book = samples[index].Wave.Book

	for _, earlier := range samples[:index] {
		if earlier.Wave.Book.Equal(book) {
			return earlier.Name, false
		}
	}

	return samples[index].Name, true
}

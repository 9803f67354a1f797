package adpcm

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ossrs/go-oryx-lib/errors"
)

// Serialize writes the book in the text table format: order, predictor count,
// then one line of PREDICTOR_SIZE coefficients per row.
func (book *Book) Serialize(out io.Writer) error {
	if _, err := io.WriteString(out, fmt.Sprintf("%d\n%d\n", book.Order, book.NPredictors)); err != nil {
		return errors.Wrapf(err, "write book header")
	}

	for row := 0; row < int(book.Order*book.NPredictors); row = row + 1 {
		var values []string

		for i := 0; i < PREDICTOR_SIZE; i = i + 1 {
			values = append(values, strconv.Itoa(int(book.Data[row*PREDICTOR_SIZE+i])))
		}

		if _, err := io.WriteString(out, strings.Join(values, " ")+"\n"); err != nil {
			return errors.Wrapf(err, "write book row %v", row)
		}
	}

	return nil
}

// ParseCodebook reads a text table written by Serialize.
func ParseCodebook(in io.Reader) (*Book, error) {
	content, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrapf(err, "read codebook")
	}

	var chunks = strings.Fields(string(content))

	if len(chunks) < 2 {
		return nil, errors.New("missing information in codebook")
	}

	order, err := strconv.ParseInt(chunks[0], 10, 16)
	if err != nil {
		return nil, errors.Wrapf(err, "parse order %v", chunks[0])
	}

	npredictors, err := strconv.ParseInt(chunks[1], 10, 16)
	if err != nil {
		return nil, errors.Wrapf(err, "parse predictors %v", chunks[1])
	}

	if err := checkBookShape(int(order), int(npredictors)); err != nil {
		return nil, err
	}

	var book = Book{
		Order:       int32(order),
		NPredictors: int32(npredictors),
	}

	if book.Entries()+2 != len(chunks) {
		return nil, errors.Errorf("wrong number of values for codebook, expected %d got %d",
			book.Entries(), len(chunks)-2)
	}

	book.Data = make([]int16, book.Entries())

	for i := range book.Data {
		val, err := strconv.ParseInt(chunks[i+2], 10, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "parse coefficient %v", i)
		}

		book.Data[i] = int16(val)
	}

	return &book, nil
}

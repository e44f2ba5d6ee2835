package escape

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WritePGM writes b as a plain (P2) greyscale image with x running
// horizontally and y vertically, i.e. the transpose of the buffer layout.
func WritePGM(w io.Writer, b *Buffer, maxIter int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P2\n%d %d\n%d\n", b.Rows, b.Cols, max(maxIter, 1)); err != nil {
		return err
	}
	var line []byte
	for j := 0; j < b.Cols; j++ {
		line = line[:0]
		for i := 0; i < b.Rows; i++ {
			if i > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendInt(line, int64(b.At(i, j)), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

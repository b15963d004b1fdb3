package words

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV reads "category,word" records from filePath. Records with fewer
// than two fields are skipped; a header row starting with "category" is ignored.
func LoadCSV(filePath string) (*Bank, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening word list %s: %w", filePath, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

func ReadCSV(r io.Reader) (*Bank, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	lists := make(map[string][]string)
	for line := 1; ; line++ {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing word list line %d: %w", line, err)
		}
		if len(record) < 2 {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "category") {
			continue
		}
		lists[record[0]] = append(lists[record[0]], record[1])
	}

	bank := NewBank(lists)
	if bank.Len() == 0 {
		return nil, errors.New("word list contains no words")
	}
	return bank, nil
}

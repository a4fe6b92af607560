package sheet

import (
	"google.golang.org/api/sheets/v4"
)

// DATA_RANGE is the range read by CountRows. Row 1 is the header row and is always excluded.
const DATA_RANGE = "A2:S"

// CountRows returns the number of rows in the value range that are not empty. The Sheets API
// returns a blank row as an empty list, so a row with only whitespace or punctuation in it is
// counted.
func CountRows(data *sheets.ValueRange) int {
	if data == nil {
		return 0
	}

	count := 0
	for _, row := range data.Values {
		if len(row) > 0 {
			count++
		}
	}

	return count
}

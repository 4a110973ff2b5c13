package parser

import "strconv"

func parseInt32(text string) (int32, error) {
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func parseFloat64(text string) (float64, error) {
	return strconv.ParseFloat(text, 64)
}

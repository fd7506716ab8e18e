package repository

import "strconv"

// float4Price widens a REAL price to the shortest decimal that reads back as
// the same float4, so 19.99 stays 19.99 instead of 19.989999771118164.
func float4Price(f float32) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return v
}

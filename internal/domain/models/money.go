package models

import (
	"bytes"
	"fmt"
	"strconv"
)

// Amount is a money value; the remote API sends decimals either as JSON numbers or as strings ("120.50").
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*a = 0
		return nil
	}
	if data[0] == '"' {
		data = bytes.Trim(data, `"`)
		data = bytes.TrimSpace(data)
		if len(data) == 0 {
			*a = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("monto no válido %q: %w", string(data), err)
	}
	*a = Amount(v)
	return nil
}

func (a Amount) Float() float64 { return float64(a) }

// Times multiplies a unit amount by a seat count.
func (a Amount) Times(n int) Amount { return a * Amount(n) }
